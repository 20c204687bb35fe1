package geoip

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Database resolves server hostnames to their GeoLite2 country. Used to
// cross-check the country code the vendor catalog claims for a server.
type Database struct {
	reader *geoip2.Reader
}

func Open(path string) (*Database, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &Database{reader: r}, nil
}

// CountryOf resolves the host and returns the ISO country code of its first
// address. Safe to call on a nil Database; it reports no data in that case.
func (d *Database) CountryOf(host string) (string, error) {
	if d == nil || d.reader == nil {
		return "", fmt.Errorf("no geoip database configured")
	}

	ips, err := net.LookupIP(host)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", host, err)
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("resolve %s: no addresses", host)
	}

	record, err := d.reader.Country(ips[0])
	if err != nil {
		return "", fmt.Errorf("geoip lookup %s: %w", ips[0], err)
	}
	if record.Country.IsoCode == "" {
		return "", fmt.Errorf("geoip lookup %s: country unknown", ips[0])
	}
	return record.Country.IsoCode, nil
}

func (d *Database) Close() {
	if d != nil && d.reader != nil {
		d.reader.Close()
	}
}
