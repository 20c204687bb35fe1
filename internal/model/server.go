package model

import (
	"regexp"
	"strings"
)

// Category is a vendor-defined server capability tag, distinct from the
// protocol feature flags below.
type Category string

const (
	CategoryStandard   Category = "standard"
	CategoryP2P        Category = "p2p"
	CategoryDouble     Category = "double"
	CategoryTor        Category = "tor"
	CategoryObfuscated Category = "obfuscated"
	CategoryDedicated  Category = "dedicated"
	CategoryUnknown    Category = "unknown"
)

// CategoryFromAPI maps the human-readable category names used in the vendor
// API onto Category tags. Names the mapping does not know become
// CategoryUnknown instead of failing the decode.
func CategoryFromAPI(name string) Category {
	switch name {
	case "Standard VPN servers":
		return CategoryStandard
	case "P2P":
		return CategoryP2P
	case "Double VPN":
		return CategoryDouble
	case "Onion Over VPN":
		return CategoryTor
	case "Obfuscated Servers":
		return CategoryObfuscated
	case "Dedicated IP":
		return CategoryDedicated
	default:
		return CategoryUnknown
	}
}

// Features holds the protocol capability flags exactly as the vendor API
// reports them. The flags are independent; a server may carry many at once.
type Features struct {
	IKEv2            bool `json:"ikev2"`
	OpenVPNUDP       bool `json:"openvpn_udp"`
	OpenVPNTCP       bool `json:"openvpn_tcp"`
	Socks            bool `json:"socks"`
	Proxy            bool `json:"proxy"`
	PPTP             bool `json:"pptp"`
	L2TP             bool `json:"l2tp"`
	OpenVPNXorUDP    bool `json:"openvpn_xor_udp"`
	OpenVPNXorTCP    bool `json:"openvpn_xor_tcp"`
	ProxyCyberSec    bool `json:"proxy_cybersec"`
	ProxySSL         bool `json:"proxy_ssl"`
	ProxySSLCyberSec bool `json:"proxy_ssl_cybersec"`
	WireGuardUDP     bool `json:"wireguard_udp"`
}

// Server is one upstream VPN endpoint. Records are never mutated after
// construction; the catalog only retains, reorders or truncates them.
type Server struct {
	// Flag is the ISO 3166-1 alpha-2 country code, uppercase.
	Flag string `json:"flag"`
	// Domain is the fully-qualified hostname. It is the unique identity of
	// the server and the target of latency probes.
	Domain string `json:"domain"`
	// Load is the current utilization percentage, 0-100.
	Load int `json:"load"`

	Categories []Category `json:"categories"`
	Features   Features   `json:"features"`
}

var shortNameRe = regexp.MustCompile(`^(.+)\.nordvpn\.com$`)

// Name returns the short identifier of the server ("us1" for
// "us1.nordvpn.com"). Falls back to the full domain when it does not follow
// the vendor naming scheme.
func (s *Server) Name() string {
	if m := shortNameRe.FindStringSubmatch(strings.ToLower(s.Domain)); m != nil {
		return m[1]
	}
	return s.Domain
}

// HasCategory reports whether the server carries the given category tag.
func (s *Server) HasCategory(c Category) bool {
	for _, have := range s.Categories {
		if have == c {
			return true
		}
	}
	return false
}
