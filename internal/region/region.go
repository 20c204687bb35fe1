package region

import "strings"

// Region is a named, fixed group of countries usable as a shorthand filter.
// The table is compiled in and never user-mutable.
type Region struct {
	Code        string
	Description string
	countries   []string
}

// Countries returns the country codes of the region. The returned slice is a
// copy; callers may not alter the table through it.
func (r Region) Countries() []string {
	out := make([]string, len(r.countries))
	copy(out, r.countries)
	return out
}

var eu = []string{
	"AT", "BE", "BG", "HR", "CY", "CZ", "DK", "EE", "FI", "FR", "DE", "GR",
	"HU", "IE", "IT", "LV", "LT", "LU", "MT", "NL", "PL", "PT", "RO", "SK",
	"SI", "ES", "SE",
}

var table = []Region{
	{"EU", "The European Union", eu},
	{"ЕЮ", "The European Union (Cyrillic notation)", eu},
	{"EEA", "The European Economic Area", append(append([]string{}, eu...), "NO", "LI", "IS")},
	{"BENELUX", "Countries of the Benelux", []string{"BE", "LU", "NL"}},
	{"5E", "Countries involved in the Five Eyes programme", []string{"AU", "CA", "NZ", "GB", "US"}},
	{"6E", "Countries involved in the Six Eyes programme", []string{"AU", "CA", "FR", "NZ", "GB", "US"}},
	{"9E", "Countries involved in the Nine Eyes programme", []string{"AU", "CA", "DK", "FR", "NL", "NO", "NZ", "GB", "US"}},
	{"14E", "Countries involved in the Fourteen Eyes programme", []string{"AU", "BE", "CA", "DE", "DK", "ES", "FR", "IT", "NL", "NO", "NZ", "GB", "SE", "US"}},
}

// Lookup resolves a region code, case-insensitively. The second return value
// reports whether the code names a known region.
func Lookup(code string) (Region, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, r := range table {
		if r.Code == code {
			return r, true
		}
	}
	return Region{}, false
}

// All enumerates every region in the table. Each returned code round-trips
// through Lookup.
func All() []Region {
	out := make([]Region, len(table))
	copy(out, table)
	return out
}
