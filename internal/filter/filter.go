package filter

import (
	"strings"

	"nordpick/internal/model"
)

// Filter decides whether a server stays in the catalog. Implementations are
// pure: they never mutate the record and depend only on configuration fixed
// at construction time.
type Filter interface {
	Match(s *model.Server) bool
}

// Func adapts a plain function to the Filter interface.
type Func func(s *model.Server) bool

func (f Func) Match(s *model.Server) bool { return f(s) }

// Country keeps servers located in one specific country. The code is
// normalized to uppercase once, at construction.
func Country(code string) Filter {
	code = strings.ToUpper(code)
	return Func(func(s *model.Server) bool { return s.Flag == code })
}

// Countries keeps servers located in any of the given countries. An empty
// set keeps nothing; that is intentional, not an error.
func Countries(codes []string) Filter {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[strings.ToUpper(c)] = struct{}{}
	}
	return Func(func(s *model.Server) bool {
		_, ok := set[s.Flag]
		return ok
	})
}

// Category keeps servers carrying the given category tag.
func Category(c model.Category) Filter {
	return Func(func(s *model.Server) bool { return s.HasCategory(c) })
}

// MaxLoad keeps servers with load less than or equal to max.
func MaxLoad(max int) Filter {
	return Func(func(s *model.Server) bool { return s.Load <= max })
}

// LoadRange keeps servers with min < load < max. Both bounds are exclusive,
// unlike MaxLoad; the two are deliberately separate filters.
func LoadRange(min, max int) Filter {
	return Func(func(s *model.Server) bool { return s.Load > min && s.Load < max })
}

// Whitelist keeps only servers whose domain appears in the given set.
func Whitelist(domains map[string]struct{}) Filter {
	return Func(func(s *model.Server) bool {
		_, ok := domains[s.Domain]
		return ok
	})
}

// Blacklist drops servers whose domain appears in the given set.
func Blacklist(domains map[string]struct{}) Filter {
	return Negate(Whitelist(domains))
}

// Negate inverts a filter.
func Negate(f Filter) Filter {
	return Func(func(s *model.Server) bool { return !f.Match(s) })
}

// And combines filters into one that keeps a server only when every part
// does. An empty combination keeps everything.
func And(filters ...Filter) Filter {
	return Func(func(s *model.Server) bool {
		for _, f := range filters {
			if !f.Match(s) {
				return false
			}
		}
		return true
	})
}
