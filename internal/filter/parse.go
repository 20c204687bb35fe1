package filter

import (
	"fmt"
	"strings"

	"nordpick/internal/model"
	"nordpick/internal/region"
)

// UnrecognizedFilterError reports a filter token that names no protocol,
// category, region or known country.
type UnrecognizedFilterError struct {
	Token string
}

func (e *UnrecognizedFilterError) Error() string {
	return fmt.Sprintf("unrecognized filter %q", e.Token)
}

var categoryTokens = map[string]model.Category{
	"standard":   model.CategoryStandard,
	"p2p":        model.CategoryP2P,
	"double":     model.CategoryDouble,
	"dedicated":  model.CategoryDedicated,
	"tor":        model.CategoryTor,
	"obfuscated": model.CategoryObfuscated,
}

// CategoryTokens lists the accepted category filter tokens, in display order.
func CategoryTokens() []string {
	return []string{"standard", "dedicated", "double", "obfuscated", "p2p", "tor"}
}

// Parse turns a user-supplied token into a Filter. A leading "!" negates the
// filter. Static protocol and category names take precedence over region
// codes, which take precedence over country codes, so a token like "tcp_xor"
// can never be shadowed. knownFlags is the set of country codes present in
// the catalog; a nil set accepts any two-letter code.
func Parse(token string, knownFlags map[string]bool) (Filter, error) {
	trimmed := strings.TrimSpace(token)
	negate := strings.HasPrefix(trimmed, "!")
	if negate {
		trimmed = trimmed[1:]
	}

	f, err := parseAtom(trimmed, token, knownFlags)
	if err != nil {
		return nil, err
	}
	if negate {
		f = Negate(f)
	}
	return f, nil
}

func parseAtom(tok, original string, knownFlags map[string]bool) (Filter, error) {
	lower := strings.ToLower(tok)

	if c, ok := categoryTokens[lower]; ok {
		return Category(c), nil
	}
	if f, ok := ByProtocol(Protocol(lower)); ok {
		return f, nil
	}
	if r, ok := region.Lookup(tok); ok {
		return Countries(r.Countries()), nil
	}

	upper := strings.ToUpper(tok)
	if isCountryCode(upper) && (knownFlags == nil || knownFlags[upper]) {
		return Country(upper), nil
	}

	return nil, &UnrecognizedFilterError{Token: original}
}

func isCountryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
