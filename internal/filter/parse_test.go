package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nordpick/internal/model"
)

var knownFlags = map[string]bool{"US": true, "BE": true, "NL": true}

func TestParseCategoryToken(t *testing.T) {
	f, err := Parse("p2p", knownFlags)
	require.NoError(t, err)

	s := model.Server{Categories: []model.Category{model.CategoryP2P}}
	assert.True(t, f.Match(&s))
}

func TestParseProtocolToken(t *testing.T) {
	f, err := Parse("wg_udp", knownFlags)
	require.NoError(t, err)

	s := model.Server{Features: model.Features{WireGuardUDP: true}}
	assert.True(t, f.Match(&s))
}

func TestParseRegionToken(t *testing.T) {
	f, err := Parse("benelux", knownFlags)
	require.NoError(t, err)

	be := model.Server{Flag: "BE"}
	us := model.Server{Flag: "US"}
	assert.True(t, f.Match(&be))
	assert.False(t, f.Match(&us))
}

func TestParseCountryToken(t *testing.T) {
	f, err := Parse("us", knownFlags)
	require.NoError(t, err)

	us := model.Server{Flag: "US"}
	assert.True(t, f.Match(&us))
}

func TestParseNegatedToken(t *testing.T) {
	f, err := Parse("!us", knownFlags)
	require.NoError(t, err)

	us := model.Server{Flag: "US"}
	be := model.Server{Flag: "BE"}
	assert.False(t, f.Match(&us))
	assert.True(t, f.Match(&be))
}

func TestParseStaticTokensWinOverCountries(t *testing.T) {
	// "tor" must resolve to the category even though a country code could
	// theoretically collide with a token prefix.
	f, err := Parse("tor", knownFlags)
	require.NoError(t, err)

	torServer := model.Server{Flag: "US", Categories: []model.Category{model.CategoryTor}}
	plain := model.Server{Flag: "US", Categories: []model.Category{model.CategoryStandard}}
	assert.True(t, f.Match(&torServer))
	assert.False(t, f.Match(&plain))
}

func TestParseUnrecognizedTokenNamesIt(t *testing.T) {
	_, err := Parse("xyz123", knownFlags)
	require.Error(t, err)

	var unrec *UnrecognizedFilterError
	require.True(t, errors.As(err, &unrec))
	assert.Equal(t, "xyz123", unrec.Token)
	assert.Contains(t, err.Error(), "xyz123")
}

func TestParseCountryUnknownToCatalog(t *testing.T) {
	// Two-letter shape alone is not enough; the code must exist in the
	// catalog flags when a set is given.
	_, err := Parse("zz", knownFlags)
	var unrec *UnrecognizedFilterError
	require.True(t, errors.As(err, &unrec))

	f, err := Parse("zz", nil)
	require.NoError(t, err)
	zz := model.Server{Flag: "ZZ"}
	assert.True(t, f.Match(&zz))
}
