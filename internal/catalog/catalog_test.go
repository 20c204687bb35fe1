package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nordpick/internal/filter"
	"nordpick/internal/model"
	"nordpick/internal/sorter"
)

func testCatalog() *Catalog {
	return New([]model.Server{
		{Domain: "us1.nordvpn.com", Flag: "US", Load: 50},
		{Domain: "us2.nordvpn.com", Flag: "US", Load: 10},
		{Domain: "be1.nordvpn.com", Flag: "BE", Load: 5},
	})
}

func domains(c *Catalog) []string { return c.Domains() }

func TestFilterRetainsInOrder(t *testing.T) {
	c := testCatalog()
	c.Filter(filter.Country("US"))

	assert.Equal(t, []string{"us1.nordvpn.com", "us2.nordvpn.com"}, domains(c))
}

func TestFilterIsIdempotent(t *testing.T) {
	c := testCatalog()
	f := filter.Country("US")

	c.Filter(f)
	first := domains(c)
	c.Filter(f)

	assert.Equal(t, first, domains(c))
}

func TestFilterCanDrainCatalog(t *testing.T) {
	c := testCatalog()
	c.Filter(filter.Countries(nil))

	assert.Zero(t, c.Len())
	assert.Nil(t, c.Best())
}

func TestSortByLoadThenBest(t *testing.T) {
	c := testCatalog()
	c.Filter(filter.Country("US"))
	c.Sort(sorter.ByLoad())

	best := c.Best()
	require.NotNil(t, best)
	assert.Equal(t, "us2.nordvpn.com", best.Domain)
	assert.Equal(t, []string{"us2.nordvpn.com", "us1.nordvpn.com"}, domains(c))
}

func TestCountrySetScenario(t *testing.T) {
	c := testCatalog()
	c.Filter(filter.Countries([]string{"BE"}))
	c.Sort(sorter.ByLoad())

	best := c.Best()
	require.NotNil(t, best)
	assert.Equal(t, "be1.nordvpn.com", best.Domain)
}

func TestBlacklistScenario(t *testing.T) {
	c := testCatalog()
	c.Filter(filter.Blacklist(map[string]struct{}{"us1.nordvpn.com": {}}))

	assert.Equal(t, []string{"us2.nordvpn.com", "be1.nordvpn.com"}, domains(c))
}

func TestNegationPartitionsCatalog(t *testing.T) {
	f := filter.Country("US")

	kept := testCatalog()
	kept.Filter(f)
	dropped := testCatalog()
	dropped.Filter(filter.Negate(f))

	union := append(domains(kept), domains(dropped)...)
	assert.ElementsMatch(t, domains(testCatalog()), union)
}

func TestCut(t *testing.T) {
	c := testCatalog()
	c.Cut(2)
	assert.Equal(t, 2, c.Len())

	c.Cut(10)
	assert.Equal(t, 2, c.Len(), "cut beyond length does nothing")
}

func TestBestReturnsCopy(t *testing.T) {
	c := testCatalog()
	best := c.Best()
	require.NotNil(t, best)

	best.Load = 99
	assert.Equal(t, 50, c.Servers[0].Load)
}

func TestFlags(t *testing.T) {
	c := testCatalog()
	flags := c.Flags()

	assert.True(t, flags["US"])
	assert.True(t, flags["BE"])
	assert.False(t, flags["NL"])
}

func TestSortLeavesBestFirstForAnySorter(t *testing.T) {
	c := testCatalog()
	s := sorter.ByLoad()
	c.Sort(s)

	best := c.Best()
	require.NotNil(t, best)
	for i := range c.Servers {
		assert.False(t, s.Less(&c.Servers[i], best), "index 0 must be minimal")
	}
}
