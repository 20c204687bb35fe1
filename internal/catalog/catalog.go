package catalog

import (
	"sort"

	"nordpick/internal/filter"
	"nordpick/internal/model"
	"nordpick/internal/sorter"
)

// Catalog is the ordered list of candidate servers for one run. It starts in
// upstream response order and is only ever reduced, reordered or truncated.
type Catalog struct {
	Servers []model.Server
}

// New wraps the given servers. The catalog takes ownership of the slice.
func New(servers []model.Server) *Catalog {
	return &Catalog{Servers: servers}
}

// Len reports the number of remaining servers.
func (c *Catalog) Len() int { return len(c.Servers) }

// Filter removes every server the filter rejects. The relative order of
// survivors is preserved.
func (c *Catalog) Filter(f filter.Filter) {
	kept := c.Servers[:0]
	for i := range c.Servers {
		if f.Match(&c.Servers[i]) {
			kept = append(kept, c.Servers[i])
		}
	}
	c.Servers = kept
}

// FilterAll applies every filter in turn. Equivalent to a single AND pass,
// since filters are pure.
func (c *Catalog) FilterAll(filters []filter.Filter) {
	for _, f := range filters {
		c.Filter(f)
	}
}

// Sort reorders the catalog so the most preferred server ends up at index 0.
// The sort is unstable; equally ranked servers may swap places.
func (c *Catalog) Sort(s sorter.Sorter) {
	sort.Slice(c.Servers, func(i, j int) bool {
		return s.Less(&c.Servers[i], &c.Servers[j])
	})
}

// Cut keeps only the first n servers. Does nothing if fewer remain.
func (c *Catalog) Cut(n int) {
	if n >= 0 && len(c.Servers) > n {
		c.Servers = c.Servers[:n]
	}
}

// Best returns a copy of the first server, or nil when the catalog is empty.
// An empty catalog is a valid outcome of filtering, not an error.
func (c *Catalog) Best() *model.Server {
	if len(c.Servers) == 0 {
		return nil
	}
	best := c.Servers[0]
	return &best
}

// Domains lists the domains of the remaining servers, in catalog order.
func (c *Catalog) Domains() []string {
	out := make([]string, len(c.Servers))
	for i := range c.Servers {
		out[i] = c.Servers[i].Domain
	}
	return out
}

// Flags returns the set of country codes present in the catalog.
func (c *Catalog) Flags() map[string]bool {
	flags := make(map[string]bool)
	for i := range c.Servers {
		flags[c.Servers[i].Flag] = true
	}
	return flags
}
