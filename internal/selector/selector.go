package selector

import (
	"context"
	"fmt"
	"log/slog"

	"nordpick/internal/catalog"
	"nordpick/internal/filter"
	"nordpick/internal/model"
	"nordpick/internal/ping"
	"nordpick/internal/sorter"
)

// Prober is the measurement phase the latency ranking depends on.
// *ping.Prober satisfies it.
type Prober interface {
	Run(ctx context.Context, domains []string, tries int, strategy ping.Strategy) (ping.Result, error)
}

// RankByLoad orders the catalog by current load, least loaded first.
func RankByLoad(c *catalog.Catalog) {
	c.Sort(sorter.ByLoad())
}

// RankByLatency orders the catalog by measured round-trip time. The pass
// first ranks by load and truncates to the given number of candidates, so
// only the least loaded servers are probed; candidates <= 0 probes them all.
// Hosts that could not be measured are dropped from the catalog before the
// latency sort, keeping the comparator contract intact.
//
// On probe failure the catalog is left in load order and the error is
// returned, so the caller already holds the degraded ranking and only needs
// to warn the user.
func RankByLatency(ctx context.Context, c *catalog.Catalog, prober Prober, candidates, tries int, strategy ping.Strategy) error {
	RankByLoad(c)
	if candidates > 0 {
		c.Cut(candidates)
	}
	if c.Len() == 0 {
		return nil
	}

	result, err := prober.Run(ctx, c.Domains(), tries, strategy)
	if err != nil {
		return fmt.Errorf("rank by latency: %w", err)
	}

	if dropped := c.Len() - len(result); dropped > 0 {
		slog.Warn("unreachable_candidates_dropped", "count", dropped)
		c.Filter(filter.Func(func(s *model.Server) bool {
			_, ok := result[s.Domain]
			return ok
		}))
	}

	c.Sort(sorter.ByLatency(result))
	return nil
}

// Best returns the winning server after filtering and ranking, or nil when
// no server survived.
func Best(c *catalog.Catalog) *model.Server {
	return c.Best()
}
