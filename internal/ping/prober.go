package ping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Result maps a probed domain to its mean round-trip time in microseconds.
// Hosts that could not be measured are absent; a sorter that still needs
// them fails loudly.
type Result map[string]int64

// ErrProbeFailed signals that probing produced no usable measurement at all,
// e.g. because the process may not open ICMP sockets or every host timed
// out. Callers are expected to fall back to load-based ranking.
var ErrProbeFailed = errors.New("latency probing failed")

// Pinger is the injected probe primitive: one round-trip measurement against
// one host, bounded by its own timeout.
type Pinger interface {
	Ping(ctx context.Context, host string) (time.Duration, error)
}

// Strategy selects how probes are scheduled across candidates.
type Strategy string

const (
	// StrategySequential measures one host at a time, all tries
	// back-to-back. Most precise, slowest: wall time grows with the
	// number of candidates.
	StrategySequential Strategy = "sequential"
	// StrategyBatched probes every candidate once per round, tries rounds
	// in total. Faster but hosts share network conditions within a round.
	StrategyBatched Strategy = "batched"
)

// ParseStrategy resolves a config value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategySequential, StrategyBatched:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown ping strategy %q", s)
	}
}

// Prober coordinates round-trip measurements across a bounded candidate set.
type Prober struct {
	pinger  Pinger
	limiter *rate.Limiter
}

// NewProber builds a Prober on top of the given primitive. probesPerSecond
// paces probe dispatch; zero or negative disables pacing.
func NewProber(p Pinger, probesPerSecond float64) *Prober {
	limit := rate.Inf
	if probesPerSecond > 0 {
		limit = rate.Limit(probesPerSecond)
	}
	return &Prober{pinger: p, limiter: rate.NewLimiter(limit, 1)}
}

// Run measures every domain tries times using the given strategy and returns
// the per-domain mean. A domain that fails any single probe is dropped from
// the result; only when no domain yields a measurement does Run return an
// error wrapping ErrProbeFailed. Cancelling the context aborts outstanding
// probes and returns the partial result together with the context error.
func (p *Prober) Run(ctx context.Context, domains []string, tries int, strategy Strategy) (Result, error) {
	if len(domains) == 0 {
		return nil, fmt.Errorf("%w: no candidates to probe", ErrProbeFailed)
	}
	if tries < 1 {
		return nil, fmt.Errorf("%w: tries must be at least 1, got %d", ErrProbeFailed, tries)
	}

	var res Result
	switch strategy {
	case StrategySequential:
		res = p.sequential(ctx, domains, tries)
	case StrategyBatched:
		res = p.batched(ctx, domains, tries)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrProbeFailed, strategy)
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: none of %d hosts could be measured", ErrProbeFailed, len(domains))
	}
	return res, nil
}

// sequential probes one host at a time, accumulating microseconds and
// averaging per host before moving on.
func (p *Prober) sequential(ctx context.Context, domains []string, tries int) Result {
	res := make(Result, len(domains))
	for _, domain := range domains {
		if ctx.Err() != nil {
			return res
		}
		var sum int64
		ok := true
		for i := 0; i < tries; i++ {
			if err := p.limiter.Wait(ctx); err != nil {
				return res
			}
			rtt, err := p.pinger.Ping(ctx, domain)
			if err != nil {
				slog.Debug("probe_failed", "host", domain, "try", i+1, "error", err)
				ok = false
				break
			}
			sum += rtt.Microseconds()
		}
		if ok {
			res[domain] = sum / int64(tries)
		}
	}
	return res
}

// batched runs tries rounds; within a round every still-healthy host is
// probed concurrently and its microsecond sum accumulated under the mutex.
func (p *Prober) batched(ctx context.Context, domains []string, tries int) Result {
	var (
		mu     sync.Mutex
		sums   = make(map[string]int64, len(domains))
		failed = make(map[string]bool, len(domains))
	)

	completed := 0
	for round := 0; round < tries; round++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil
		}

		var wg sync.WaitGroup
		for _, domain := range domains {
			if failed[domain] {
				continue
			}
			wg.Add(1)
			go func(host string) {
				defer wg.Done()
				rtt, err := p.pinger.Ping(ctx, host)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					slog.Debug("probe_failed", "host", host, "error", err)
					failed[host] = true
					return
				}
				sums[host] += rtt.Microseconds()
			}(domain)
		}
		wg.Wait()

		if ctx.Err() != nil {
			break
		}
		completed++
	}

	if completed == 0 {
		return nil
	}

	// Hosts that dropped out mid-pass have an incomplete sum; dividing it
	// through would silently understate their latency, so they are omitted.
	// On cancellation the mean covers only the rounds that finished.
	res := make(Result, len(sums))
	for domain, sum := range sums {
		if !failed[domain] {
			res[domain] = sum / int64(completed)
		}
	}
	return res
}
