package sorter

import (
	"fmt"

	"nordpick/internal/model"
	"nordpick/internal/ping"
)

// Sorter defines the preference order between two servers. Less reports
// whether a should be listed before b; after sorting, the most preferred
// server sits at index 0.
type Sorter interface {
	Less(a, b *model.Server) bool
}

type byLoad struct{}

// ByLoad prefers servers with lower current load. Total and pure; needs no
// precomputation.
func ByLoad() Sorter { return byLoad{} }

func (byLoad) Less(a, b *model.Server) bool { return a.Load < b.Load }

type byLatency struct {
	result ping.Result
}

// ByLatency prefers servers with lower measured round-trip time. The result
// must cover every server the sorter will see; comparing a domain that was
// never probed is a sequencing bug in the caller and panics.
func ByLatency(result ping.Result) Sorter { return byLatency{result: result} }

func (s byLatency) Less(a, b *model.Server) bool {
	return s.latency(a) < s.latency(b)
}

func (s byLatency) latency(srv *model.Server) int64 {
	rtt, ok := s.result[srv.Domain]
	if !ok {
		panic(fmt.Sprintf("sorter: no latency measured for %s", srv.Domain))
	}
	return rtt
}
