package sorter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nordpick/internal/model"
	"nordpick/internal/ping"
)

func TestByLoadPrefersLeastLoaded(t *testing.T) {
	light := model.Server{Domain: "us2.nordvpn.com", Load: 10}
	heavy := model.Server{Domain: "us1.nordvpn.com", Load: 50}

	s := ByLoad()
	assert.True(t, s.Less(&light, &heavy))
	assert.False(t, s.Less(&heavy, &light))
	assert.False(t, s.Less(&light, &light), "strict ordering: equal is not less")
}

func TestByLatencyPrefersFastest(t *testing.T) {
	a := model.Server{Domain: "a.nordvpn.com"}
	b := model.Server{Domain: "b.nordvpn.com"}

	s := ByLatency(ping.Result{
		"a.nordvpn.com": 20,
		"b.nordvpn.com": 40,
	})

	assert.True(t, s.Less(&a, &b))
	assert.False(t, s.Less(&b, &a))
}

func TestByLatencyPanicsOnUnprobedDomain(t *testing.T) {
	a := model.Server{Domain: "a.nordvpn.com"}
	missing := model.Server{Domain: "never-probed.nordvpn.com"}

	s := ByLatency(ping.Result{"a.nordvpn.com": 20})

	// Comparing an unprobed domain is a pass-sequencing bug, not a runtime
	// condition to tolerate.
	assert.Panics(t, func() { s.Less(&a, &missing) })
	assert.Panics(t, func() { s.Less(&missing, &a) })
}
