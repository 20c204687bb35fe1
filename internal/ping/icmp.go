package ping

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// ICMPPinger is the production probe primitive, backed by ICMP echo
// requests. With Privileged unset it uses unprivileged UDP ping sockets,
// which need net.ipv4.ping_group_range to be configured on Linux.
type ICMPPinger struct {
	Timeout    time.Duration
	Privileged bool
}

func (p *ICMPPinger) Ping(ctx context.Context, host string) (time.Duration, error) {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		return 0, fmt.Errorf("resolve %s: %w", host, err)
	}
	pinger.Count = 1
	pinger.Timeout = p.Timeout
	pinger.SetPrivileged(p.Privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		return 0, fmt.Errorf("ping %s: %w", host, err)
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return 0, fmt.Errorf("ping %s: no reply within %s", host, p.Timeout)
	}
	return stats.AvgRtt, nil
}
