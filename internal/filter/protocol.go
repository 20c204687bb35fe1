package filter

import "nordpick/internal/model"

// Protocol names a connection protocol or proxy feature a server may offer.
// Each protocol maps to exactly one feature flag; the table is fixed, not
// inferred from the name.
type Protocol string

const (
	ProtocolTCP              Protocol = "tcp"
	ProtocolUDP              Protocol = "udp"
	ProtocolPPTP             Protocol = "pptp"
	ProtocolL2TP             Protocol = "l2tp"
	ProtocolTCPXor           Protocol = "tcp_xor"
	ProtocolUDPXor           Protocol = "udp_xor"
	ProtocolSocks            Protocol = "socks"
	ProtocolProxy            Protocol = "proxy"
	ProtocolCyberSecProxy    Protocol = "cybersecproxy"
	ProtocolSSLProxy         Protocol = "sslproxy"
	ProtocolCyberSecSSLProxy Protocol = "cybersecsslproxy"
	ProtocolWireGuardUDP     Protocol = "wg_udp"
)

var protocolFlag = map[Protocol]func(*model.Features) bool{
	ProtocolTCP:              func(f *model.Features) bool { return f.OpenVPNTCP },
	ProtocolUDP:              func(f *model.Features) bool { return f.OpenVPNUDP },
	ProtocolPPTP:             func(f *model.Features) bool { return f.PPTP },
	ProtocolL2TP:             func(f *model.Features) bool { return f.L2TP },
	ProtocolTCPXor:           func(f *model.Features) bool { return f.OpenVPNXorTCP },
	ProtocolUDPXor:           func(f *model.Features) bool { return f.OpenVPNXorUDP },
	ProtocolSocks:            func(f *model.Features) bool { return f.Socks },
	ProtocolProxy:            func(f *model.Features) bool { return f.Proxy },
	ProtocolCyberSecProxy:    func(f *model.Features) bool { return f.ProxyCyberSec },
	ProtocolSSLProxy:         func(f *model.Features) bool { return f.ProxySSL },
	ProtocolCyberSecSSLProxy: func(f *model.Features) bool { return f.ProxySSLCyberSec },
	ProtocolWireGuardUDP:     func(f *model.Features) bool { return f.WireGuardUDP },
}

// Protocols lists every known protocol name, in a fixed display order.
func Protocols() []Protocol {
	return []Protocol{
		ProtocolTCP, ProtocolUDP, ProtocolPPTP, ProtocolL2TP,
		ProtocolTCPXor, ProtocolUDPXor, ProtocolSocks, ProtocolProxy,
		ProtocolCyberSecProxy, ProtocolSSLProxy, ProtocolCyberSecSSLProxy,
		ProtocolWireGuardUDP,
	}
}

// ByProtocol keeps servers whose feature flags include the given protocol.
// The second return value is false for protocols outside the fixed table.
func ByProtocol(p Protocol) (Filter, bool) {
	flag, ok := protocolFlag[p]
	if !ok {
		return nil, false
	}
	return Func(func(s *model.Server) bool { return flag(&s.Features) }), true
}
