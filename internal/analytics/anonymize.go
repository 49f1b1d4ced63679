package analytics

import (
	"fmt"
	"net"
)

// AnonymizeIP truncates a network address before storage. IPv4 keeps the
// first two octets, IPv6 the first four hextets. The truncation is
// irreversible: the original address is never written anywhere.
func AnonymizeIP(addr string) string {
	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return ""
	}
	if v4 := ip.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.0.0", v4[0], v4[1])
	}
	v6 := ip.To16()
	return fmt.Sprintf("%x:%x:%x:%x::",
		uint16(v6[0])<<8|uint16(v6[1]),
		uint16(v6[2])<<8|uint16(v6[3]),
		uint16(v6[4])<<8|uint16(v6[5]),
		uint16(v6[6])<<8|uint16(v6[7]))
}

// ClientHost strips the port from a request's remote address, returning
// the bare host for the geolocation lookup.
func ClientHost(addr string) string {
	if h, _, err := net.SplitHostPort(addr); err == nil {
		return h
	}
	return addr
}
