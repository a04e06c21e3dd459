package httpapi

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// proxyIPHeaders are consulted in order before the socket address.
var proxyIPHeaders = []string{"Fly-Client-IP", "X-Forwarded-For", "X-Real-IP"}

func resolveClientIP(_ context.Context, r *http.Request) string {
	for _, header := range proxyIPHeaders {
		if addr, ok := parseIP(r.Header.Get(header)); ok {
			return addr.String()
		}
	}
	if addr, ok := parseIP(r.RemoteAddr); ok {
		return addr.String()
	}
	return ""
}

// parseIP accepts a bare address, a host:port pair or a forwarded-for list,
// whose first entry is the client.
func parseIP(raw string) (netip.Addr, bool) {
	first, _, _ := strings.Cut(raw, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return netip.Addr{}, false
	}
	if host, _, err := net.SplitHostPort(first); err == nil {
		first = host
	}

	addr, err := netip.ParseAddr(first)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
