package httpapi

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientIPHeaders are consulted in order before falling back to RemoteAddr.
// For X-Forwarded-For only the left-most hop counts.
var clientIPHeaders = []string{"Fly-Client-IP", "X-Forwarded-For", "X-Real-IP"}

func resolveClientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		first, _, _ := strings.Cut(r.Header.Get(header), ",")
		if addr, ok := parseAddr(first); ok {
			return addr
		}
	}
	if addr, ok := parseAddr(r.RemoteAddr); ok {
		return addr
	}
	return ""
}

func parseAddr(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return "", false
	}
	return addr.Unmap().WithZone("").String(), true
}
