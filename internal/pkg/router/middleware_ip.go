package router

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ipHeaders are consulted in order; the first parsable address wins.
var ipHeaders = []string{"True-Client-IP", "X-Real-IP", "X-Forwarded-For"}

func middlewareIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := clientIP(r); ip != "" {
			r.RemoteAddr = ip
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	for _, name := range ipHeaders {
		v, _, _ := strings.Cut(r.Header.Get(name), ",")
		if addr, err := netip.ParseAddr(strings.TrimSpace(v)); err == nil {
			return addr.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.String()
	}
	return ""
}
