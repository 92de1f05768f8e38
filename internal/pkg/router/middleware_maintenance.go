package router

import (
	"net/http"
	"strings"
)

// middlewareMaintenance answers 503 for the listed route patterns, for
// example to pause "/send-emails" while a relay is down.
func middlewareMaintenance(routes []string) Middleware {
	blocked := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		if r = strings.TrimSpace(r); r != "" {
			blocked[r] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(blocked) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := blocked[matchedRoutePath(r)]; ok {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
