package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/regmail/internal/pkg/instrument"
	"github.com/shandysiswandi/regmail/internal/pkg/uid"
)

const (
	// HeaderCorrelationID is the canonical header used to track requests end-to-end.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is an accepted alternative header name used by some proxies.
	HeaderRequestID = "X-Request-ID"

	maxCIDLen = 128
)

// incomingCID returns the first usable id from the request headers. Values
// with line breaks are dropped and long values are cut to maxCIDLen.
func incomingCID(h http.Header) string {
	for _, name := range []string{HeaderCorrelationID, HeaderRequestID} {
		v := h.Get(name)
		if strings.ContainsAny(v, "\r\n") {
			continue
		}
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		if len(v) > maxCIDLen {
			v = v[:maxCIDLen]
		}
		return v
	}
	return ""
}

func middlewareCorrelationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := incomingCID(r.Header)
			if cid == "" && gen != nil {
				cid = gen.Generate()
			}

			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(instrument.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}
