package router

import (
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/regmail/internal/pkg/stacktrace"
)

//nolint:contextcheck // request context is the right one here
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:errorlint // sentinel must be re-panicked as is
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			slog.ErrorContext(r.Context(), "panic on the server", "because", rvr, "stack", stacktrace.InternalFrames(2))

			if r.Header.Get("Connection") == "Upgrade" {
				return
			}
			writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
