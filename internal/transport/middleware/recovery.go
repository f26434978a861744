package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/flashgen-backend/pkg/ctxutil"
)

// Recovery turns a handler panic into a 500 JSON error. If the handler had
// already started the response, the connection is left as is and only the
// log entry is written. http.ErrAbortHandler is re-raised for net/http.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := wrapWriter(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				attrs := append(ctxutil.LogAttrs(r.Context()),
					slog.Any("panic", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)
				logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered", attrs...)

				if !sw.wroteHeader {
					writeError(sw, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
				}
			}()
			next.ServeHTTP(sw, r)
		})
	}
}
