package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashgen-backend/pkg/ctxutil"
)

// quietPaths are probed by orchestrators every few seconds.
var quietPaths = map[string]bool{"/live": true, "/ready": true}

// Logger emits one http.request entry per request. 5xx responses log at
// error, 4xx at warn and liveness probes at debug.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := wrapWriter(w)

			next.ServeHTTP(sw, r)

			attrs := append([]slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", routePattern(r)),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
			}, ctxutil.LogAttrs(callerCtx(r, sw))...)

			logger.LogAttrs(r.Context(), requestLevel(r.URL.Path, sw.status), "http.request", attrs...)
		})
	}
}

func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case quietPaths[path]:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// callerCtx adds the caller resolved further down the chain to r's context.
func callerCtx(r *http.Request, sw *statusWriter) context.Context {
	if sw.userID == uuid.Nil {
		return r.Context()
	}
	return ctxutil.WithUserID(r.Context(), sw.userID)
}
