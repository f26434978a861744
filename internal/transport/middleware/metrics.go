package middleware

import (
	"net/http"
	"time"
)

type httpObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// Metrics records request count and latency per route pattern.
// Requests that match no route are reported as "unmatched" so that
// arbitrary paths do not create new label values.
func Metrics(obs httpObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := wrapWriter(w)

			next.ServeHTTP(sw, r)

			obs.ObserveHTTP(r.Method, routePattern(r), sw.status, time.Since(start))
		})
	}
}
