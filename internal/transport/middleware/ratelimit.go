package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/flashgen-backend/pkg/ctxutil"
)

// idleTTL is how long an unused caller limiter is kept.
const idleTTL = 10 * time.Minute

// RateLimiter keeps one token bucket per caller: the user id for
// authenticated requests, the client IP otherwise.
type RateLimiter struct {
	mu      sync.Mutex
	callers map[string]*callerLimit
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type callerLimit struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter that evicts idle callers every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		callers: make(map[string]*callerLimit),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.evictLoop(cleanupInterval)
	return rl
}

// Stop terminates the eviction goroutine. It is safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit allows maxPerMinute requests per caller with a burst of the same
// size. Rejected requests get 429 and a Retry-After in whole seconds.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	every := rate.Every(time.Minute / time.Duration(maxPerMinute))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if wait, ok := rl.reserve(callerKey(r), every, maxPerMinute); !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Round(time.Millisecond).Seconds()))))
				writeError(w, http.StatusTooManyRequests, "Too many requests", "Rate limit exceeded, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// reserve takes a token for key, or reports how long until one is free.
func (rl *RateLimiter) reserve(key string, every rate.Limit, burst int) (time.Duration, bool) {
	now := rl.now()

	rl.mu.Lock()
	c, ok := rl.callers[key]
	if !ok {
		c = &callerLimit{lim: rate.NewLimiter(every, burst)}
		rl.callers[key] = c
	}
	c.lastSeen = now
	rl.mu.Unlock()

	res := c.lim.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return delay, false
	}
	return 0, true
}

func callerKey(r *http.Request) string {
	if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func (rl *RateLimiter) evictLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	cutoff := rl.now().Add(-idleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, c := range rl.callers {
		if c.lastSeen.Before(cutoff) {
			delete(rl.callers, key)
		}
	}
}
