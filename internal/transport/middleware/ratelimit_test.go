package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/flashgen-backend/pkg/ctxutil"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newLimited(t *testing.T, perMinute int) (http.Handler, *RateLimiter, *fakeClock) {
	t.Helper()

	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(time.Hour)
	rl.now = clock.now
	t.Cleanup(rl.Stop)

	h := rl.Limit(perMinute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return h, rl, clock
}

func send(h http.Handler, ctx context.Context, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generations", nil).WithContext(ctx)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	h, _, _ := newLimited(t, 5)
	ctx := context.Background()

	for i := range 5 {
		assert.Equal(t, http.StatusOK, send(h, ctx, "1.2.3.4:1234").Code, "request %d", i)
	}

	rec := send(h, ctx, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "12", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"error":"Too many requests"`)
}

func TestRateLimiter_Refill(t *testing.T) {
	h, _, clock := newLimited(t, 60)
	ctx := context.Background()

	for range 60 {
		send(h, ctx, "3.3.3.3:1")
	}
	require.Equal(t, http.StatusTooManyRequests, send(h, ctx, "3.3.3.3:1").Code)

	clock.advance(time.Second)
	assert.Equal(t, http.StatusOK, send(h, ctx, "3.3.3.3:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(h, ctx, "3.3.3.3:1").Code)
}

func TestRateLimiter_RejectedRequestsDoNotConsume(t *testing.T) {
	h, _, clock := newLimited(t, 1)
	ctx := context.Background()

	require.Equal(t, http.StatusOK, send(h, ctx, "7.7.7.7:1").Code)
	for range 3 {
		require.Equal(t, http.StatusTooManyRequests, send(h, ctx, "7.7.7.7:1").Code)
	}

	clock.advance(time.Minute)
	assert.Equal(t, http.StatusOK, send(h, ctx, "7.7.7.7:1").Code)
}

func TestRateLimiter_CallerKeys(t *testing.T) {
	userID := uuid.New()
	authed := ctxutil.WithUserID(context.Background(), userID)
	anon := context.Background()

	tests := []struct {
		name       string
		firstCtx   context.Context
		firstAddr  string
		secondCtx  context.Context
		secondAddr string
		wantSecond int
	}{
		{"different IPs are independent", anon, "1.1.1.1:1", anon, "2.2.2.2:1", http.StatusOK},
		{"same host on another port shares", anon, "4.4.4.4:1000", anon, "4.4.4.4:2000", http.StatusTooManyRequests},
		{"same user from another IP shares", authed, "5.5.5.5:1", authed, "6.6.6.6:1", http.StatusTooManyRequests},
		{"anonymous on the user's IP is separate", authed, "5.5.5.5:1", anon, "5.5.5.5:1", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := newLimited(t, 1)

			require.Equal(t, http.StatusOK, send(h, tt.firstCtx, tt.firstAddr).Code)
			assert.Equal(t, tt.wantSecond, send(h, tt.secondCtx, tt.secondAddr).Code)
		})
	}
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	h, rl, clock := newLimited(t, 1)
	ctx := context.Background()

	send(h, ctx, "8.8.8.8:1")
	clock.advance(idleTTL / 2)
	send(h, ctx, "9.9.9.9:1")
	clock.advance(idleTTL/2 + time.Second)

	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.callers, "ip:8.8.8.8")
	assert.Contains(t, rl.callers, "ip:9.9.9.9")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
