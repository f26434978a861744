// Package breaker wraps a provider.StructuredCompleter in a circuit breaker
// so a failing upstream is shed quickly instead of tying up requests for the
// full provider timeout.
package breaker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/heartmarshall/flashgen-backend/internal/provider"
)

// Settings configures the breaker.
type Settings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// Completer guards an inner completer.
type Completer struct {
	inner provider.StructuredCompleter
	cb    *gobreaker.CircuitBreaker
	log   *slog.Logger
}

// New wraps inner. Only upstream-side failures (network errors and 5xx API
// errors) count towards tripping; bad payloads and missing credentials do
// not.
func New(inner provider.StructuredCompleter, s Settings, logger *slog.Logger) *Completer {
	log := logger.With("adapter", "breaker", "breaker", s.Name)

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return !isUpstreamFailure(err)
		},
	})

	return &Completer{inner: inner, cb: cb, log: log}
}

// CompleteJSON forwards to the inner completer unless the circuit is open,
// in which case provider.ErrUnavailable is returned without a call.
func (c *Completer) CompleteJSON(ctx context.Context, req provider.Request) (json.RawMessage, error) {
	res, err := c.cb.Execute(func() (any, error) {
		return c.inner.CompleteJSON(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.log.DebugContext(ctx, "call rejected", slog.String("state", c.cb.State().String()))
			return nil, provider.ErrUnavailable
		}
		return nil, err
	}
	return res.(json.RawMessage), nil
}

// State exposes the breaker state for health reporting.
func (c *Completer) State() string {
	return c.cb.State().String()
}

// Probe reports provider.ErrUnavailable while the circuit is open. It never
// calls the upstream.
func (c *Completer) Probe(context.Context) error {
	if c.cb.State() == gobreaker.StateOpen {
		return fmt.Errorf("%w: circuit %s", provider.ErrUnavailable, c.State())
	}
	return nil
}

func isUpstreamFailure(err error) bool {
	if err == nil {
		return false
	}
	var netErr *provider.NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var apiErr *provider.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500
}
