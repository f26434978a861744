package app

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/flashgen-backend/internal/adapter/provider/breaker"
	"github.com/heartmarshall/flashgen-backend/internal/adapter/provider/gemini"
	"github.com/heartmarshall/flashgen-backend/internal/adapter/provider/openrouter"
	"github.com/heartmarshall/flashgen-backend/internal/adapter/provider/stub"
	"github.com/heartmarshall/flashgen-backend/internal/config"
	"github.com/heartmarshall/flashgen-backend/internal/provider"
)

// newCompleter selects the provider adapter named by cfg.Provider and, when
// enabled, puts the circuit breaker in front of it. The stub is never
// wrapped.
func newCompleter(cfg config.AIConfig, logger *slog.Logger) (provider.StructuredCompleter, error) {
	var c provider.StructuredCompleter

	switch cfg.Provider {
	case config.ProviderOpenRouter:
		c = openrouter.NewClient(openrouter.Options{
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
			SiteURL:  cfg.SiteURL,
			SiteName: cfg.SiteName,
			Timeout:  cfg.Timeout,
		}, logger)
	case config.ProviderGemini:
		c = gemini.NewClient(cfg.APIKey, cfg.Timeout, logger)
	case config.ProviderStub:
		logger.Warn("using stub model provider; proposals are synthetic")
		return stub.New(), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}

	if !cfg.Breaker.Enabled {
		return c, nil
	}

	return breaker.New(c, breaker.Settings{
		Name:             cfg.Provider,
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         cfg.Breaker.Interval,
		Timeout:          cfg.Breaker.Timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
		MinRequests:      cfg.Breaker.MinRequests,
	}, logger), nil
}
