package config

import (
	"fmt"
	"time"
)

// MaxAITimeout is the hard ceiling for a single provider call.
const MaxAITimeout = 60 * time.Second

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Auth.validate(); err != nil {
		return err
	}

	if err := c.AI.validate(); err != nil {
		return fmt.Errorf("ai: %w", err)
	}

	if c.Generation.MinSourceLen <= 0 || c.Generation.MinSourceLen > c.Generation.MaxSourceLen {
		return fmt.Errorf("generation: min_source_len must be in (0, max_source_len] (got %d, %d)",
			c.Generation.MinSourceLen, c.Generation.MaxSourceLen)
	}

	if c.RateLimit.Enabled && c.RateLimit.GenerationsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.generations_per_minute must be > 0 (got %d)", c.RateLimit.GenerationsPerMinute)
	}
	if c.RateLimit.Enabled && c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %s)", c.RateLimit.CleanupInterval)
	}

	if c.Cleanup.RetentionDays <= 0 {
		return fmt.Errorf("cleanup.retention_days must be > 0 (got %d)", c.Cleanup.RetentionDays)
	}

	return nil
}

func (a *AuthConfig) validate() error {
	if len(a.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(a.JWTSecret))
	}
	return nil
}

func (a *AIConfig) validate() error {
	switch a.Provider {
	case ProviderOpenRouter, ProviderGemini, ProviderStub:
	default:
		return fmt.Errorf("provider must be one of openrouter, gemini, stub (got %q)", a.Provider)
	}

	if a.Timeout <= 0 || a.Timeout > MaxAITimeout {
		return fmt.Errorf("timeout must be in (0, %s] (got %s)", MaxAITimeout, a.Timeout)
	}

	if a.Breaker.Enabled && (a.Breaker.FailureThreshold <= 0 || a.Breaker.FailureThreshold > 1) {
		return fmt.Errorf("breaker.failure_threshold must be in (0, 1] (got %v)", a.Breaker.FailureThreshold)
	}

	return nil
}

// Provider names accepted in ai.provider.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderStub       = "stub"
)
