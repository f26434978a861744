package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  auto_migrate: false

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"

ai:
  provider: "gemini"
  model: "gemini-1.5-flash"
  api_key: "yaml-key"
  timeout: "30s"
  temperature: 0.2
  max_tokens: 1000
  breaker:
    enabled: false

generation:
  min_source_len: 500
  max_source_len: 5000

log:
  level: "debug"
  format: "text"

rate_limit:
  generations_per_minute: 3

metrics:
  enabled: false

cleanup:
  retention_days: 7
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Database.AutoMigrate {
		t.Error("database.auto_migrate should be false")
	}

	// AI
	if cfg.AI.Provider != ProviderGemini {
		t.Errorf("ai.provider = %q, want gemini", cfg.AI.Provider)
	}
	if cfg.AI.APIKey != "yaml-key" {
		t.Errorf("ai.api_key = %q", cfg.AI.APIKey)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Errorf("ai.timeout = %v, want 30s", cfg.AI.Timeout)
	}
	if cfg.AI.Temperature != 0.2 || cfg.AI.MaxTokens != 1000 {
		t.Errorf("ai params = %v/%d", cfg.AI.Temperature, cfg.AI.MaxTokens)
	}
	if cfg.AI.Breaker.Enabled {
		t.Error("ai.breaker.enabled should be false")
	}
	if cfg.AI.SiteName != "flashgen" {
		t.Errorf("ai.site_name default = %q", cfg.AI.SiteName)
	}

	// Generation
	if cfg.Generation.MinSourceLen != 500 || cfg.Generation.MaxSourceLen != 5000 {
		t.Errorf("generation bounds = %d..%d", cfg.Generation.MinSourceLen, cfg.Generation.MaxSourceLen)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	if cfg.RateLimit.GenerationsPerMinute != 3 {
		t.Errorf("rate_limit.generations_per_minute = %d", cfg.RateLimit.GenerationsPerMinute)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics.enabled should be false")
	}
	if cfg.Cleanup.RetentionDays != 7 {
		t.Errorf("cleanup.retention_days = %d", cfg.Cleanup.RetentionDays)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("AI_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.AI.APIKey != "env-key" {
		t.Errorf("ai.api_key = %q, want env-key (ENV override)", cfg.AI.APIKey)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.AI.Provider != ProviderOpenRouter {
		t.Errorf("ai.provider = %q, want openrouter (default)", cfg.AI.Provider)
	}
	if cfg.AI.Model != "openai/gpt-4o-mini" {
		t.Errorf("ai.model = %q (default)", cfg.AI.Model)
	}
	if cfg.AI.Timeout != MaxAITimeout {
		t.Errorf("ai.timeout = %v, want %v (default)", cfg.AI.Timeout, MaxAITimeout)
	}
	if cfg.Generation.MinSourceLen != 1000 || cfg.Generation.MaxSourceLen != 10000 {
		t.Errorf("generation bounds = %d..%d", cfg.Generation.MinSourceLen, cfg.Generation.MaxSourceLen)
	}
	if cfg.AI.APIKey != "" {
		t.Errorf("ai.api_key = %q, want empty; a missing key is not a config error", cfg.AI.APIKey)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadAuth_NoDatabaseRequired(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := LoadAuth()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTIssuer != "flashgen" {
		t.Errorf("auth.jwt_issuer = %q, want flashgen (default)", cfg.JWTIssuer)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Errorf("auth.access_token_ttl = %v, want 15m (default)", cfg.AccessTokenTTL)
	}
}

func TestLoadAuth_ShortSecret(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "auth:\n  jwt_secret: \"short\"\n")
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := LoadAuth()
	if err == nil || !strings.Contains(err.Error(), "jwt_secret") {
		t.Fatalf("expected jwt_secret error, got %v", err)
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Auth: AuthConfig{JWTSecret: "this-is-a-very-long-jwt-secret-for-testing-32+"},
		AI: AIConfig{
			Provider: ProviderOpenRouter,
			Timeout:  60 * time.Second,
			Breaker:  BreakerConfig{Enabled: true, FailureThreshold: 0.6},
		},
		Generation: GenerationConfig{MinSourceLen: 1000, MaxSourceLen: 10000},
		RateLimit:  RateLimitConfig{Enabled: true, GenerationsPerMinute: 10, CleanupInterval: 5 * time.Minute},
		Cleanup:    CleanupConfig{RetentionDays: 30},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"jwt secret too short", func(c *Config) { c.Auth.JWTSecret = "short" }, "jwt_secret"},
		{"jwt secret empty", func(c *Config) { c.Auth.JWTSecret = "" }, "jwt_secret"},
		{"unknown provider", func(c *Config) { c.AI.Provider = "openai" }, "provider"},
		{"stub provider", func(c *Config) { c.AI.Provider = ProviderStub }, ""},
		{"timeout zero", func(c *Config) { c.AI.Timeout = 0 }, "timeout"},
		{"timeout above ceiling", func(c *Config) { c.AI.Timeout = 61 * time.Second }, "timeout"},
		{"breaker threshold zero", func(c *Config) { c.AI.Breaker.FailureThreshold = 0 }, "failure_threshold"},
		{"breaker disabled ignores threshold", func(c *Config) {
			c.AI.Breaker.Enabled = false
			c.AI.Breaker.FailureThreshold = 0
		}, ""},
		{"min above max", func(c *Config) { c.Generation.MinSourceLen = 20000 }, "min_source_len"},
		{"min zero", func(c *Config) { c.Generation.MinSourceLen = 0 }, "min_source_len"},
		{"rate limit zero", func(c *Config) { c.RateLimit.GenerationsPerMinute = 0 }, "generations_per_minute"},
		{"cleanup interval zero", func(c *Config) { c.RateLimit.CleanupInterval = 0 }, "cleanup_interval"},
		{"cleanup interval negative", func(c *Config) { c.RateLimit.CleanupInterval = -time.Second }, "cleanup_interval"},
		{"rate limit disabled ignores interval", func(c *Config) {
			c.RateLimit.Enabled = false
			c.RateLimit.CleanupInterval = 0
		}, ""},
		{"retention zero", func(c *Config) { c.Cleanup.RetentionDays = 0 }, "retention_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}
