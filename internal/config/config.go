package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	AI         AIConfig         `yaml:"ai"`
	Generation GenerationConfig `yaml:"generation"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Cleanup    CleanupConfig    `yaml:"cleanup"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id,X-AI-Api-Key"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	HealthCheck     time.Duration `yaml:"health_check"       env:"DATABASE_HEALTH_CHECK"       env-default:"30s"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"flashgen"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// AuthConfig holds bearer token settings. Tokens are issued elsewhere;
// the server only validates them.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"flashgen"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// AIConfig selects and configures the structured-output model provider.
type AIConfig struct {
	Provider    string        `yaml:"provider"     env:"AI_PROVIDER"     env-default:"openrouter"`
	Model       string        `yaml:"model"        env:"AI_MODEL"        env-default:"openai/gpt-4o-mini"`
	APIKey      string        `yaml:"api_key"      env:"AI_API_KEY,OPENROUTER_API_KEY"`
	BaseURL     string        `yaml:"base_url"     env:"AI_BASE_URL"`
	SiteURL     string        `yaml:"site_url"     env:"AI_SITE_URL"     env-default:"http://localhost:8080"`
	SiteName    string        `yaml:"site_name"    env:"AI_SITE_NAME"    env-default:"flashgen"`
	Timeout     time.Duration `yaml:"timeout"      env:"AI_TIMEOUT"      env-default:"60s"`
	Temperature float64       `yaml:"temperature"  env:"AI_TEMPERATURE"  env-default:"0.7"`
	MaxTokens   int           `yaml:"max_tokens"   env:"AI_MAX_TOKENS"   env-default:"4000"`
	Breaker     BreakerConfig `yaml:"breaker"`
}

// BreakerConfig tunes the circuit breaker in front of the provider.
type BreakerConfig struct {
	Enabled          bool          `yaml:"enabled"           env:"AI_BREAKER_ENABLED"           env-default:"true"`
	MaxRequests      uint32        `yaml:"max_requests"      env:"AI_BREAKER_MAX_REQUESTS"      env-default:"1"`
	Interval         time.Duration `yaml:"interval"          env:"AI_BREAKER_INTERVAL"          env-default:"60s"`
	Timeout          time.Duration `yaml:"timeout"           env:"AI_BREAKER_TIMEOUT"           env-default:"30s"`
	FailureThreshold float64       `yaml:"failure_threshold" env:"AI_BREAKER_FAILURE_THRESHOLD" env-default:"0.6"`
	MinRequests      uint32        `yaml:"min_requests"      env:"AI_BREAKER_MIN_REQUESTS"      env-default:"5"`
}

// GenerationConfig holds source text bounds enforced before generation.
type GenerationConfig struct {
	MinSourceLen int `yaml:"min_source_len" env:"GENERATION_MIN_SOURCE_LEN" env-default:"1000"`
	MaxSourceLen int `yaml:"max_source_len" env:"GENERATION_MAX_SOURCE_LEN" env-default:"10000"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits generation requests per client address.
type RateLimitConfig struct {
	Enabled              bool          `yaml:"enabled"                env:"RATE_LIMIT_ENABLED"                env-default:"true"`
	GenerationsPerMinute int           `yaml:"generations_per_minute" env:"RATE_LIMIT_GENERATIONS_PER_MINUTE" env-default:"10"`
	CleanupInterval      time.Duration `yaml:"cleanup_interval"       env:"RATE_LIMIT_CLEANUP_INTERVAL"       env-default:"5m"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"   env:"METRICS_ENABLED"   env-default:"true"`
	Path      string `yaml:"path"      env:"METRICS_PATH"      env-default:"/metrics"`
	Namespace string `yaml:"namespace" env:"METRICS_NAMESPACE" env-default:"flashgen"`
}

// CleanupConfig holds maintenance job settings.
type CleanupConfig struct {
	RetentionDays int           `yaml:"retention_days" env:"CLEANUP_RETENTION_DAYS" env-default:"30"`
	Timeout       time.Duration `yaml:"timeout"        env:"CLEANUP_TIMEOUT"        env-default:"5m"`
}
