package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/amitmore-007/Recipe-Generator/pkg/cryptox"
	"github.com/amitmore-007/Recipe-Generator/pkg/httpx"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	JWTSecret   string `env:"JWT_SECRET"`                               // Required: HS256 signing secret
	Issuer      string `env:"TOKEN_ISSUER" envDefault:"recipe-auth"`    // Issuer claim for session tokens
	DatabaseURL string `env:"DATABASE_URL" envDefault:"recipe-auth.db"` // postgres:// URL or sqlite path/DSN
	Env         string `env:"ENV" envDefault:"dev"`                     // Environment (dev, staging, prod)
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`              // debug, info, warn, error
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`             // json, text
	Port        int    `env:"PORT" envDefault:"5000"`

	ShutdownGracePeriod   time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval  time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	LoginAttemptRetention time.Duration `env:"LOGIN_ATTEMPT_RETENTION" envDefault:"720h"`

	PasswordHashAlgorithm string `env:"PASSWORD_HASH_ALGORITHM" envDefault:"bcrypt"` // bcrypt, argon2id
	BcryptCost            int    `env:"BCRYPT_COST" envDefault:"10"`
	HashConcurrency       int    `env:"HASH_CONCURRENCY" envDefault:"0"` // 0 means GOMAXPROCS

	RecipeServiceURL     string        `env:"RECIPE_SERVICE_URL" envDefault:"http://localhost:8000"`
	RecipeServiceTimeout time.Duration `env:"RECIPE_SERVICE_TIMEOUT" envDefault:"60s"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	TrustedProxies     []string `env:"TRUSTED_PROXIES" envSeparator:","` // CIDRs allowed to set X-Forwarded-For

	OTelEndpoint string `env:"OTEL_ENDPOINT"` // Empty disables tracing

	RateLimits httpx.RateLimitProfiles `envPrefix:"RATELIMIT_"`
}

// ConfigError reports a configuration value the service cannot start with.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// LoadConfig reads the configuration from the environment. Rate limit
// variables that are unset keep the built-in profiles.
func LoadConfig() (Config, error) {
	cfg := Config{RateLimits: httpx.DefaultRateLimitProfiles()}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, &ConfigError{Field: "env", Reason: err.Error()}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values LoadConfig cannot express as struct tags.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return &ConfigError{Field: "JWT_SECRET", Reason: "must be set"}
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return &ConfigError{Field: "DATABASE_URL", Reason: "must not be empty"}
	}
	if c.Port <= 0 || c.Port > 65535 {
		return &ConfigError{Field: "PORT", Reason: fmt.Sprintf("%d is out of range", c.Port)}
	}
	if c.HashConcurrency < 0 {
		return &ConfigError{Field: "HASH_CONCURRENCY", Reason: "must not be negative"}
	}

	switch c.PasswordHashAlgorithm {
	case cryptox.AlgorithmBcrypt, cryptox.AlgorithmArgon2id:
	default:
		return &ConfigError{Field: "PASSWORD_HASH_ALGORITHM", Reason: fmt.Sprintf("unsupported algorithm %q", c.PasswordHashAlgorithm)}
	}

	if _, err := httpx.ParseTrustedProxies(c.TrustedProxies); err != nil {
		return &ConfigError{Field: "TRUSTED_PROXIES", Reason: err.Error()}
	}

	for name, rl := range map[string]httpx.RateLimitConfig{
		"RATELIMIT_STRICT":   c.RateLimits.Strict,
		"RATELIMIT_MODERATE": c.RateLimits.Moderate,
		"RATELIMIT_LENIENT":  c.RateLimits.Lenient,
	} {
		if !rl.Valid() {
			return &ConfigError{Field: name, Reason: "requests, window and burst must be positive"}
		}
	}

	return nil
}
