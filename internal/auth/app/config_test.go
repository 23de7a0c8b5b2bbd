package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/app"
	"github.com/amitmore-007/Recipe-Generator/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := app.LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "recipe-auth.db", cfg.DatabaseURL)
	require.Equal(t, 5000, cfg.Port)
	require.Equal(t, "recipe-auth", cfg.Issuer)
	require.Equal(t, "bcrypt", cfg.PasswordHashAlgorithm)
	require.Equal(t, 10, cfg.BcryptCost)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, 720*time.Hour, cfg.LoginAttemptRetention)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	require.Equal(t, httpx.DefaultRateLimitProfiles(), cfg.RateLimits)
	require.Empty(t, cfg.OTelEndpoint)
	require.Empty(t, cfg.TrustedProxies)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/recipes")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "3")
	t.Setenv("RATELIMIT_STRICT_WINDOW", "30s")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.10")

	cfg, err := app.LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "postgres://u:p@db:5432/recipes", cfg.DatabaseURL)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 3, cfg.RateLimits.Strict.RequestsPerWindow)
	require.Equal(t, 30*time.Second, cfg.RateLimits.Strict.Window)
	require.Equal(t, httpx.StrictLimit.Burst, cfg.RateLimits.Strict.Burst)
	require.Equal(t, httpx.ModerateLimit, cfg.RateLimits.Moderate)
	require.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.TrustedProxies)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	for _, secret := range []string{"", "   "} {
		t.Setenv("JWT_SECRET", secret)

		_, err := app.LoadConfig()

		var cfgErr *app.ConfigError
		require.True(t, errors.As(err, &cfgErr), "secret %q", secret)
		require.Equal(t, "JWT_SECRET", cfgErr.Field)
	}
}

func TestValidate(t *testing.T) {
	valid := func() app.Config {
		return app.Config{
			JWTSecret:             "secret",
			DatabaseURL:           "auth.db",
			Port:                  5000,
			PasswordHashAlgorithm: "bcrypt",
			RateLimits:            httpx.DefaultRateLimitProfiles(),
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*app.Config)
		field  string
	}{
		{"bad port", func(c *app.Config) { c.Port = 70000 }, "PORT"},
		{"negative concurrency", func(c *app.Config) { c.HashConcurrency = -1 }, "HASH_CONCURRENCY"},
		{"unknown algorithm", func(c *app.Config) { c.PasswordHashAlgorithm = "md5" }, "PASSWORD_HASH_ALGORITHM"},
		{"empty database", func(c *app.Config) { c.DatabaseURL = "" }, "DATABASE_URL"},
		{"bad proxy range", func(c *app.Config) { c.TrustedProxies = []string{"10.0.0.0/40"} }, "TRUSTED_PROXIES"},
		{"zero burst", func(c *app.Config) { c.RateLimits.Lenient.Burst = 0 }, "RATELIMIT_LENIENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			var cfgErr *app.ConfigError
			require.True(t, errors.As(cfg.Validate(), &cfgErr))
			require.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
