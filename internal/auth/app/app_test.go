package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/app"
	"github.com/amitmore-007/Recipe-Generator/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) app.Config {
	t.Helper()
	return app.Config{
		JWTSecret:             "0123456789abcdef0123456789abcdef",
		Issuer:                "recipe-auth",
		DatabaseURL:           filepath.Join(t.TempDir(), "auth.db"),
		Env:                   "test",
		LogLevel:              "error",
		Port:                  5000,
		ShutdownGracePeriod:   time.Second,
		HousekeepingInterval:  time.Hour,
		PasswordHashAlgorithm: "bcrypt",
		BcryptCost:            4,
		RecipeServiceURL:      "http://127.0.0.1:1",
		RateLimits:            httpx.DefaultRateLimitProfiles(),
	}
}

func TestNewServesRoutes(t *testing.T) {
	application, err := app.New(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := `{"name":"Ana","email":"ana@x.io","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestNewRejectsMissingSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWTSecret = ""

	_, err := app.New(context.Background(), cfg)

	var cfgErr *app.ConfigError
	require.True(t, errors.As(err, &cfgErr))
}
