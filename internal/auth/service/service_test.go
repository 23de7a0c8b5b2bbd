package service_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/service"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/store"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/store/drivers/sqlite"
	"github.com/amitmore-007/Recipe-Generator/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fixture struct {
	store store.Store
	auth  *service.AuthService
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations(context.Background()))
	t.Cleanup(func() { _ = st.Close() })

	hasher, err := cryptox.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	f := &fixture{store: st, now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}

	tokens, err := service.NewTokenService(testSecret, "recipe-auth", 0, func() time.Time { return f.now })
	require.NoError(t, err)

	f.auth = service.NewAuthService(st, hasher, tokens, 4)
	return f
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
