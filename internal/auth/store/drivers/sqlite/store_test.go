package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/store"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/store/drivers/sqlite"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/store/storetest"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations(context.Background()))
	return s
}

func TestStoreConformance(t *testing.T) {
	storetest.Run(t, newTestStore)
}

func TestApplyMigrations_CancelledContext(t *testing.T) {
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.ApplyMigrations(ctx), context.Canceled)
}

func TestNewStore_KeepsExplicitPragmas(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "auth.db") + "?_pragma=busy_timeout(1000)"
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Ping(context.Background()))
}
