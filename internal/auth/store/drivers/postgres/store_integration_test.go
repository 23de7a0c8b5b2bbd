//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/store"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/store/drivers/postgres"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/store/storetest"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "recipe",
				"POSTGRES_PASSWORD": "recipe",
				"POSTGRES_DB":       "recipe",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://recipe:recipe@%s:%s/recipe?sslmode=disable", host, port.Port())
}

func TestStoreConformance(t *testing.T) {
	dsn := startPostgres(t)

	storetest.Run(t, func(t *testing.T) store.Store {
		ctx := context.Background()
		s, err := postgres.NewStore(ctx, dsn)
		require.NoError(t, err)
		require.NoError(t, s.ApplyMigrations(ctx))

		// Subtests share one database; start each from empty tables.
		_, err = s.DB().ExecContext(ctx, `TRUNCATE users, login_attempts`)
		require.NoError(t, err)
		return s
	})
}
