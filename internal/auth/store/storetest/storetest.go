// Package storetest is a conformance suite every store driver runs.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/domain"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/store"
	"github.com/stretchr/testify/require"
)

// Factory returns a freshly migrated, empty store. The suite closes it.
type Factory func(t *testing.T) store.Store

// Run exercises the store contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("CreateAndGetUser", func(t *testing.T) { testCreateAndGetUser(t, open(t, newStore)) })
	t.Run("GetMissingUser", func(t *testing.T) { testGetMissingUser(t, open(t, newStore)) })
	t.Run("DuplicateEmail", func(t *testing.T) { testDuplicateEmail(t, open(t, newStore)) })
	t.Run("ConcurrentDuplicateEmail", func(t *testing.T) { testConcurrentDuplicateEmail(t, open(t, newStore)) })
	t.Run("LoginAttempts", func(t *testing.T) { testLoginAttempts(t, open(t, newStore)) })
	t.Run("MigrationsIdempotent", func(t *testing.T) { testMigrationsIdempotent(t, open(t, newStore)) })
}

func open(t *testing.T, newStore Factory) store.Store {
	t.Helper()
	s := newStore(t)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testCreateAndGetUser(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.Users().CreateUser(ctx, domain.NewUser{
		Name:         "Ana",
		Email:        "ana@x.io",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	byEmail, err := s.Users().GetUserByEmail(ctx, "ana@x.io")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)
	require.Equal(t, "Ana", byEmail.Name)
	require.Equal(t, "$2a$10$hash", byEmail.PasswordHash)
	require.WithinDuration(t, created.CreatedAt, byEmail.CreatedAt, time.Millisecond)

	byID, err := s.Users().GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "ana@x.io", byID.Email)

	n, err := s.Users().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func testGetMissingUser(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.Users().GetUserByEmail(ctx, "nobody@x.io")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByID(ctx, "01JBQ8Y3G6W4V5X2K7N9R0T1ZC")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testDuplicateEmail(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.Users().CreateUser(ctx, domain.NewUser{Name: "A", Email: "dup@example.com", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = s.Users().CreateUser(ctx, domain.NewUser{Name: "B", Email: "dup@example.com", PasswordHash: "h2"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	n, err := s.Users().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	u, err := s.Users().GetUserByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	require.Equal(t, "A", u.Name)
}

func testConcurrentDuplicateEmail(t *testing.T, s store.Store) {
	ctx := context.Background()
	const workers = 8

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		dupes   int
		other   []error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Users().CreateUser(ctx, domain.NewUser{
				Name:         "racer",
				Email:        "race@x.io",
				PasswordHash: "h",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, store.ErrAlreadyExists):
				dupes++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, other)
	require.Equal(t, 1, created)
	require.Equal(t, workers-1, dupes)
}

func testLoginAttempts(t *testing.T, s store.Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	for _, a := range []domain.LoginAttempt{
		{Email: "ana@x.io", IP: "10.0.0.1", Success: false, AttemptedAt: now.Add(-48 * time.Hour)},
		{Email: "ana@x.io", IP: "10.0.0.1", Success: true, AttemptedAt: now.Add(-47 * time.Hour)},
		{Email: "ana@x.io", IP: "10.0.0.1", Success: true, AttemptedAt: now},
	} {
		require.NoError(t, s.LoginAttempts().RecordLoginAttempt(ctx, a))
	}

	removed, err := s.LoginAttempts().DeleteLoginAttemptsBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 2, removed)

	removed, err = s.LoginAttempts().DeleteLoginAttemptsBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 0, removed)
}

func testMigrationsIdempotent(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.ApplyMigrations(ctx))
	require.NoError(t, s.Ping(ctx))
}
