//go:build e2e

package auth_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/amitmore-007/Recipe-Generator/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRegisterLoginMe walks the happy path from signup to an authenticated call.
func TestRegisterLoginMe(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	user := registerUser(t, client, testName, "ana@x.io", testPassword)
	require.Equal(t, testName, user.Name)
	require.Equal(t, "ana@x.io", user.Email)

	session, err := client.AuthenticateWithPassword(t.Context(), "ANA@x.io", testPassword)
	require.NoError(t, err, "Login should succeed with a differently cased email")
	require.NotEmpty(t, session.Token())
	require.Equal(t, user, session.User())

	me, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, user, *me)

	t.Logf("User %s registered and logged in", user.ID)
}

// TestDuplicateRegistration verifies the second signup for an email fails.
func TestDuplicateRegistration(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	registerUser(t, client, "A", "dup@example.com", testPassword)

	_, err := client.Register(t.Context(), authsdk.RegisterRequest{
		Name:     "B",
		Email:    "dup@example.com",
		Password: "another1",
	})
	assertAPIError(t, err, http.StatusBadRequest, "Email already in use")

	// The first account is untouched.
	_, err = client.Login(t.Context(), "dup@example.com", testPassword)
	require.NoError(t, err)
}

// TestConcurrentDuplicateRegistration races several signups for one email
// and expects exactly one to win.
func TestConcurrentDuplicateRegistration(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Register(t.Context(), authsdk.RegisterRequest{
				Name:     "Racer",
				Email:    "race@example.com",
				Password: testPassword,
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case authsdk.IsStatus(err, http.StatusBadRequest):
				conflicts++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, created)
	require.Equal(t, workers-1, conflicts)
}
