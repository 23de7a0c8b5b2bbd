package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "ana@x.io", domain.NormalizeEmail("  Ana@X.io "))
	require.Equal(t, "", domain.NormalizeEmail("   "))
}

func TestPublicUserOmitsHash(t *testing.T) {
	u := domain.User{
		ID:           "01JBQ8Y3G6W4V5X2K7N9R0T1ZC",
		Name:         "Ana",
		Email:        "ana@x.io",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    time.Now(),
	}

	raw, err := json.Marshal(u.Public())
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"01JBQ8Y3G6W4V5X2K7N9R0T1ZC","name":"Ana","email":"ana@x.io"}`, string(raw))
	require.NotContains(t, string(raw), "$2a$")
}
