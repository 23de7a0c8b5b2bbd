package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHashers(t *testing.T) map[string]PasswordHasher {
	t.Helper()

	bc, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	return map[string]PasswordHasher{
		AlgorithmBcrypt:   bc,
		AlgorithmArgon2id: DefaultArgon2idHasher(),
	}
}

func TestHash_RoundTrip(t *testing.T) {
	passwords := []struct {
		name     string
		password string
	}{
		{"simple password", "hunter22"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"max length password", strings.Repeat("a", MaxPasswordBytes)},
		{"unicode password", "contraseña🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for alg, h := range testHashers(t) {
		for _, tt := range passwords {
			t.Run(alg+"/"+tt.name, func(t *testing.T) {
				hash, err := h.Hash(tt.password)
				require.NoError(t, err)
				require.NotEqual(t, tt.password, hash)
				require.NotContains(t, hash, tt.password)

				require.NoError(t, h.Verify(tt.password, hash))
				require.NoError(t, VerifyPassword(tt.password, hash))
			})
		}
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	for alg, h := range testHashers(t) {
		t.Run(alg, func(t *testing.T) {
			hash1, err := h.Hash("samepassword")
			require.NoError(t, err)
			hash2, err := h.Hash("samepassword")
			require.NoError(t, err)

			require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
			require.NoError(t, VerifyPassword("samepassword", hash1))
			require.NoError(t, VerifyPassword("samepassword", hash2))
		})
	}
}

func TestHash_RejectsOverlongPassword(t *testing.T) {
	for alg, h := range testHashers(t) {
		t.Run(alg, func(t *testing.T) {
			_, err := h.Hash(strings.Repeat("a", MaxPasswordBytes+1))
			require.ErrorIs(t, err, ErrPasswordTooLong)
		})
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	for alg, h := range testHashers(t) {
		hash, err := h.Hash("correct-password")
		require.NoError(t, err)

		for _, wrong := range []string{
			"wrong-password",
			"Correct-Password",
			"correct-password ",
			"",
			"correct-passwor",
			strings.Repeat("x", 10000),
		} {
			t.Run(alg+"/"+wrong[:min(len(wrong), 16)], func(t *testing.T) {
				require.ErrorIs(t, VerifyPassword(wrong, hash), ErrMismatch)
			})
		}
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"unknown algorithm", "$scrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing version", "$argon2id$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"truncated bcrypt", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword("test-password", tt.invalidHash)
			require.ErrorIs(t, err, ErrMalformedHash)
		})
	}
}

func TestVerifyPassword_AcrossAlgorithms(t *testing.T) {
	// A deployment that flips PASSWORD_HASH_ALGORITHM must still accept old hashes.
	hashers := testHashers(t)

	old, err := hashers[AlgorithmArgon2id].Hash("hunter22")
	require.NoError(t, err)
	require.NoError(t, hashers[AlgorithmBcrypt].Verify("hunter22", old))

	old, err = hashers[AlgorithmBcrypt].Hash("hunter22")
	require.NoError(t, err)
	require.NoError(t, hashers[AlgorithmArgon2id].Verify("hunter22", old))
}

func TestNewHasher(t *testing.T) {
	h, err := NewHasher("", 0)
	require.NoError(t, err)
	require.Equal(t, AlgorithmBcrypt, h.Algorithm())
	require.Equal(t, DefaultBcryptCost, h.(*BcryptHasher).Cost)

	h, err = NewHasher("ARGON2ID", 0)
	require.NoError(t, err)
	require.Equal(t, AlgorithmArgon2id, h.Algorithm())

	_, err = NewHasher("md5", 0)
	require.ErrorIs(t, err, ErrUnknownAlgorithm)

	_, err = NewHasher(AlgorithmBcrypt, 99)
	require.Error(t, err)
}

func TestBcryptHash_EncodesCost(t *testing.T) {
	h, err := NewBcryptHasher(DefaultBcryptCost)
	require.NoError(t, err)

	hash, err := h.Hash("hunter22")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, DefaultBcryptCost, cost)
}

func TestArgon2idHash_PreservesPHCFormat(t *testing.T) {
	hash, err := DefaultArgon2idHasher().Hash("test-password")
	require.NoError(t, err)

	parts := strings.Split(hash, "$")
	require.Len(t, parts, 6)
	require.Equal(t, "argon2id", parts[1])
	require.Equal(t, "v=19", parts[2])
	require.Equal(t, "m=19456,t=2,p=1", parts[3])
	require.NotEmpty(t, parts[4])
	require.NotEmpty(t, parts[5])
}
