package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a login token. There is no refresh
// flow, so clients log in again once it lapses.
const DefaultSessionTTL = 24 * time.Hour

// Claims carried by a session token. The user id is duplicated into "id"
// because the browser client reads it from there.
type Claims struct {
	jwt.RegisteredClaims

	UserID string `json:"id"`
}

// NewSessionClaims builds claims for userID valid from now until now+ttl.
func NewSessionClaims(userID, issuer string, ttl time.Duration, now time.Time) Claims {
	now = now.UTC()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		UserID: userID,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateSubject requires a subject and, when both are present, that it
// agrees with the "id" claim.
func (c *Claims) ValidateSubject() error {
	if c.Subject == "" {
		return ErrInvalidClaim
	}
	if c.UserID != "" && c.UserID != c.Subject {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateExpiry checks exp and nbf against the wall clock.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryAt(time.Now())
}

// ValidateExpiryAt checks exp and nbf against now. A token is expired from
// the instant exp is reached.
func (c *Claims) ValidateExpiryAt(now time.Time) error {
	now = now.UTC()

	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
