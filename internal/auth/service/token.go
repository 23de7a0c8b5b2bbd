package service

import (
	"errors"
	"time"

	"github.com/amitmore-007/Recipe-Generator/pkg/jwtx"
)

// TokenService issues and checks session tokens. It satisfies jwtx.Verifier
// so the HTTP layer can hand it straight to the authn middleware.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration

	// Now is the clock used for iat/exp. Defaults to time.Now.
	Now func() time.Time
}

var _ jwtx.Verifier = (*TokenService)(nil)

// NewTokenService builds an HS256 token service around secret. The verifier
// shares the same clock so tests can move time for both sides.
func NewTokenService(secret []byte, issuer string, ttl time.Duration, now func() time.Time) (*TokenService, error) {
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, err
	}
	verifier, err := jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{Issuer: issuer, Now: now})
	if err != nil {
		return nil, err
	}

	return &TokenService{
		Signer:   signer,
		Verifier: verifier,
		Issuer:   issuer,
		TTL:      ttl,
		Now:      now,
	}, nil
}

// Issue signs a session token for userID and returns it with its expiry.
func (s *TokenService) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("service: empty subject")
	}

	claims := jwtx.NewSessionClaims(userID, s.Issuer, s.TTL, s.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

// Verify checks signature, issuer and expiry.
func (s *TokenService) Verify(token string) (jwtx.Claims, error) {
	return s.Verifier.Verify(token)
}
