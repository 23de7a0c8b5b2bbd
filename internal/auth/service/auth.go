package service

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/domain"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/store"
	"github.com/amitmore-007/Recipe-Generator/pkg/cryptox"
	"github.com/amitmore-007/Recipe-Generator/pkg/slogx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
)

var tracer = otel.Tracer("github.com/amitmore-007/Recipe-Generator/internal/auth/service")

// dummyPassword is hashed once and verified against when a login names an
// unknown email, so both failure paths pay for one hash comparison.
const dummyPassword = "recipe-generator-dummy-password"

type AuthService struct {
	Store  store.Store
	Hasher cryptox.PasswordHasher
	Tokens *TokenService

	hashSem *semaphore.Weighted

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires the auth flow. hashConcurrency bounds how many
// hash or verify calls run at once; zero or less means GOMAXPROCS.
func NewAuthService(st store.Store, hasher cryptox.PasswordHasher, tokens *TokenService, hashConcurrency int) *AuthService {
	if hashConcurrency <= 0 {
		hashConcurrency = runtime.GOMAXPROCS(0)
	}
	return &AuthService{
		Store:   st,
		Hasher:  hasher,
		Tokens:  tokens,
		hashSem: semaphore.NewWeighted(int64(hashConcurrency)),
	}
}

// LoginInput is the login payload plus the caller's address for the audit
// trail.
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.PublicUser
}

// Register creates an account. The email pre-check only saves a hash on the
// common path; the store's unique index decides races.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.PublicUser, error) {
	ctx, span := tracer.Start(ctx, "auth.Register", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	l := slogx.FromContext(ctx)

	if err := in.validate(); err != nil {
		return domain.PublicUser{}, err
	}

	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)

	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.PublicUser{}, ErrDuplicateEmail
	case !errors.Is(err, store.ErrNotFound):
		return domain.PublicUser{}, fail(span, storageErr("lookup user", err))
	}

	hash, err := s.hash(ctx, in.Password)
	if err != nil {
		return domain.PublicUser{}, fail(span, err)
	}

	u, err := s.Store.Users().CreateUser(ctx, domain.NewUser{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicUser{}, ErrDuplicateEmail
		}
		return domain.PublicUser{}, fail(span, storageErr("create user", err))
	}

	span.SetAttributes(attribute.String("user.id", u.ID))
	l.Info("user registered", slog.String("user_id", u.ID))

	return u.Public(), nil
}

// Login checks the password and issues a session token. Unknown email and
// wrong password return the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	ctx, span := tracer.Start(ctx, "auth.Login", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	email := domain.NormalizeEmail(in.Email)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, fail(span, storageErr("lookup user", err))
		}
		// Burn the same work a real comparison would.
		_ = s.verify(ctx, in.Password, s.dummy())
		s.recordAttempt(ctx, email, in.IP, false)
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := s.verify(ctx, in.Password, u.PasswordHash); err != nil {
		if ctx.Err() != nil {
			return LoginResult{}, fail(span, err)
		}
		if !errors.Is(err, cryptox.ErrMismatch) {
			slogx.FromContext(ctx).Error("stored password hash unusable",
				slog.String("user_id", u.ID), slog.Any("error", err))
		}
		s.recordAttempt(ctx, email, in.IP, false)
		return LoginResult{}, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return LoginResult{}, fail(span, err)
	}

	s.recordAttempt(ctx, email, in.IP, true)
	span.SetAttributes(attribute.String("user.id", u.ID))

	return LoginResult{Token: token, ExpiresAt: exp, User: u.Public()}, nil
}

// Me returns the public profile of an authenticated user. A token for a user
// that no longer exists is treated as bad credentials.
func (s *AuthService) Me(ctx context.Context, userID string) (domain.PublicUser, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrInvalidCredentials
		}
		return domain.PublicUser{}, storageErr("get user", err)
	}
	return u.Public(), nil
}

func (s *AuthService) hash(ctx context.Context, password string) (string, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.hashSem.Release(1)

	return s.Hasher.Hash(password)
}

func (s *AuthService) verify(ctx context.Context, password, encoded string) error {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.hashSem.Release(1)

	return s.Hasher.Verify(password, encoded)
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash(dummyPassword)
		if err != nil {
			slog.Error("failed to build dummy password hash", slog.Any("error", err))
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

// recordAttempt writes the audit row. Failures are logged and never change
// the login outcome.
func (s *AuthService) recordAttempt(ctx context.Context, email, ip string, success bool) {
	err := s.Store.LoginAttempts().RecordLoginAttempt(ctx, domain.LoginAttempt{
		Email:       email,
		IP:          ip,
		Success:     success,
		AttemptedAt: s.Tokens.Now(),
	})
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to record login attempt", slog.Any("error", err))
	}
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
