package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/domain"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/service"
	"github.com/amitmore-007/Recipe-Generator/pkg/authsdk"
	"github.com/amitmore-007/Recipe-Generator/pkg/httpx"
	"github.com/amitmore-007/Recipe-Generator/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	ClientIP    httpx.KeyExtractor
}

func (h *AuthHandler) clientIP(r *http.Request) string {
	if h.ClientIP == nil {
		return httpx.IPKeyExtractor(r)
	}
	return h.ClientIP(r)
}

// HandleRegister creates an account.
//
//	@Summary		Register a new user
//	@Description	Creates an account. The email is trimmed and lower-cased before it is stored and must be unique.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest		true	"name, email, password"
//	@Success		201		{object}	authsdk.RegisterResponse	"Account created"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Invalid input or email already in use"
//	@Failure		429		{object}	authsdk.ErrorResponse		"Rate limit exceeded"
//	@Failure		500		{object}	authsdk.ErrorResponse		"Registration failed"
//	@Router			/api/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req, httpx.DefaultMaxBodyBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.AuthService.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var inputErr *service.InputError
		switch {
		case errors.As(err, &inputErr):
			httpx.WriteError(w, http.StatusBadRequest, inputErr.Reason)
		case errors.Is(err, service.ErrDuplicateEmail):
			httpx.WriteError(w, http.StatusBadRequest, "Email already in use")
		default:
			log.Error("registration failed", slog.Any("error", err))
			httpx.WriteError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.RegisterResponse{
		Message: "User registered successfully!",
		User:    toSDKUser(user),
	})
}

// HandleLogin exchanges credentials for a session token.
//
//	@Summary		Log in
//	@Description	Verifies the password and returns an HS256 token valid for 24 hours.
//	@Description	An unknown email and a wrong password produce the same response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	authsdk.LoginResponse	"Session token and user"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Login failed"
//	@Router			/api/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req, httpx.DefaultMaxBodyBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.AuthService.Login(ctx, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       h.clientIP(r),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		log.Error("login failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		Token: res.Token,
		User:  toSDKUser(res.User),
	})
}

// HandleMe returns the profile behind the bearer token.
//
//	@Summary		Current user
//	@Description	Returns the user the bearer token was issued to.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MeResponse		"Authenticated user"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/api/auth/me [get]
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.AuthService.Me(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		log.Error("failed to load user", slog.String("user_id", userID), slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MeResponse{User: toSDKUser(user)})
}

func toSDKUser(u domain.PublicUser) authsdk.User {
	return authsdk.User{ID: u.ID, Name: u.Name, Email: u.Email}
}
