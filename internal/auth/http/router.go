package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/service"
	"github.com/amitmore-007/Recipe-Generator/internal/auth/store"
	"github.com/amitmore-007/Recipe-Generator/internal/recipe"
	"github.com/amitmore-007/Recipe-Generator/pkg/httpx"
	"github.com/amitmore-007/Recipe-Generator/pkg/jwtx"
	"github.com/amitmore-007/Recipe-Generator/pkg/slogx"

	_ "github.com/amitmore-007/Recipe-Generator/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       httpx.RateLimitProfiles

	store         store.Store
	AuthService   *service.AuthService
	RecipeService *recipe.Client

	// ClientIP keys per-IP rate limits and login audit rows.
	ClientIP httpx.KeyExtractor
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
	limits httpx.RateLimitProfiles,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		limits:       limits,
		ClientIP:     httpx.IPKeyExtractor,
	}

	// Request logging wraps CORS so preflights are logged too.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigins),
	}

	return r
}

// ApplyRoutes registers every route. It must run before the router serves.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerRecipes()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	r.handler = httpx.Chain(r.Mux, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Recipe Generator API
//	@version		0.1.0
//	@description	Account registration and login for the Recipe Generator, plus an authenticated gateway to the recipe service.
//	@description
//	@description				Session tokens are HS256 JWTs valid for 24 hours.
//
//	@contact.name				Recipe Generator Team
//	@contact.url				https://github.com/amitmore-007/Recipe-Generator
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:5000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, ClientIP: r.ClientIP}

	// Credential endpoints - strict rate limit by IP (brute force protection)
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.limits.Strict, r.ClientIP),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.limits.Strict, r.ClientIP),
		),
	)

	// Authenticated read - lenient rate limit by user
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(r.limits.Lenient, r.ClientIP),
		),
	)
}

func (r *Router) registerRecipes() {
	h := &RecipeHandler{Recipes: r.RecipeService}

	// Each call fans out to the recipe service - moderate rate limit by user
	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(r.limits.Moderate, r.ClientIP),
		)
	}

	r.Mux.Handle("POST /api/recipes/generate", secured(h.HandleGenerate))
	r.Mux.Handle("POST /api/recipes/generate-from-image", secured(h.HandleGenerateFromImage))
	r.Mux.Handle("POST /api/recipes/pdf", secured(h.HandlePDF))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /{$}", RootHandler())

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Lenient, r.ClientIP),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.limits.Lenient, r.ClientIP),
		),
	)
}
