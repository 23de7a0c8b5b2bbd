package authsdk

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid credentials"`
}

// User is the public projection of an account. It never carries the
// password hash.
type User struct {
	ID    string `json:"id" example:"01JBQ8Y3G6W4V5X2K7N9R0T1ZC"`
	Name  string `json:"name" example:"Ana"`
	Email string `json:"email" example:"ana@x.io"`
}

// ============================================================================
// Auth
// ============================================================================

type RegisterRequest struct {
	Name     string `json:"name" example:"Ana"`
	Email    string `json:"email" example:"ana@x.io"`
	Password string `json:"password" example:"secret1"`
}

type RegisterResponse struct {
	Message string `json:"message" example:"User registered successfully!"`
	User    User   `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"ana@x.io"`
	Password string `json:"password" example:"secret1"`
}

type LoginResponse struct {
	// Token is an HS256 JWT valid for 24 hours.
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  User   `json:"user"`
}

type MeResponse struct {
	User User `json:"user"`
}

// ============================================================================
// Recipes
// ============================================================================

type GenerateRecipeRequest struct {
	Ingredients string `json:"ingredients" example:"eggs, spinach, feta"`
	Language    string `json:"language,omitempty" example:"en"`
}

type RecipeResponse struct {
	Recipe    string `json:"recipe"`
	Nutrition any    `json:"nutrition,omitempty" swaggertype:"object"`
	Language  string `json:"language" example:"en"`
}

type RecipePDFRequest struct {
	Recipe   string `json:"recipe"`
	Title    string `json:"title,omitempty" example:"Generated Recipe"`
	Language string `json:"language,omitempty" example:"en"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}
