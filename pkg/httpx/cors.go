package httpx

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORS lets the browser client call the API from another origin. A single
// "*" entry allows any origin.
func CORS(allowedOrigins []string) Middleware {
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Retry-After", "X-Request-ID", "Content-Disposition"},
		MaxAge:         600,
	})
	return c.Handler
}
