package httpx

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows browser clients from origins to call the API with bearer
// tokens. An empty origin list disables the middleware.
func CORS(origins []string) Middleware {
	if len(origins) == 0 {
		return nil
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Retry-After", "X-Request-ID", "WWW-Authenticate"},
		MaxAge:         600,
	})
	return c.Handler
}
