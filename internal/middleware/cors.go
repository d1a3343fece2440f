package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns a middleware with permissive defaults. The profile page and
// the activation flow are served from other origins, so the API stays open.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		MaxAge: 300,
	})
}
