package api

import (
	"net/http"

	"github.com/frantjc/cpm"
	"github.com/go-chi/cors"
)

func newCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "If-Match", cpm.HeaderSession},
		ExposedHeaders:   []string{"ETag", cpm.HeaderSession},
		AllowCredentials: true,
	})
}
