package middleware

import (
	"net/http"

	"github.com/habitquest/backend/config"
	"github.com/rs/cors"
)

// AllowCors wraps the handler with the configured allowed origins; an empty
// list means same-origin deployments and allows nothing extra.
func AllowCors(cfg config.Configs, handler http.Handler) http.Handler {
	if len(cfg.ApiServer.AllowCORS) == 0 {
		return handler
	}

	return cors.New(cors.Options{
		AllowedOrigins:   cfg.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(handler)
}
