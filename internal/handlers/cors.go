package handlers

import (
	"net/http"

	"github.com/rs/cors"

	"gitlab.com/ocr-extension/extension-server/internal/config"
)

var (
	corsHandler = cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
)

// CorsHandler answers CORS preflight requests when enabled in config. Other
// requests are passed to handler untouched.
func CorsHandler(config *config.Config, handler http.Handler) http.Handler {
	if config.General.CORSPreflight {
		handler = corsHandler.Handler(handler)
	}
	return handler
}
