package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/HUNTSTAR747/referred-space-server/pkg/config"
)

// CORS returns middleware applying the configured allowed origin policy.
// The browser extension and the OAuth success page both cross origins, so
// the default allows everything until origins are pinned per deployment.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Key", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
