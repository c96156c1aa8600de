package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/HUNTSTAR747/referred-space-server/api/responses"
	"github.com/HUNTSTAR747/referred-space-server/pkg/config"
	pkgerrors "github.com/HUNTSTAR747/referred-space-server/pkg/errors"
	"github.com/HUNTSTAR747/referred-space-server/pkg/logger"
)

const adminKeyHeader = "X-Admin-Key"

// AdminKey gates the admin surface behind a shared secret supplied either as
// a bearer token or via the X-Admin-Key header. An unset server key fails
// closed with a configuration error before any request data is touched.
func AdminKey(cfg config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Configured() {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeConfig, "admin access not configured"))
				return
			}

			provided := bearerToken(r)
			if provided == "" {
				provided = strings.TrimSpace(r.Header.Get(adminKeyHeader))
			}
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.Key)) != 1 {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "unauthorized"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
