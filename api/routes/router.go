package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HUNTSTAR747/referred-space-server/api/controllers"
	"github.com/HUNTSTAR747/referred-space-server/api/middleware"
	"github.com/HUNTSTAR747/referred-space-server/internal/auth"
	"github.com/HUNTSTAR747/referred-space-server/internal/oauth"
	"github.com/HUNTSTAR747/referred-space-server/internal/registry"
	"github.com/HUNTSTAR747/referred-space-server/internal/sessions"
	"github.com/HUNTSTAR747/referred-space-server/pkg/auth/session"
	"github.com/HUNTSTAR747/referred-space-server/pkg/config"
	"github.com/HUNTSTAR747/referred-space-server/pkg/db"
	"github.com/HUNTSTAR747/referred-space-server/pkg/logger"
	"github.com/HUNTSTAR747/referred-space-server/pkg/redis"
)

// Deps bundles the wired services the router mounts.
type Deps struct {
	DB              db.Pinger
	Redis           *redis.Client
	SessionChecker  session.AccessSessionChecker
	AuthService     auth.Service
	RegistryService registry.Service
	OAuthService    oauth.Service
	SessionStore    *sessions.Store
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Get("/", controllers.Root(cfg))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/check-codes", controllers.CheckCodes(deps.RegistryService, logg))
		r.Post("/report-code", controllers.ReportCode(deps.RegistryService, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", controllers.AuthSignup(deps.AuthService, logg))
			r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
			r.With(middleware.Auth(cfg.JWT, deps.SessionChecker, logg)).
				Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminKey(cfg.Admin, logg))
		r.Post("/store-codes", controllers.AdminSubmitCodes(deps.RegistryService, logg))
		r.Get("/store-codes", controllers.AdminListStores(deps.RegistryService, logg))
	})

	r.Route("/oauth", func(r chi.Router) {
		r.Get("/instagram", controllers.OAuthAuthorize(deps.OAuthService, logg))
		r.Get("/callback", controllers.OAuthCallback(deps.OAuthService, deps.SessionStore, cfg.Session, logg))
		r.Get("/success", controllers.OAuthSuccess(deps.SessionStore, cfg.Session, logg))
	})

	return r
}
