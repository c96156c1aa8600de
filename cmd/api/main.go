package main

import (
	"context"
	"net/http"
	"os"

	"github.com/HUNTSTAR747/referred-space-server/api/routes"
	"github.com/HUNTSTAR747/referred-space-server/internal/auth"
	"github.com/HUNTSTAR747/referred-space-server/internal/creators"
	"github.com/HUNTSTAR747/referred-space-server/internal/oauth"
	"github.com/HUNTSTAR747/referred-space-server/internal/registry"
	"github.com/HUNTSTAR747/referred-space-server/internal/sessions"
	"github.com/HUNTSTAR747/referred-space-server/internal/users"
	"github.com/HUNTSTAR747/referred-space-server/pkg/auth/session"
	"github.com/HUNTSTAR747/referred-space-server/pkg/config"
	"github.com/HUNTSTAR747/referred-space-server/pkg/db"
	"github.com/HUNTSTAR747/referred-space-server/pkg/instagram"
	"github.com/HUNTSTAR747/referred-space-server/pkg/logger"
	"github.com/HUNTSTAR747/referred-space-server/pkg/migrate"
	"github.com/HUNTSTAR747/referred-space-server/pkg/redis"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	sessionStore, err := sessions.NewStore(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session store", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	creatorsRepo := creators.NewRepository(dbClient.DB())
	registryService, err := registry.NewService(registry.NewRepository(dbClient.DB()), creatorsRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create registry service", err)
		os.Exit(1)
	}

	// OAuth stays optional. Without credentials the routes answer with a
	// configuration error instead of blocking startup.
	var oauthService oauth.Service
	if cfg.Instagram.Configured() {
		igClient, err := instagram.NewClient(cfg.Instagram, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create instagram client", err)
			os.Exit(1)
		}
		oauthService, err = oauth.NewService(igClient, creatorsRepo, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create oauth service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "instagram credentials unset, oauth routes degraded")
	}

	if !cfg.Admin.Configured() {
		logg.Warn(context.Background(), "admin key unset, admin routes degraded")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Deps{
			DB:              dbClient,
			Redis:           redisClient,
			SessionChecker:  sessionManager,
			AuthService:     authService,
			RegistryService: registryService,
			OAuthService:    oauthService,
			SessionStore:    sessionStore,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
