package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable read by the service.
	EnvPrefix = "REFERRED"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Admin        AdminConfig
	Instagram    InstagramConfig
	CORS         CORSConfig
	Session      SessionConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"REFERRED_APP_ENV" default:"dev"`
	Port         string `envconfig:"REFERRED_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"REFERRED_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"REFERRED_LOG_WARN_STACK" default:"false"`
	Version      string `envconfig:"REFERRED_APP_VERSION" default:"1.0.0"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"REFERRED_DB_DSN"`

	Host     string `envconfig:"REFERRED_DB_HOST"`
	Port     int    `envconfig:"REFERRED_DB_PORT" default:"5432"`
	User     string `envconfig:"REFERRED_DB_USER"`
	Password string `envconfig:"REFERRED_DB_PASSWORD"`
	Name     string `envconfig:"REFERRED_DB_NAME"`
	SSLMode  string `envconfig:"REFERRED_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"REFERRED_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"REFERRED_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"REFERRED_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"REFERRED_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"REFERRED_REDIS_URL"`
	Address      string        `envconfig:"REFERRED_REDIS_ADDR"`
	Password     string        `envconfig:"REFERRED_REDIS_PASSWORD"`
	DB           int           `envconfig:"REFERRED_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REFERRED_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REFERRED_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REFERRED_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REFERRED_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REFERRED_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"REFERRED_JWT_SECRET"`
	Issuer                 string `envconfig:"REFERRED_JWT_ISSUER" default:"referred.space"`
	ExpirationMinutes      int    `envconfig:"REFERRED_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"REFERRED_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"REFERRED_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"REFERRED_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"REFERRED_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"REFERRED_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"REFERRED_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig carries the shared secret gating the admin surface. When the
// key is unset the admin routes fail closed with a configuration error
// instead of preventing process start.
type AdminConfig struct {
	Key string `envconfig:"REFERRED_ADMIN_KEY"`
}

func (a AdminConfig) Configured() bool {
	return strings.TrimSpace(a.Key) != ""
}

// InstagramConfig holds the OAuth app credentials. A missing client id
// degrades the OAuth routes to configuration errors.
type InstagramConfig struct {
	ClientID     string `envconfig:"REFERRED_IG_CLIENT_ID"`
	ClientSecret string `envconfig:"REFERRED_IG_CLIENT_SECRET"`
	RedirectURI  string `envconfig:"REFERRED_IG_REDIRECT_URI"`
	AuthorizeURL string `envconfig:"REFERRED_IG_AUTHORIZE_URL" default:"https://api.instagram.com/oauth/authorize"`
	TokenURL     string `envconfig:"REFERRED_IG_TOKEN_URL" default:"https://api.instagram.com/oauth/access_token"`
	GraphURL     string `envconfig:"REFERRED_IG_GRAPH_URL" default:"https://graph.instagram.com"`
}

func (i InstagramConfig) Configured() bool {
	return strings.TrimSpace(i.ClientID) != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"REFERRED_ALLOWED_ORIGINS" default:"*"`
}

type SessionConfig struct {
	CookieName   string        `envconfig:"REFERRED_SESSION_COOKIE" default:"rs_session"`
	TTL          time.Duration `envconfig:"REFERRED_SESSION_TTL" default:"720h"`
	CookieSecure bool          `envconfig:"REFERRED_SESSION_COOKIE_SECURE" default:"false"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"REFERRED_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		"REFERRED_DB_HOST": db.Host,
		"REFERRED_DB_USER": db.User,
		"REFERRED_DB_NAME": db.Name,
	}
	for _, env := range []string{"REFERRED_DB_HOST", "REFERRED_DB_USER", "REFERRED_DB_NAME"} {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either REFERRED_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
