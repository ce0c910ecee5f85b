package config

import (
	"os"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"fintrack/internal/logger"
)

// devSecretKey is only accepted outside production.
const devSecretKey = "fallback-secret-key-for-dev-only"

// Config holds application configuration. It is loaded once at startup and
// never mutated afterwards.
type Config struct {
	// Server
	Env         string `env:"ENV,default=development"`
	Port        string `env:"PORT,default=8080"`
	ProjectName string `env:"PROJECT_NAME,default=Personal Finance Tracker API"`
	CORSOrigins string `env:"BACKEND_CORS_ORIGINS"`

	// Credentials
	SecretKey                string `env:"SECRET_KEY"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES,default=11520"`

	// Database
	DatabaseURL   string `env:"DATABASE_URL"`
	DBHost        string `env:"DB_HOST,default=localhost"`
	DBPort        string `env:"DB_PORT,default=5432"`
	DBUser        string `env:"DB_USER,default=fintrack"`
	DBPassword    string `env:"DB_PASSWORD,default=fintrack"`
	DBName        string `env:"DB_NAME,default=fintrack"`
	DBSSLMode     string `env:"DB_SSLMODE,default=disable"`
	MigrationsDir string `env:"MIGRATIONS_DIR,default=migrations"`
}

// Load reads an optional .env file and maps the environment onto a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Get().Warnw("failed to read .env file", "error", err)
	}

	cfg := &Config{}
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to map environment onto configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SecretKey == "" {
		if c.IsProduction() {
			return errors.New("SECRET_KEY must be set in production")
		}
		logger.Get().Warn("SECRET_KEY not set, using development fallback")
		c.SecretKey = devSecretKey
	}
	if c.AccessTokenExpireMinutes <= 0 {
		return errors.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", c.AccessTokenExpireMinutes)
	}
	return nil
}

// IsProduction reports whether the process runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TokenTTL is the default lifetime of issued access tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// AllowedOrigins splits BACKEND_CORS_ORIGINS. Both "a,b" and a JSON-style
// list `["a","b"]` are accepted.
func (c *Config) AllowedOrigins() []string {
	raw := strings.TrimSpace(c.CORSOrigins)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")

	var origins []string
	for _, part := range strings.Split(raw, ",") {
		origin := strings.Trim(strings.TrimSpace(part), `"'`)
		origin = strings.TrimSuffix(origin, "/")
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
