package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	App       AppConfig
	Log       LogConfig
	Vault     VaultConfig
	Policy    PolicyConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" envDefault:"localhost"`
	Port         string        `env:"SERVER_PORT" envDefault:"8080"`
	TimeoutRead  time.Duration `env:"SERVER_TIMEOUT_READ" envDefault:"15s"`
	TimeoutWrite time.Duration `env:"SERVER_TIMEOUT_WRITE" envDefault:"15s"`
	TimeoutIdle  time.Duration `env:"SERVER_TIMEOUT_IDLE" envDefault:"60s"`
}

// DatabaseConfig holds database-related configuration.
// Driver is either "postgres" (default) or "sqlite" for local development.
type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"postgres"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"judging"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME" envDefault:"judging_db"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"prefer"`
	SQLitePath      string        `env:"DB_SQLITE_PATH" envDefault:"judging.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
}

// JWTConfig holds JWT-related configuration.
// Secret is a PEM encoded EC private key.
type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	Expiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Accept,Authorization,Content-Type"`
	ExposedHeaders   []string `env:"CORS_EXPOSED_HEADERS" envSeparator:"," envDefault:"Link"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"300"`
}

// RateLimitConfig holds rate limiting configuration.
// TrustProxy keys clients by X-Forwarded-For / X-Real-IP; enable it only
// behind a reverse proxy that sets those headers.
type RateLimitConfig struct {
	Enabled    bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Requests   int           `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	Duration   time.Duration `env:"RATE_LIMIT_DURATION" envDefault:"1m"`
	TrustProxy bool          `env:"RATE_LIMIT_TRUST_PROXY" envDefault:"false"`
}

// AppConfig holds general application configuration
type AppConfig struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Name    string `env:"APP_NAME" envDefault:"EventJudging"`
	Version string `env:"APP_VERSION" envDefault:"1.0.0"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// VaultConfig holds Vault-related configuration. When enabled, the JWT
// signing key is read from a KV v2 secret instead of JWT_SECRET.
type VaultConfig struct {
	Enabled     bool          `env:"VAULT_ENABLED" envDefault:"false"`
	Address     string        `env:"VAULT_ADDR" envDefault:"http://localhost:8200"`
	Token       string        `env:"VAULT_TOKEN"`
	KVMount     string        `env:"VAULT_KV_MOUNT" envDefault:"secret"`
	JWTKeyPath  string        `env:"VAULT_JWT_KEY_PATH" envDefault:"event-judging/jwt"`
	JWTKeyField string        `env:"VAULT_JWT_KEY_FIELD" envDefault:"private_key"`
	Timeout     time.Duration `env:"VAULT_TIMEOUT" envDefault:"10s"`
}

// PolicyConfig points at an optional TOML file overriding the built-in
// role policy table.
type PolicyConfig struct {
	File string `env:"POLICY_FILE"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// godotenv doesn't override already-set variables, so order matters
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" && !c.Vault.Enabled {
		return fmt.Errorf("JWT_SECRET is required unless VAULT_ENABLED is set")
	}
	if c.Vault.Enabled && c.Vault.Token == "" {
		return fmt.Errorf("VAULT_TOKEN is required when VAULT_ENABLED is set")
	}
	switch strings.ToLower(c.Database.Driver) {
	case "postgres":
		if c.Database.Password == "" && c.App.Env == "production" {
			return fmt.Errorf("DB_PASSWORD is required in production")
		}
	case "sqlite":
		if c.App.Env == "production" {
			return fmt.Errorf("DB_DRIVER=sqlite is not supported in production")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
