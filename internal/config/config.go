package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig
	Jobs      JobsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string        `env:"SERVER_PORT" envDefault:"8080"`
	Env            string        `env:"SERVER_ENV" envDefault:"development"`
	LogLevel       string        `env:"LOG_LEVEL"`
	ReadTimeout    time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout   time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Scheme    string `env:"DB_SCHEME" envDefault:"ws"`
	Host      string `env:"DB_HOST" envDefault:"localhost"`
	Port      string `env:"DB_PORT" envDefault:"8000"`
	Namespace string `env:"DB_NAMESPACE" envDefault:"backoffice"`
	Database  string `env:"DB_DATABASE" envDefault:"main"`
	User      string `env:"DB_USER" envDefault:"root"`
	Password  string `env:"DB_PASSWORD" envDefault:"root"`
}

// JWTConfig holds JWT signing settings
type JWTConfig struct {
	PrivateKeyPath string        `env:"JWT_PRIVATE_KEY_PATH" envDefault:"./keys/private.pem"`
	PublicKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH" envDefault:"./keys/public.pem"`
	ExpirationMins int           `env:"JWT_EXPIRATION_MINS" envDefault:"60"`
	Issuer         string        `env:"JWT_ISSUER" envDefault:"backoffice.forgo.software"`
	RefreshTTL     time.Duration `env:"JWT_REFRESH_TTL" envDefault:"720h"`
}

// StorageConfig holds object storage settings
type StorageConfig struct {
	Root          string   `env:"STORAGE_ROOT" envDefault:"./data/storage"`
	PublicBaseURL string   `env:"STORAGE_PUBLIC_BASE_URL" envDefault:"http://localhost:8080/storage"`
	MaxUploadSize int64    `env:"STORAGE_MAX_UPLOAD_BYTES" envDefault:"5242880"`
	AllowedTypes  []string `env:"STORAGE_ALLOWED_TYPES" envSeparator:"," envDefault:"image/jpeg,image/png,image/webp,image/gif"`
}

// AuthConfig holds sign-in throttling settings
type AuthConfig struct {
	LoginPerMinute int `env:"AUTH_LOGIN_PER_MINUTE" envDefault:"10"`
	LoginBurst     int `env:"AUTH_LOGIN_BURST" envDefault:"5"`
}

// TelemetryConfig holds OpenTelemetry settings
type TelemetryConfig struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"true"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"backoffice-api"`
}

// JobsConfig holds background job settings
type JobsConfig struct {
	TokenSweepInterval time.Duration `env:"JOBS_TOKEN_SWEEP_INTERVAL" envDefault:"1h"`
	RevokedRetention   time.Duration `env:"JOBS_REVOKED_TOKEN_RETENTION" envDefault:"168h"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Server.AllowedOrigins = trimAll(cfg.Server.AllowedOrigins)
	cfg.Storage.AllowedTypes = trimAll(cfg.Storage.AllowedTypes)
	cfg.Storage.PublicBaseURL = strings.TrimRight(cfg.Storage.PublicBaseURL, "/")

	return cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}
	switch strings.ToLower(c.Server.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got '%s'", c.Server.LogLevel))
	}

	// Database validation
	if c.Database.Scheme != "ws" && c.Database.Scheme != "wss" && c.Database.Scheme != "http" && c.Database.Scheme != "https" {
		errs = append(errs, fmt.Errorf("DB_SCHEME must be ws, wss, http or https, got '%s'", c.Database.Scheme))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	// JWT validation - key paths are critical for production
	if c.IsProduction() {
		if c.JWT.PrivateKeyPath == "" {
			errs = append(errs, errors.New("JWT_PRIVATE_KEY_PATH is required in production"))
		}
		if c.JWT.PublicKeyPath == "" {
			errs = append(errs, errors.New("JWT_PUBLIC_KEY_PATH is required in production"))
		}
	}
	if c.JWT.ExpirationMins <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
	}
	if c.JWT.RefreshTTL <= 0 {
		errs = append(errs, errors.New("JWT_REFRESH_TTL must be positive"))
	}

	// Storage validation
	if c.Storage.Root == "" {
		errs = append(errs, errors.New("STORAGE_ROOT is required"))
	}
	if c.Storage.PublicBaseURL == "" {
		errs = append(errs, errors.New("STORAGE_PUBLIC_BASE_URL is required"))
	}
	if c.Storage.MaxUploadSize <= 0 {
		errs = append(errs, errors.New("STORAGE_MAX_UPLOAD_BYTES must be positive"))
	}
	if len(c.Storage.AllowedTypes) == 0 {
		errs = append(errs, errors.New("STORAGE_ALLOWED_TYPES must have at least one content type"))
	}

	// Auth validation
	if c.Auth.LoginPerMinute <= 0 {
		errs = append(errs, errors.New("AUTH_LOGIN_PER_MINUTE must be positive"))
	}
	if c.Auth.LoginBurst <= 0 {
		errs = append(errs, errors.New("AUTH_LOGIN_BURST must be positive"))
	}

	if c.Jobs.TokenSweepInterval <= 0 {
		errs = append(errs, errors.New("JOBS_TOKEN_SWEEP_INTERVAL must be positive"))
	}
	if c.Jobs.RevokedRetention < 0 {
		errs = append(errs, errors.New("JOBS_REVOKED_TOKEN_RETENTION must not be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// TracingEnabled reports whether spans should be exported
func (t TelemetryConfig) TracingEnabled() bool {
	return t.Enabled && t.Endpoint != ""
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
