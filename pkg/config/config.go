package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rutamundo/backend/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for probes and scraping)
	HealthPort string

	CORSOrigins []string
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Driver is "postgres" for deployments or "sqlite3" for local
	// development.
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// AuthConfig holds the auth core configuration. The signing secret and
// expiry are process-wide, set once at startup and never rotated at
// runtime.
type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
	BcryptCost  int
}

// ObservabilityConfig holds logging and metrics settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("RUTAMUNDO_HOST", "0.0.0.0"),
			Port:            getEnv("RUTAMUNDO_PORT", "8080"),
			ReadTimeout:     getEnvDuration("RUTAMUNDO_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("RUTAMUNDO_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("RUTAMUNDO_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("RUTAMUNDO_SHUTDOWN_TIMEOUT", 30*time.Second),
			HealthPort:      getEnv("RUTAMUNDO_HEALTH_PORT", "9090"),
			CORSOrigins:     splitAndTrim(getEnv("RUTAMUNDO_CORS_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("RUTAMUNDO_DB_DRIVER", "postgres"),
			DSN:          getEnv("RUTAMUNDO_DB_DSN", ""),
			MaxOpenConns: getEnvInt("RUTAMUNDO_DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("RUTAMUNDO_DB_MAX_IDLE_CONNS", 5),
		},
		Auth: AuthConfig{
			TokenSecret: getEnv("RUTAMUNDO_TOKEN_SECRET", ""),
			TokenExpiry: time.Duration(getEnvInt("RUTAMUNDO_TOKEN_EXPIRY_SECONDS", 3600)) * time.Second,
			BcryptCost:  getEnvInt("RUTAMUNDO_BCRYPT_COST", 10),
		},
		Observability: ObservabilityConfig{
			LogLevel:       parseLogLevel(getEnv("RUTAMUNDO_LOG_LEVEL", "info")),
			MetricsEnabled: getEnvBool("RUTAMUNDO_METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	switch c.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("invalid database driver: %s (must be postgres or sqlite3)", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}

	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("token signing secret is required")
	}
	if c.Auth.TokenExpiry <= 0 {
		return fmt.Errorf("token expiry must be positive")
	}

	return nil
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
