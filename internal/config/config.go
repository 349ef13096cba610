package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	GRPC     GRPCConfig
	Auth     AuthConfig
	AMQP     AMQPConfig
	Log      LogConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// HTTPConfig contains REST API settings.
type HTTPConfig struct {
	Address        string        // listen address (e.g., ":8080")
	RequestTimeout time.Duration // per-request deadline
}

// GRPCConfig contains gRPC health endpoint settings. An empty address disables it.
type GRPCConfig struct {
	Address string
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string        // JWT signing secret
	TokenTTL  time.Duration // lifetime of issued tokens
}

// AMQPConfig configures audit event publishing. An empty URL disables it.
type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// LoadEnvFile loads variables from the given .env files (default ".env").
// Variables already set in the environment win. A missing file is not an error.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load loads configuration from environment variables with sensible defaults.
// JWT_SECRET is required.
func Load() (*Config, error) {
	cfg, err := load("")
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, cfg.Validate()
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg, err := load("dev-secret-change-me")
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func load(defaultSecret string) (*Config, error) {
	var errs []error
	reqTimeout, err := getEnvDuration("HTTP_REQUEST_TIMEOUT", 30*time.Second)
	errs = append(errs, err)
	ttl, err := getEnvDuration("JWT_TTL", time.Hour)
	errs = append(errs, err)
	pretty, err := getEnvBool("LOG_PRETTY", false)
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "finance.db"),
		},
		HTTP: HTTPConfig{
			Address:        getEnv("HTTP_ADDRESS", ":8080"),
			RequestTimeout: reqTimeout,
		},
		GRPC: GRPCConfig{
			Address: getEnv("GRPC_ADDRESS", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", defaultSecret),
			TokenTTL:  ttl,
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "finance"),
			Queue:    getEnv("AMQP_QUEUE", "finance.audit"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: pretty,
		},
	}, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Database.Path == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.HTTP.Address == "" {
		problems = append(problems, "HTTP_ADDRESS cannot be empty")
	}
	if c.HTTP.RequestTimeout < time.Second {
		problems = append(problems, fmt.Sprintf("invalid HTTP_REQUEST_TIMEOUT %v: must be at least 1s", c.HTTP.RequestTimeout))
	}
	if c.Auth.TokenTTL < time.Minute || c.Auth.TokenTTL > 30*24*time.Hour {
		problems = append(problems, fmt.Sprintf("invalid JWT_TTL %v: must be between 1m and 720h", c.Auth.TokenTTL))
	}
	if c.AMQP.URL != "" {
		if u, err := url.Parse(c.AMQP.URL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP_URL: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP_URL scheme %q: must be amqp or amqps", u.Scheme))
		}
		if c.AMQP.Exchange == "" || c.AMQP.Queue == "" {
			problems = append(problems, "AMQP_EXCHANGE and AMQP_QUEUE are required when AMQP_URL is set")
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_LEVEL %q", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		return d, nil
	}
	return defaultVal, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
		}
		return b, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	amqp := "disabled"
	if c.AMQP.URL != "" {
		amqp = c.AMQP.Exchange + "/" + c.AMQP.Queue
	}
	grpc := c.GRPC.Address
	if grpc == "" {
		grpc = "disabled"
	}
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, gRPC: %s, AMQP: %s, Auth: *** (masked) ***}",
		c.Database.Path, c.HTTP.Address, grpc, amqp)
}
