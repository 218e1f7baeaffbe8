package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration, sourced from environment variables.
type Config struct {
	Env string `envconfig:"APP_ENV" default:"development"`

	// Default for local development with the emulator.
	SpannerDatabase string `envconfig:"SPANNER_DATABASE" default:"projects/test-project/instances/dev-instance/databases/dealmarket-db"`

	GRPCPort string `envconfig:"GRPC_PORT" default:"9090"`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	RateLimit float64 `envconfig:"RATE_LIMIT" default:"20"`
	RateBurst int     `envconfig:"RATE_BURST" default:"40"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Environment returns the parsed deployment environment.
func (c *Config) Environment() Environment {
	return ParseEnvironment(c.Env)
}

// Load reads the optional dotenv files (first existing wins per key) and
// then binds the process environment into a Config.
func Load(dotenv ...string) (*Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT must be positive, got %v", cfg.RateLimit)
	}
	if cfg.RateBurst <= 0 {
		return nil, fmt.Errorf("RATE_BURST must be positive, got %d", cfg.RateBurst)
	}
	return &cfg, nil
}

// SpannerTarget names the parts of a Spanner database path.
type SpannerTarget struct {
	Project  string
	Instance string
	Database string
}

// InstancePath returns "projects/<p>/instances/<i>".
func (t SpannerTarget) InstancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", t.Project, t.Instance)
}

// DatabasePath returns the full database path.
func (t SpannerTarget) DatabasePath() string {
	return fmt.Sprintf("%s/databases/%s", t.InstancePath(), t.Database)
}

// SpannerTarget splits SpannerDatabase into its parts.
func (c *Config) SpannerTarget() (SpannerTarget, error) {
	parts := strings.Split(c.SpannerDatabase, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" ||
		parts[1] == "" || parts[3] == "" || parts[5] == "" {
		return SpannerTarget{}, fmt.Errorf("malformed SPANNER_DATABASE %q: want projects/<p>/instances/<i>/databases/<d>", c.SpannerDatabase)
	}
	return SpannerTarget{Project: parts[1], Instance: parts[3], Database: parts[5]}, nil
}
