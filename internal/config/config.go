package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/bike-rental-dashboard/internal/logging"
)

type AppConfig struct {
	Port string `envconfig:"PORT" default:"8080"`

	// DatasetPath is read unless DatasetURL is set.
	DatasetPath string        `envconfig:"DATASET_PATH" default:"bike.csv"`
	DatasetURL  string        `envconfig:"DATASET_URL"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// IntegrityInterval controls how often the source is compared with the
	// loaded table (0 = disabled).
	IntegrityInterval time.Duration `envconfig:"INTEGRITY_INTERVAL" default:"0"`

	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string `envconfig:"LOG_FORMAT" default:"json"`
	TracingEnabled bool   `envconfig:"TRACING_ENABLED" default:"false"`

	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads configuration from the environment (and a .env file when
// present) with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found", slog.String("reason", err.Error()))
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks values that envconfig cannot.
func (c *AppConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.DatasetPath == "" && c.DatasetURL == "" {
		return fmt.Errorf("one of DATASET_PATH or DATASET_URL is required")
	}
	if c.DatasetURL != "" && !strings.HasPrefix(c.DatasetURL, "http://") && !strings.HasPrefix(c.DatasetURL, "https://") {
		return fmt.Errorf("invalid DATASET_URL %q: must be http or https", c.DatasetURL)
	}
	if c.IntegrityInterval < 0 {
		return fmt.Errorf("INTEGRITY_INTERVAL must not be negative")
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: use json or text", c.LogFormat)
	}
	return nil
}
