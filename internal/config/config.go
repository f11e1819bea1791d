// ABOUTME: moodrun configuration management with backend selection.
// ABOUTME: YAML file, then MOODRUN_* environment overrides, plus the storage backend factory.

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/moodrun/internal/storage"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendBadger   = "badger"
	BackendPostgres = "postgres"
)

// Config stores moodrun configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger", or "postgres".
	Backend string `yaml:"backend,omitempty"`

	// DataDir is the root directory for local storage.
	// SQLite puts moodrun.db here; badger uses a badger/ subdirectory.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/moodrun.
	DataDir string `yaml:"data_dir,omitempty"`

	// DatabaseURL is the PostgreSQL DSN, required when Backend is "postgres".
	DatabaseURL string `yaml:"database_url,omitempty"`

	Server    ServerConfig    `yaml:"server,omitempty"`
	Log       LogConfig       `yaml:"log,omitempty"`
	Telemetry TelemetryConfig `yaml:"telemetry,omitempty"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr          string        `yaml:"addr,omitempty"`
	ReadTimeout   time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout  time.Duration `yaml:"write_timeout,omitempty"`
	AllowedOrigin string        `yaml:"allowed_origin,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// TelemetryConfig holds OTLP exporter settings. An empty endpoint disables export.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint,omitempty"`
	ServiceName string `yaml:"service_name,omitempty"`
	Insecure    bool   `yaml:"insecure,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetServiceName returns the telemetry service name, defaulting to "moodrun".
func (c *Config) GetServiceName() string {
	if c.Telemetry.ServiceName == "" {
		return "moodrun"
	}
	return c.Telemetry.ServiceName
}

// Validate reports configuration that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	switch c.GetBackend() {
	case BackendSQLite, BackendBadger:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("database_url is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend: %q", c.Backend))
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format: %q", c.Log.Format))
	}

	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}
	return errors.Join(errs...)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage(ctx context.Context, logger *zap.Logger) (storage.Repository, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(dataDir, "moodrun.db"))
	case BackendBadger:
		return storage.OpenBadger(filepath.Join(dataDir, "badger"), logger)
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return nil, errors.New("postgres backend requires database_url")
		}
		return storage.OpenPostgres(ctx, c.DatabaseURL, logger)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "moodrun", "config.yaml")
}

// Load reads config from the default path and applies environment overrides.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from path and applies environment overrides.
// A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from MOODRUN_* environment variables.
func (c *Config) ApplyEnv() error {
	setString(&c.Backend, "MOODRUN_BACKEND")
	setString(&c.DataDir, "MOODRUN_DATA_DIR")
	setString(&c.DatabaseURL, "MOODRUN_DATABASE_URL")
	setString(&c.Server.Addr, "MOODRUN_ADDR")
	setString(&c.Server.AllowedOrigin, "MOODRUN_ALLOWED_ORIGIN")
	setString(&c.Log.Level, "MOODRUN_LOG_LEVEL")
	setString(&c.Log.Format, "MOODRUN_LOG_FORMAT")
	setString(&c.Telemetry.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&c.Telemetry.Endpoint, "MOODRUN_OTEL_ENDPOINT")
	setString(&c.Telemetry.ServiceName, "OTEL_SERVICE_NAME")

	if v := os.Getenv("MOODRUN_OTEL_INSECURE"); v != "" {
		c.Telemetry.Insecure = v == "true" || v == "1"
	}
	if err := setDuration(&c.Server.ReadTimeout, "MOODRUN_READ_TIMEOUT"); err != nil {
		return err
	}
	return setDuration(&c.Server.WriteTimeout, "MOODRUN_WRITE_TIMEOUT")
}

// Save writes config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
