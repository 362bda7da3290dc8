package utfall

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cenv "github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// envPrefix is prepended to every configuration environment variable
const envPrefix = "UTFALL_"

// Config holds all settings of a run.
// All settings can be configured via environment variables prefixed with UTFALL_.
type Config struct {
	// BaseDir holds the marker, the downloaded CSV and the database (default: ~/.utf_all-sqlite)
	BaseDir string `env:"BASE_DIR"`

	// Endpoint is the URL of the CSV to fetch
	Endpoint string `env:"ENDPOINT" envDefault:"https://www.post.japanpost.jp/zipcode/utf_all.csv" validate:"required,url"`

	// Table is the destination table name (default: utf_all)
	Table string `env:"TABLE" envDefault:"utf_all" validate:"required"`

	// BatchSize is the number of rows committed per transaction (default: 10000)
	BatchSize int `env:"BATCH_SIZE" envDefault:"10000" validate:"min=1"`

	// HTTPTimeout bounds each HTTP request; 0 keeps the client's default of no timeout
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"0s" validate:"gte=0"`

	// UserAgent is sent with every request
	UserAgent string `env:"USER_AGENT" envDefault:"utfall"`

	// LogLevel is the minimum log level: debug, info, warn, error (default: info)
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// LogFormat is the log format: text or json (default: text)
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

// DefaultConfig returns the configuration used when no environment variable is set.
func DefaultConfig() (*Config, error) {
	return LoadConfigFromEnvironment(map[string]string{})
}

// LoadConfig reads configuration from the process environment.
// It applies defaults for unset values and validates the result.
func LoadConfig() (*Config, error) {
	return loadConfig(cenv.Options{Prefix: envPrefix})
}

// LoadConfigFromEnvironment reads configuration from environ instead of the process
// environment. Keys carry the UTFALL_ prefix.
func LoadConfigFromEnvironment(environ map[string]string) (*Config, error) {
	return loadConfig(cenv.Options{Prefix: envPrefix, Environment: environ})
}

func loadConfig(opts cenv.Options) (*Config, error) {
	cfg := &Config{}
	if err := cenv.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if cfg.BaseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config load: failed to resolve home directory: %w", err)
		}
		cfg.BaseDir = filepath.Join(home, defaultBaseDirName)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(c.BaseDir) == "" {
		return fmt.Errorf("%w: base directory is empty", ErrInvalidConfig)
	}
	if err := newSchemaValidator().validateIdentifier(c.Table); err != nil {
		return fmt.Errorf("%w: table: %w", ErrInvalidConfig, err)
	}
	return nil
}

// MarkerPath returns the path of the file holding the last fetched Last-Modified value.
func (c *Config) MarkerPath() string {
	return filepath.Join(c.BaseDir, markerFileName)
}

// DataPath returns the path of the downloaded CSV. When the endpoint is a
// compressed file the compression extension is kept so it can be decompressed on read.
func (c *Config) DataPath() string {
	return filepath.Join(c.BaseDir, dataFileName+compressionForEndpoint(c.Endpoint).Extension())
}

// DatabasePath returns the path of the SQLite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.BaseDir, databaseFileName)
}
