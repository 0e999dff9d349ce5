// Package config loads the client configuration from viper, the environment
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultAPIURL    = "http://localhost:8000"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5.0
	DefaultBurst     = 1
)

// Viper keys.
const (
	KeyAPIURL        = "api.url"
	KeyAPITimeout    = "api.timeout"
	KeyAPIRateLimit  = "api.rate_limit"
	KeyAPIBurst      = "api.burst"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
	KeyLogFile       = "logging.file"
	KeyReportDir     = "report.dir"
	EnvPrefix        = "GBI"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved client configuration.
type Config struct {
	Logging LoggingConfig
	API     APIConfig
	Report  ReportConfig
}

// APIConfig describes how to reach the analysis backend.
type APIConfig struct {
	URL       string
	Timeout   time.Duration
	RateLimit float64
	Burst     int
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// ReportConfig controls PDF export from the interactive wizard.
type ReportConfig struct {
	Dir string
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyAPITimeout, DefaultTimeout)
	v.SetDefault(KeyAPIRateLimit, DefaultRateLimit)
	v.SetDefault(KeyAPIBurst, DefaultBurst)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyReportDir, ".")
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	path = ExpandPath(path)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			URL:       v.GetString(KeyAPIURL),
			Timeout:   v.GetDuration(KeyAPITimeout),
			RateLimit: v.GetFloat64(KeyAPIRateLimit),
			Burst:     v.GetInt(KeyAPIBurst),
		},
		Logging: LoggingConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
			File:   ExpandPath(v.GetString(KeyLogFile)),
		},
		Report: ReportConfig{
			Dir: ExpandPath(v.GetString(KeyReportDir)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: api.url must be an http(s) URL, got %q", ErrInvalidConfig, c.API.URL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", ErrInvalidConfig)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("%w: api.rate_limit must not be negative", ErrInvalidConfig)
	}
	if c.API.RateLimit > 0 && c.API.Burst < 1 {
		return fmt.Errorf("%w: api.burst must be at least 1", ErrInvalidConfig)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: invalid log level: %s", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
