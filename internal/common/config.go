package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Logging     LoggingConfig  `toml:"logging"`
	Storage     StorageConfig  `toml:"storage"`
	Software    SoftwareConfig `toml:"software"`
	Share       ShareConfig    `toml:"share"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// SoftwareConfig controls the remote software-catalog fetch.
type SoftwareConfig struct {
	CatalogURL      string `toml:"catalog_url"`      // Remote catalog JSON endpoint; empty = embedded catalog only
	RefreshSchedule string `toml:"refresh_schedule"` // Cron schedule for catalog refresh
	RequestTimeout  string `toml:"request_timeout"`  // e.g. "30s"
	RateLimit       int    `toml:"rate_limit"`       // Requests per second against the catalog host
}

// ShareConfig controls how share links are rendered back to clients.
type ShareConfig struct {
	BaseURL string `toml:"base_url"` // Prefix for share URLs, e.g. "https://tweakforge.gg/#"
}

// NewDefaultConfig returns a config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/tweakforge",
			},
		},
		Software: SoftwareConfig{
			RefreshSchedule: "0 */6 * * *", // every six hours
			RequestTimeout:  "30s",
			RateLimit:       5,
		},
		Share: ShareConfig{
			BaseURL: "http://localhost:8085/#",
		},
	}
}

// LoadFromFiles loads configuration from defaults, then merges each
// config file in order (later files override earlier ones), then
// applies environment variable overrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies TWEAKFORGE_* environment variables on top
// of file configuration.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("TWEAKFORGE_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("TWEAKFORGE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("TWEAKFORGE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if level := os.Getenv("TWEAKFORGE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if path := os.Getenv("TWEAKFORGE_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
	if url := os.Getenv("TWEAKFORGE_CATALOG_URL"); url != "" {
		config.Software.CatalogURL = url
	}
	if base := os.Getenv("TWEAKFORGE_SHARE_BASE_URL"); base != "" {
		config.Share.BaseURL = base
	}
}

// ApplyFlagOverrides applies command-line flag values. Flags have the
// highest priority, after files and environment.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks configuration consistency at startup.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Software.RefreshSchedule != "" {
		if err := ValidateRefreshSchedule(c.Software.RefreshSchedule); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRefreshSchedule validates a cron schedule expression.
func ValidateRefreshSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return nil
}

// IsProduction returns true when running with a production environment
// setting.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
