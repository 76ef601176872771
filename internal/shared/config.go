package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Extractor ExtractorConfig `toml:"extractor"`
	Output    OutputConfig    `toml:"output"`
	Database  DatabaseConfig  `toml:"database"`
}

// ExtractorConfig controls how the yt-dlp binary is invoked.
type ExtractorConfig struct {
	Binary                 string  `toml:"binary"`
	StrategyTimeoutSeconds int     `toml:"strategy_timeout_seconds"`
	FallbackTimeoutSeconds int     `toml:"fallback_timeout_seconds"`
	DetailTimeoutSeconds   int     `toml:"detail_timeout_seconds"`
	DetailRateLimit        float64 `toml:"detail_rate_limit"`
}

// StrategyTimeout bounds a single enumeration strategy call.
func (e ExtractorConfig) StrategyTimeout() time.Duration {
	return time.Duration(e.StrategyTimeoutSeconds) * time.Second
}

// FallbackTimeout bounds the JSON-dump fallback call, which walks more of the
// channel and needs longer than the print strategies.
func (e ExtractorConfig) FallbackTimeout() time.Duration {
	return time.Duration(e.FallbackTimeoutSeconds) * time.Second
}

// DetailTimeout bounds one per-playlist metadata lookup.
func (e ExtractorConfig) DetailTimeout() time.Duration {
	return time.Duration(e.DetailTimeoutSeconds) * time.Second
}

// OutputConfig contains report and log file destinations.
type OutputConfig struct {
	Path    string `toml:"path"`
	LogPath string `toml:"log_path"`
}

// DatabaseConfig contains history database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
