package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API             APIConfig             `toml:"api"`
	Session         SessionConfig         `toml:"session"`
	Recommendations RecommendationsConfig `toml:"recommendations"`
	Database        DatabaseConfig        `toml:"database"`
}

// APIConfig contains connection settings for the recommendation service.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

// SessionConfig contains the login identity for token acquisition.
type SessionConfig struct {
	Email string `toml:"email"`
}

// RecommendationsConfig contains default query parameters and derived-state settings.
type RecommendationsConfig struct {
	Profile string `toml:"profile"`
	Intent  string `toml:"intent"`
	// Seed, when set, is forwarded verbatim on every fetch so the server
	// returns a reproducible ordering.
	Seed              *int    `toml:"seed"`
	CoverageThreshold float64 `toml:"coverage_threshold"`
}

// DatabaseConfig contains snapshot cache database settings.
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
