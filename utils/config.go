package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Sync    SyncConfig    `json:"sync"`
	UI      UIConfig      `json:"ui"`
	Data    DataConfig    `json:"data"`
	Metrics MetricsConfig `json:"metrics"`
}

// MetricsConfig represents metrics exposure configuration
type MetricsConfig struct {
	ListenAddr string `json:"listen_addr"` // empty disables the /metrics endpoint
}

// SyncConfig represents credential sync configuration
type SyncConfig struct {
	IntervalMS int    `json:"interval_ms"` // polling cadence of the change detector
	NATSURL    string `json:"nats_url"`    // empty means in-process loopback transport
	Subject    string `json:"subject"`
}

// UIConfig represents UI configuration
type UIConfig struct {
	FontFamily string `json:"font_family"`
	FontSize   int    `json:"font_size"`
}

// DataConfig represents data storage configuration
type DataConfig struct {
	DBPath          string `json:"db_path"`           // page-context store (SQLite)
	ExtensionDBPath string `json:"extension_db_path"` // extension-context store (Badger)
	MaxHistory      int    `json:"max_history"`
}

// LoadConfig loads configuration from file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Expand paths
	if config.Data.DBPath != "" {
		config.Data.DBPath = expandPath(config.Data.DBPath)
	}
	if config.Data.ExtensionDBPath != "" {
		config.Data.ExtensionDBPath = expandPath(config.Data.ExtensionDBPath)
	}

	return &config, nil
}

// SaveConfig saves configuration to file
func SaveConfig(configPath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandPath expands ~ and relative paths
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	// Expand ~
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	// Make absolute
	absPath, err := filepath.Abs(path)
	if err == nil {
		return absPath
	}

	return path
}

// GetConfigPath returns the default config path
func GetConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to current directory
		return "./config/default.json"
	}

	return filepath.Join(configDir, "knowbase", "config.json")
}

// EnsureDefaultConfig creates a default config file if it doesn't exist
func EnsureDefaultConfig() (string, error) {
	configPath := GetConfigPath()

	// Check if config exists
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	defaultConfig := &Config{
		Sync: SyncConfig{
			IntervalMS: 2000,
			NATSURL:    "",
			Subject:    "knowbase.auth.sync",
		},
		UI: UIConfig{
			FontFamily: "sans-serif",
			FontSize:   14,
		},
		Data: DataConfig{
			DBPath:          "./data/knowbase.db",
			ExtensionDBPath: "./data/extension",
			MaxHistory:      50,
		},
	}

	if err := SaveConfig(configPath, defaultConfig); err != nil {
		return "", err
	}

	return configPath, nil
}
