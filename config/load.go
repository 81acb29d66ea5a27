package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Path returns explicit when set, otherwise the first config file found in
// the standard locations, or "" when there is none.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return findConfigFile()
}

// Load reads the file at path over the defaults. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

func findConfigFile() string {
	candidates := []string{
		"./glider.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Glider")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Glider")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "glider")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "glider")
	}
}

// HistoryPath resolves the run history database location.
func (c *Config) HistoryPath() string {
	if c.Storage.HistoryDB != "" {
		return c.Storage.HistoryDB
	}
	return filepath.Join(ConfigDir(), "history.db")
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
