package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the app-level TOML config (prwatch.toml in the user config
// dir). The watch list and dismissals live in the JSON contract files
// under the data dir, not here.
type Config struct {
	Paths  PathsConfig  `toml:"paths"`
	Debug  DebugConfig  `toml:"debug"`
	Update UpdateConfig `toml:"update"`
}

type PathsConfig struct {
	DataDir string `toml:"data_dir"`
}

type DebugConfig struct {
	Enabled     bool   `toml:"enabled"`
	File        string `toml:"file"`
	MaxLogFiles int    `toml:"max_log_files"`
}

type UpdateConfig struct {
	Enabled        bool      `toml:"enabled"`
	LastCheck      time.Time `toml:"last_check"`
	SkippedVersion string    `toml:"skipped_version"`
	Repo           string    `toml:"repo"`
}

func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir: "~/.pr-watch",
		},
		Debug: DebugConfig{
			MaxLogFiles: 20,
		},
		Update: UpdateConfig{
			Enabled: true,
			Repo:    "wahlandcase/attuned.prwatch",
		},
	}
}

// Path returns the config file location
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "prwatch.toml"), nil
}

func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			_ = cfg.Save() // Best effort save
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DataPath returns the data directory with ~ expanded
func (c *Config) DataPath() string {
	return expandTilde(c.Paths.DataDir)
}

// ShouldCheckForUpdate returns true if update check is enabled and 24h since last check
func (c *Config) ShouldCheckForUpdate() bool {
	if !c.Update.Enabled {
		return false
	}
	return time.Since(c.Update.LastCheck) > 24*time.Hour
}

// RecordUpdateCheck updates the last check time
func (c *Config) RecordUpdateCheck() {
	c.Update.LastCheck = time.Now()
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
