// Package config loads and saves the user configuration (config.json).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the persisted user configuration.
type Config struct {
	// ReplayDir is the directory the game writes replay files into.
	ReplayDir string `json:"replay_dir" mapstructure:"replay_dir"`
	// DBPath is the SQLite database file.
	DBPath string `json:"db_path" mapstructure:"db_path"`
	// GamePath is the game executable, used by launch/daemon modes.
	GamePath string `json:"game_path" mapstructure:"game_path"`
	// DecoderCmd is the external replay decoder command line.
	DecoderCmd string `json:"decoder_cmd" mapstructure:"decoder_cmd"`
	// MyNames seeds the local-user name set alongside the database.
	MyNames []string `json:"my_names" mapstructure:"my_names"`

	AutoDetectMe    bool `json:"auto_detect_me" mapstructure:"auto_detect_me"`
	NotifyOnNewGame bool `json:"notify_on_new_game" mapstructure:"notify_on_new_game"`
	// SettleSeconds is the watcher settle delay.
	SettleSeconds int `json:"settle_seconds" mapstructure:"settle_seconds"`

	// path the config was loaded from, so Save writes back to the same file.
	path string
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "starrec", "config.json")
}

func defaultDBPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "starrec.db")
}

// Load reads the config file at path (DefaultPath when empty). A missing
// file is not an error: defaults are written out and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault("replay_dir", "")
	v.SetDefault("db_path", defaultDBPath(path))
	v.SetDefault("game_path", "")
	v.SetDefault("decoder_cmd", "")
	v.SetDefault("my_names", []string{})
	v.SetDefault("auto_detect_me", true)
	v.SetDefault("notify_on_new_game", true)
	v.SetDefault("settle_seconds", 3)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.path = path

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// Save writes the config back to the file it was loaded from, creating
// parent directories as needed.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(c.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", c.path, err)
	}
	return nil
}

// AddMyName appends a local-user name to the seed list if not yet present
// and saves the config.
func (c *Config) AddMyName(name string) error {
	for _, n := range c.MyNames {
		if n == name {
			return nil
		}
	}
	c.MyNames = append(c.MyNames, name)
	return c.Save()
}
