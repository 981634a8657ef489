// Package config loads the TOML configuration file and fills in
// defaults for anything unset.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DBPath  string        `toml:"db_path"`
	Addr    string        `toml:"addr"`
	Capture CaptureConfig `toml:"capture"`
	Voice   VoiceConfig   `toml:"voice"`
	Model   ModelConfig   `toml:"model"`
}

type CaptureConfig struct {
	// AmbiguousCurrency is the capture type assigned to a leading dollar
	// amount with no income or expense context: "expense" or "income".
	AmbiguousCurrency string `toml:"ambiguous_currency"`
	// MaxFetchChars caps how much fetched page text a link capture keeps.
	MaxFetchChars int `toml:"max_fetch_chars"`
}

type VoiceConfig struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Traits      []string `toml:"traits"`
	Audience    string   `toml:"audience"`
}

type ModelConfig struct {
	Name            string  `toml:"name"`
	MaxTokens       int     `toml:"max_tokens"`
	BaseTemperature float64 `toml:"base_temperature"`
}

// DefaultPath is ~/.quickcap/config.toml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quickcap", "config.toml")
}

// Load reads path if it exists; a missing file yields pure defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DBPath == "" {
		home, _ := os.UserHomeDir()
		cfg.DBPath = filepath.Join(home, ".quickcap", "quickcap.db")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Capture.AmbiguousCurrency != "income" {
		cfg.Capture.AmbiguousCurrency = "expense"
	}
	if cfg.Capture.MaxFetchChars <= 0 {
		cfg.Capture.MaxFetchChars = 10240
	}
	if cfg.Model.MaxTokens <= 0 {
		cfg.Model.MaxTokens = 2048
	}
	if cfg.Model.BaseTemperature <= 0 || cfg.Model.BaseTemperature > 1 {
		cfg.Model.BaseTemperature = 0.7
	}
}
