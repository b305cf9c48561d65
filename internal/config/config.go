// Package config loads the application configuration from a YAML file.
// It covers where the calendar data lives and the defaults applied to a
// freshly initialized store; per-user scheduling preferences live in the
// store itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// RemindersConfig selects which reminder leads are on by default for new
// events.
type RemindersConfig struct {
	Min15 bool `mapstructure:"15min" yaml:"15min"`
	Hour1 bool `mapstructure:"1hour" yaml:"1hour"`
	Day1  bool `mapstructure:"1day" yaml:"1day"`
}

// Config is the top-level application configuration.
type Config struct {
	// StorePath locates the calendar data file. A .json extension selects
	// the plain-text backend, anything else SQLite.
	StorePath string `mapstructure:"store_path" yaml:"store_path"`

	// WorkStart and WorkEnd bound the daily window searched for free slots.
	WorkStart string `mapstructure:"work_start" yaml:"work_start"`
	WorkEnd   string `mapstructure:"work_end" yaml:"work_end"`

	Reminders RemindersConfig `mapstructure:"reminders" yaml:"reminders"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/agendai/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "agendai", "config.yaml")
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "agendai.db")
	}
	return filepath.Join(home, ".config", "agendai", "agendai.db")
}

func defaultConfig() *Config {
	return &Config{
		StorePath: defaultStorePath(),
		WorkStart: "09:00",
		WorkEnd:   "19:00",
		Reminders: RemindersConfig{Min15: true},
	}
}

// Load reads the configuration from the given YAML file path using Viper.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("store_path", defaultStorePath())
	v.SetDefault("work_start", "09:00")
	v.SetDefault("work_end", "19:00")
	v.SetDefault("reminders.15min", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file at path, creating parent
// directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("store_path", cfg.StorePath)
	v.Set("work_start", cfg.WorkStart)
	v.Set("work_end", cfg.WorkEnd)
	v.Set("reminders", cfg.Reminders)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
