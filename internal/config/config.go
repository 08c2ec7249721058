package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration. Every field can be set
// from a PIONS_* environment variable.
type Config struct {
	DataDir       string `envconfig:"DATA_DIR"`
	DBFile        string `envconfig:"DB_FILE" default:"pions.db"`
	AutosaveSpec  string `envconfig:"AUTOSAVE" default:"@every 5s"`
	WatchExternal bool   `envconfig:"WATCH_EXTERNAL" default:"true"`

	Store StoreConfig `envconfig:"STORE"`
	Log   LogConfig   `envconfig:"LOG"`
}

// StoreConfig selects where the board record is persisted. The default
// driver keeps it in the local SQLite file next to the app settings.
type StoreConfig struct {
	Driver      string `envconfig:"DRIVER" default:"sqlite"`
	Host        string `envconfig:"HOST"`
	Port        int    `envconfig:"PORT"`
	Database    string `envconfig:"DATABASE"`
	Username    string `envconfig:"USERNAME"`
	SSLMode     string `envconfig:"SSLMODE" default:"disable"`
	PasswordKey string `envconfig:"PASSWORD_KEY"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LEVEL" default:"info"`
	Development bool   `envconfig:"DEV" default:"false"`
}

// Load reads configuration from PIONS_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("pions", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:       defaultDataDir(),
		DBFile:        "pions.db",
		AutosaveSpec:  "@every 5s",
		WatchExternal: true,
		Store: StoreConfig{
			Driver:  "sqlite",
			SSLMode: "disable",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DBPath is the local SQLite file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

func defaultDataDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "share", "pions")
}
