// Package config loads runtime settings from PROJECTS_* environment
// variables, optionally seeded from a .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PROJECTS_"

type Config struct {
	DB  DBConfig  `koanf:"db" validate:"required"`
	Log LogConfig `koanf:"log" validate:"required"`
}

// DBConfig selects the storage driver and its data source. For sqlite the
// DSN is a file path or ":memory:"; for postgres it is a pgx connection string.
type DBConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=sqlite postgres"`
	DSN    string `koanf:"dsn" validate:"required"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"required,oneof=debug info warn error"`
}

// Load reads the environment, fills defaults, and validates the result.
// PROJECTS_DB_DSN maps to db.dsn: only the first underscore after the prefix
// separates the section from the field.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() error {
	c.DB.Driver = strings.ToLower(c.DB.Driver)
	if c.DB.Driver == "" {
		c.DB.Driver = "sqlite"
	}
	if c.DB.DSN == "" && c.DB.Driver == "sqlite" {
		path, err := DefaultSQLitePath()
		if err != nil {
			return err
		}
		c.DB.DSN = path
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return nil
}

// DefaultSQLitePath returns ~/.projects/projects.db.
func DefaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".projects", "projects.db"), nil
}
