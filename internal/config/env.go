// Package config loads covmap settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-level defaults; command-line flags override them.
type Config struct {
	LogLevel    string `env:"COVMAP_LOG_LEVEL" envDefault:"warn"`
	JSONLog     bool   `env:"COVMAP_JSON_LOG" envDefault:"false"`
	Width       int    `env:"COVMAP_WIDTH" envDefault:"2100"`
	Height      int    `env:"COVMAP_HEIGHT" envDefault:"900"`
	Supersample int    `env:"COVMAP_SUPERSAMPLE" envDefault:"2"`
	FileMode    string `env:"COVMAP_FILE_MODE" envDefault:"0644"`
	View        string `env:"COVMAP_VIEW" envDefault:"auto"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the Config for the current environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
