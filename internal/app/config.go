package app

import (
	"errors"

	"github.com/vk/mazewalk/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	MazePath    string
	ProfilePath string // run profile the settings were read from, if any

	config.Settings
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.MazePath == "" {
		return nil, errors.New("MazePath is a required configuration field and cannot be empty")
	}
	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
