package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/oriente/oriente/internal/config"
	"github.com/oriente/oriente/internal/db"
	"github.com/oriente/oriente/internal/history"
	"gorm.io/gorm"
)

const defaultConfigPath = "oriente.yaml"

// loadConfig reads the config file, falling back to built-in defaults when
// the default path does not exist. An explicit path that is missing is an
// error.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == defaultConfigPath {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return config.Default(), nil
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// connectFromConfig loads config and returns a GORM DB connection.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, gormDB, nil
}

// localeOf maps the configured locale string onto a history locale.
func localeOf(cfg *config.Config) history.Locale {
	if cfg.Locale == "en" {
		return history.LocaleEN
	}
	return history.LocalePT
}

// parseID parses a positional numeric ID argument.
func parseID(arg string) (uint, error) {
	v, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(v), nil
}

// actorPtr converts the --actor flag into an optional actor ID; zero means
// system-initiated.
func actorPtr(actor uint) *uint {
	if actor == 0 {
		return nil
	}
	return &actor
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
