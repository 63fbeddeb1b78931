package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	defaultEnv         = "development"
	defaultDBPath      = "./dev.db"
	defaultPort        = "8080"
	defaultLogLevel    = "info"
	defaultUpsellLimit = 3
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	Port          string
	DBPath        string
	LogLevel      string
	AdminToken    string
	CostTablePath string
	UpsellLimit   int

	// Warnings found while loading. Load runs before the logger is
	// configured, so callers log these once it is.
	Warnings []string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	var warnings []string
	// Best-effort: production should use real env injection.
	if _, err := loadDotEnv(".env"); err != nil {
		warnings = append(warnings, "ignoring malformed .env entries: "+err.Error())
	}

	cfg := Config{
		Env:           os.Getenv("APP_ENV"),
		Port:          os.Getenv("PORT"),
		DBPath:        os.Getenv("DB_PATH"),
		LogLevel:      strings.ToLower(os.Getenv("LOG_LEVEL")),
		AdminToken:    os.Getenv("ADMIN_TOKEN"),
		CostTablePath: os.Getenv("COST_TABLE_PATH"),
		UpsellLimit:   defaultUpsellLimit,
		Warnings:      warnings,
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if raw := os.Getenv("UPSELL_LIMIT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			cfg.Warnings = append(cfg.Warnings, "UPSELL_LIMIT must be a positive integer, using default: "+strconv.Quote(raw))
		} else {
			cfg.UpsellLimit = n
		}
	}

	if cfg.AdminToken == "" {
		cfg.Warnings = append(cfg.Warnings, "ADMIN_TOKEN is not set, admin endpoints are disabled")
	}

	return cfg
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development", "local":
		return true
	}
	return false
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}
