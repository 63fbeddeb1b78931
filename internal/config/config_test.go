package config

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"APP_ENV", "PORT", "DB_PATH", "LOG_LEVEL", "ADMIN_TOKEN", "COST_TABLE_PATH"} {
		t.Setenv(k, "")
	}
	t.Setenv("UPSELL_LIMIT", "")

	cfg := Load()
	if cfg.Port != defaultPort || cfg.DBPath != defaultDBPath || cfg.UpsellLimit != defaultUpsellLimit {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.IsDev() {
		t.Fatal("default environment should be development")
	}

	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("UPSELL_LIMIT", "5")
	t.Setenv("LOG_LEVEL", "DEBUG")
	cfg = Load()
	if cfg.IsDev() || cfg.Port != "9090" || cfg.UpsellLimit != 5 || cfg.Level() != zerolog.DebugLevel {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_InvalidUpsellLimitFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UPSELL_LIMIT", "lots")

	cfg := Load()
	if cfg.UpsellLimit != defaultUpsellLimit {
		t.Fatalf("UpsellLimit = %d, want %d", cfg.UpsellLimit, defaultUpsellLimit)
	}
	if !hasWarning(cfg, "UPSELL_LIMIT") {
		t.Fatalf("expected an UPSELL_LIMIT warning, got %q", cfg.Warnings)
	}
}

func TestLoad_CollectsWarningsInsteadOfLogging(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ADMIN_TOKEN", "")

	if cfg := Load(); !hasWarning(cfg, "ADMIN_TOKEN") {
		t.Fatalf("expected an ADMIN_TOKEN warning, got %q", cfg.Warnings)
	}

	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("UPSELL_LIMIT", "")
	if cfg := Load(); len(cfg.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %q", cfg.Warnings)
	}
}

func hasWarning(cfg Config, substr string) bool {
	for _, w := range cfg.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestConfig_LevelFallsBackToInfo(t *testing.T) {
	if got := (Config{LogLevel: "loud"}).Level(); got != zerolog.InfoLevel {
		t.Fatalf("Level = %v, want info", got)
	}
}
