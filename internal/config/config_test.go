package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: "9090"
log:
  level: debug
  env: production
quiz:
  source: https://example.com/data.json
  questions_per_round: 5
  cache_ttl: 2m
theme:
  default: dark
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Log.Level != "debug" || cfg.Log.Env != "production" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Quiz.Source != "https://example.com/data.json" || cfg.Quiz.QuestionsPerRound != 5 {
		t.Fatalf("unexpected quiz config %+v", cfg.Quiz)
	}
	if cfg.Theme.Default != "dark" {
		t.Fatalf("unexpected theme %q", cfg.Theme.Default)
	}
	if got := DurationOr(cfg.Quiz.CacheTTL, time.Minute); got != 2*time.Minute {
		t.Fatalf("expected 2m, got %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDurationOr(t *testing.T) {
	if got := DurationOr("", time.Second); got != time.Second {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := DurationOr("soon", time.Second); got != time.Second {
		t.Fatalf("expected fallback for invalid value, got %v", got)
	}
	if got := DurationOr("150ms", time.Second); got != 150*time.Millisecond {
		t.Fatalf("expected 150ms, got %v", got)
	}
}
