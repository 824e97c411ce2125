package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("DD_ENABLED", "")

	cfg := Load()
	if cfg.Port != "5000" {
		t.Fatalf("default port: %s", cfg.Port)
	}
	if cfg.SessionTTLHours != 72 {
		t.Fatalf("default session ttl: %d", cfg.SessionTTLHours)
	}
	if cfg.DDEnabled {
		t.Fatal("dd must be off by default")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SESSION_TTL_HOURS", "not-a-number")
	t.Setenv("DD_ENABLED", "true")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("port override: %s", cfg.Port)
	}
	if cfg.SessionTTLHours != 0 {
		t.Fatalf("bad int should parse to 0, got %d", cfg.SessionTTLHours)
	}
	if !cfg.DDEnabled {
		t.Fatal("dd enable flag ignored")
	}
}
