package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_STORE", "")
	t.Setenv("API_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("expected base url %s, got %s", defaultAPIBaseURL, cfg.APIBaseURL)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.APITimeout)
	}
	if cfg.SessionStore != SessionStoreMemory {
		t.Fatalf("expected memory session store, got %s", cfg.SessionStore)
	}
	if cfg.Address() != ":3000" {
		t.Fatalf("unexpected address %s", cfg.Address())
	}
}

func TestLoadTimeoutOverrides(t *testing.T) {
	t.Setenv("API_TIMEOUT_SECONDS", "5")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("API_BASE_URL", "https://api.example.com/api/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Fatalf("expected 5s, got %s", cfg.APITimeout)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected 2h, got %s", cfg.SessionTTL)
	}
	if cfg.APIBaseURL != "https://api.example.com/api" {
		t.Fatalf("trailing slash not trimmed: %s", cfg.APIBaseURL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad duration":      {"API_TIMEOUT", "soon"},
		"redis without url": {"SESSION_STORE", "redis"},
		"pg without url":    {"SESSION_STORE", "postgres"},
		"unknown store":     {"SESSION_STORE", "cookie"},
		"bad rate limit":    {"LOGIN_RATE_LIMIT", "many"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("REDIS_URL", "")
			t.Setenv("DATABASE_URL", "")
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
