package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want dev", cfg.Env)
	}
	if cfg.SessionStore != "memory" {
		t.Errorf("SessionStore = %q, want memory", cfg.SessionStore)
	}
	if cfg.AnalyzeTimeout != 240*time.Second {
		t.Errorf("AnalyzeTimeout = %v, want 240s", cfg.AnalyzeTimeout)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "PROD")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("ANALYZE_TIMEOUT_SECONDS", "60")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DATABASE_URL", "postgres://localhost/feasibility")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
	if cfg.SessionStore != "redis" {
		t.Errorf("SessionStore = %q, want redis", cfg.SessionStore)
	}
	if cfg.AnalyzeTimeout != time.Minute {
		t.Errorf("AnalyzeTimeout = %v, want 1m", cfg.AnalyzeTimeout)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://b.example" {
		t.Errorf("CORSAllowOrigin = %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadRejectsInvalidTimeout(t *testing.T) {
	t.Setenv("ANALYZE_TIMEOUT_SECONDS", "not-a-number")
	cfg := Load()
	if cfg.AnalyzeTimeout != 240*time.Second {
		t.Errorf("AnalyzeTimeout = %v, want default", cfg.AnalyzeTimeout)
	}
}

func TestNormalizeSessionStore(t *testing.T) {
	cases := map[string]string{
		"redis":    "redis",
		"pg":       "postgres",
		"postgres": "postgres",
		"memory":   "memory",
		"bogus":    "memory",
		"":         "memory",
	}
	for in, want := range cases {
		if got := normalizeSessionStore(in); got != want {
			t.Errorf("normalizeSessionStore(%q) = %q, want %q", in, got, want)
		}
	}
}
