package config

import (
	"errors"
	"log/slog"
	"testing"
)

func setenv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range []string{"GITBOOK_API_TOKEN", "GITBOOK_API_BASE_URL", "GITBOOK_DEFAULT_SPACE_ID", "GITBOOK_DEFAULT_ORG_ID", "GITBOOK_MCP_LOG_LEVEL"} {
		t.Setenv(k, kv[k])
	}
}

func TestLoad_Defaults(t *testing.T) {
	setenv(t, map[string]string{"GITBOOK_API_TOKEN": "tok"})
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIToken != "tok" || cfg.BaseURL != "https://api.gitbook.com/v1" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Level() != slog.LevelInfo {
		t.Fatalf("want info level, got %v", cfg.Level())
	}
	if cfg.Instructions() != "" {
		t.Fatalf("want no instructions, got %q", cfg.Instructions())
	}
}

func TestLoad_Overrides(t *testing.T) {
	setenv(t, map[string]string{
		"GITBOOK_API_TOKEN":        "tok",
		"GITBOOK_API_BASE_URL":     "http://localhost:8080/v1",
		"GITBOOK_DEFAULT_SPACE_ID": "space1",
		"GITBOOK_DEFAULT_ORG_ID":   "org1",
		"GITBOOK_MCP_LOG_LEVEL":    "debug",
	})
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080/v1" || cfg.Level() != slog.LevelDebug {
		t.Fatalf("unexpected config %+v", cfg)
	}
	want := "Default GitBook organization ID: org1\nDefault GitBook space ID: space1"
	if cfg.Instructions() != want {
		t.Fatalf("got instructions %q", cfg.Instructions())
	}
}

func TestLoad_MissingToken(t *testing.T) {
	setenv(t, map[string]string{"GITBOOK_API_TOKEN": "  "})
	if _, err := Load(); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("want ErrMissingToken, got %v", err)
	}
}

func TestLoad_BadLevel(t *testing.T) {
	setenv(t, map[string]string{"GITBOOK_API_TOKEN": "tok", "GITBOOK_MCP_LOG_LEVEL": "loud"})
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
