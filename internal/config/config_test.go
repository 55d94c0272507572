package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SecretKey != "dev-secret" {
		t.Errorf("SecretKey = %q, want %q", cfg.SecretKey, "dev-secret")
	}
	if cfg.Bind != "127.0.0.1" {
		t.Errorf("Bind = %q, want %q", cfg.Bind, "127.0.0.1")
	}
	if cfg.Port != 8754 {
		t.Errorf("Port = %d, want 8754", cfg.Port)
	}
	if cfg.ScrapeTimeoutSeconds != 15 {
		t.Errorf("ScrapeTimeoutSeconds = %d, want 15", cfg.ScrapeTimeoutSeconds)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RECETARIO_SECRET_KEY", "prod-key")
	t.Setenv("RECETARIO_PORT", "9001")
	t.Setenv("RECETARIO_DATA_DIR", "/tmp/recetario-test")
	t.Setenv("RECETARIO_DISABLED_TOOLS", "recipe_delete, folder_delete")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SecretKey != "prod-key" {
		t.Errorf("SecretKey = %q, want %q", cfg.SecretKey, "prod-key")
	}
	if cfg.Port != 9001 {
		t.Errorf("Port = %d, want 9001", cfg.Port)
	}
	if cfg.DataDir != "/tmp/recetario-test" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/tmp/recetario-test")
	}
	if len(cfg.DisabledTools) != 2 || cfg.DisabledTools[0] != "recipe_delete" || cfg.DisabledTools[1] != "folder_delete" {
		t.Errorf("DisabledTools = %v, want [recipe_delete folder_delete]", cfg.DisabledTools)
	}
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("RECETARIO_SCRAPE_TIMEOUT_SECONDS", "-5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ScrapeTimeoutSeconds != 15 {
		t.Errorf("ScrapeTimeoutSeconds = %d, want default 15", cfg.ScrapeTimeoutSeconds)
	}
}

func TestScrapeTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ScrapeTimeout() != 15*time.Second {
		t.Errorf("ScrapeTimeout = %v, want 15s", cfg.ScrapeTimeout())
	}
}

func TestUploadDir(t *testing.T) {
	cfg := &Config{DataDir: "/data/recetario"}
	if got := cfg.UploadDir(); got != "/data/recetario/uploads" {
		t.Errorf("UploadDir = %q, want %q", got, "/data/recetario/uploads")
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"  ", 0},
		{"a", 1},
		{"a, b ,c", 3},
		{",,a,", 1},
	}

	for _, tt := range tests {
		got := splitList(tt.in)
		if len(got) != tt.want {
			t.Errorf("splitList(%q) len = %d, want %d", tt.in, len(got), tt.want)
		}
	}
}
