package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SUPABASE_URL", "SUPABASE_KEY", "SUPABASE_JWT_SECRET",
		"DATABASE_URL", "GOTRUE_URL", "GEMINI_API_KEY",
		"FINTRACK_ADDR", "FINTRACK_CONFIG_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fintrack.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("FINTRACK_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Addr)
	}
	if cfg.StoreConfigured() {
		t.Error("empty config reports store configured")
	}
	if cfg.AdviceConfigured() {
		t.Error("empty config reports advice configured")
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `{
		"supabase_url": "https://proj.supabase.co",
		"supabase_key": "file-key",
		"supabase_jwt_secret": "file-secret",
		"database_url": "postgres://file",
		"addr": ":9090"
	}`)
	t.Setenv("FINTRACK_CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SupabaseKey != "file-key" {
		t.Errorf("supabase key = %q, want file-key", cfg.SupabaseKey)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Addr)
	}
	if !cfg.StoreConfigured() {
		t.Error("store should be configured from file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `{"supabase_key": "file-key", "addr": ":9090"}`)
	t.Setenv("FINTRACK_CONFIG_FILE", path)
	t.Setenv("SUPABASE_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SupabaseKey != "env-key" {
		t.Errorf("supabase key = %q, want env-key (env beats file)", cfg.SupabaseKey)
	}
	// Untouched by env: the file value survives.
	if cfg.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Addr)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `{not json`)
	t.Setenv("FINTRACK_CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestStoreConfiguredNeedsAllCredentials(t *testing.T) {
	cfg := &Config{
		SupabaseURL:       "https://proj.supabase.co",
		SupabaseKey:       "key",
		SupabaseJWTSecret: "secret",
		DatabaseURL:       "postgres://db",
	}
	if !cfg.StoreConfigured() {
		t.Fatal("fully populated config not recognized")
	}

	partial := *cfg
	partial.DatabaseURL = ""
	if partial.StoreConfigured() {
		t.Error("missing database URL still reports configured")
	}
}
