package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything read at process start. It is resolved once and
// never reloaded; precedence is environment > JSON config file > defaults.
type Config struct {
	// Supabase project credentials (store + identity).
	SupabaseURL       string `json:"supabase_url"`
	SupabaseKey       string `json:"supabase_key"`
	SupabaseJWTSecret string `json:"supabase_jwt_secret"`
	// Direct Postgres connection for the atomic ledger writes.
	DatabaseURL string `json:"database_url"`
	// Optional override for the GoTrue endpoint (defaults to the project URL).
	GoTrueURL string `json:"gotrue_url"`
	// Text-generation credential. Empty key degrades advice to a fixed
	// fallback string, nothing else.
	GeminiAPIKey string `json:"gemini_api_key"`

	Addr string `json:"addr"`
}

const defaultConfigFile = "fintrack.json"

// Load resolves the configuration. A missing .env and a missing config file
// are both fine; missing store credentials put the app in demo mode rather
// than failing startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{Addr: ":8080"}

	path := os.Getenv("FINTRACK_CONFIG_FILE")
	if path == "" {
		path = defaultConfigFile
	}
	if err := cfg.applyFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setIfPresent(&c.SupabaseURL, "SUPABASE_URL")
	setIfPresent(&c.SupabaseKey, "SUPABASE_KEY")
	setIfPresent(&c.SupabaseJWTSecret, "SUPABASE_JWT_SECRET")
	setIfPresent(&c.DatabaseURL, "DATABASE_URL")
	setIfPresent(&c.GoTrueURL, "GOTRUE_URL")
	setIfPresent(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setIfPresent(&c.Addr, "FINTRACK_ADDR")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// StoreConfigured reports whether the backing store and identity service are
// fully configured. When false the app runs in demo/offline mode.
func (c *Config) StoreConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != "" &&
		c.SupabaseJWTSecret != "" && c.DatabaseURL != ""
}

// AdviceConfigured reports whether the text-generation credential is set.
func (c *Config) AdviceConfigured() bool {
	return c.GeminiAPIKey != ""
}
