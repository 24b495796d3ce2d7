package config

import (
	"os"
	"testing"
)

// clearEnv unsets all PORTAL_ environment variables for a clean test.
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"PORTAL_SERVER_PORT",
		"PORTAL_SERVER_HOST",
		"PORTAL_DATABASE_URL",
		"PORTAL_DATABASE_MAX_CONNS",
		"PORTAL_DATABASE_MIN_CONNS",
		"PORTAL_DATABASE_CONN_LIFETIME",
		"PORTAL_DATABASE_CONN_IDLE",
		"PORTAL_CACHE_ENABLED",
		"PORTAL_CACHE_URL",
		"PORTAL_DIRECTORY_URL",
		"PORTAL_DIRECTORY_CATALOG_PATH",
		"PORTAL_DIRECTORY_CACHE_TTL",
		"PORTAL_CONTENT_BACKEND",
		"PORTAL_CONTENT_URL",
		"PORTAL_AI_GOOGLE_API_KEY",
		"PORTAL_AI_GOOGLE_MODEL",
		"PORTAL_AI_OPENAI_API_KEY",
		"PORTAL_AI_OPENAI_URL",
		"PORTAL_AI_OPENAI_MODEL",
		"PORTAL_AI_MAX_TOKENS",
		"PORTAL_EXPORT_PDF_SCALE",
		"PORTAL_LOG_LEVEL",
		"PORTAL_LOG_FORMAT",
	}
	for _, v := range envVars {
		_ = os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.MaxConns != 25 {
		t.Errorf("Database.MaxConns = %d, want 25", cfg.Database.MaxConns)
	}
	if cfg.Database.ConnLifetimeMins != 30 {
		t.Errorf("Database.ConnLifetimeMins = %d, want 30", cfg.Database.ConnLifetimeMins)
	}
	if cfg.Database.ConnIdleMins != 5 {
		t.Errorf("Database.ConnIdleMins = %d, want 5", cfg.Database.ConnIdleMins)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should default to false")
	}
	if cfg.Content.Backend != "postgres" {
		t.Errorf("Content.Backend = %q, want postgres", cfg.Content.Backend)
	}
	if cfg.Directory.CacheTTL != 300 {
		t.Errorf("Directory.CacheTTL = %d, want 300", cfg.Directory.CacheTTL)
	}
	if cfg.AI.MaxTokens != 4096 {
		t.Errorf("AI.MaxTokens = %d, want 4096", cfg.AI.MaxTokens)
	}
	if cfg.Export.PDFScale != 1.0 {
		t.Errorf("Export.PDFScale = %v, want 1.0", cfg.Export.PDFScale)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORTAL_SERVER_PORT", "9090")
	t.Setenv("PORTAL_AI_GOOGLE_API_KEY", "test-key")
	t.Setenv("PORTAL_CONTENT_BACKEND", "memory")
	t.Setenv("PORTAL_DIRECTORY_CATALOG_PATH", "./catalog")
	t.Setenv("PORTAL_EXPORT_PDF_SCALE", "1.25")
	t.Setenv("PORTAL_CACHE_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.AI.Google.APIKey != "test-key" {
		t.Errorf("AI.Google.APIKey = %q", cfg.AI.Google.APIKey)
	}
	if cfg.Content.Backend != "memory" {
		t.Errorf("Content.Backend = %q, want memory", cfg.Content.Backend)
	}
	if cfg.Export.PDFScale != 1.25 {
		t.Errorf("Export.PDFScale = %v, want 1.25", cfg.Export.PDFScale)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled = false, want true")
	}
}

func TestValidate_RequiresProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORTAL_DIRECTORY_CATALOG_PATH", "./catalog")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail with no generation provider configured")
	}

	cfg.AI.Google.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_ContentBackend(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.AI.Google.APIKey = "key"
	cfg.Directory.CatalogPath = "./catalog"

	cfg.Content.Backend = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject unknown content backend")
	}

	cfg.Content.Backend = "http"
	cfg.Content.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should require PORTAL_CONTENT_URL for the http backend")
	}

	cfg.Content.BaseURL = "http://contents.internal"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_RequiresDirectorySource(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.AI.Google.APIKey = "key"
	cfg.Content.Backend = "memory"

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should require a directory source")
	}

	cfg.Directory.BaseURL = "http://directory.internal"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
