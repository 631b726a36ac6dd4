package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "creditflow.yaml")
	body := `
database_url: postgres://file/db
provider: ollama
model: llama3.1
max_iters: 5
rubrics:
  background_check: "Everyone passes."
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("MAX_ITERS", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabaseURL != "postgres://env/db" {
		t.Fatalf("env must win over file, got %q", cfg.DatabaseURL)
	}
	if cfg.Provider != "ollama" || cfg.Model != "llama3.1" {
		t.Fatalf("file values not applied: %q %q", cfg.Provider, cfg.Model)
	}
	if cfg.MaxIters != 5 {
		t.Fatalf("max_iters not applied: %d", cfg.MaxIters)
	}
	if cfg.Rubrics.BackgroundCheck != "Everyone passes." {
		t.Fatalf("rubric override not applied: %q", cfg.Rubrics.BackgroundCheck)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "gemini" || cfg.MaxIters != 8 || cfg.RetryAttempts != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
