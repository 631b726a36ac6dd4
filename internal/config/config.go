package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"creditflow/internal/credit"
)

// Config holds everything the binaries need: database, provider selection,
// and pipeline tuning. Env vars win over the YAML file; flags are handled by
// the binaries themselves.
type Config struct {
	DatabaseURL string `yaml:"database_url"`

	Provider      string `yaml:"provider"` // gemini | ollama | openai
	Model         string `yaml:"model"`
	GeminiAPIKey  string `yaml:"-"`
	OpenAIAPIKey  string `yaml:"-"`
	OpenAIBaseURL string `yaml:"openai_base_url"`
	OllamaHost    string `yaml:"ollama_host"`

	MaxIters      int `yaml:"max_iters"`
	RetryAttempts int `yaml:"retry_attempts"`

	Rubrics credit.Rubrics `yaml:"rubrics"`
}

// Load reads the optional YAML file at path (empty path skips it), then
// layers .env and process env on top.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Provider:      "gemini",
		Model:         "gemini-2.5-flash",
		MaxIters:      8,
		RetryAttempts: 1,
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg.DatabaseURL, "DATABASE_URL")
	applyEnv(&cfg.Provider, "LLM_PROVIDER")
	applyEnv(&cfg.Model, "LLM_MODEL")
	applyEnv(&cfg.OllamaHost, "OLLAMA_HOST")
	applyEnv(&cfg.OpenAIBaseURL, "OPENAI_BASE_URL")
	cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	cfg.OpenAIAPIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	applyEnvInt(&cfg.MaxIters, "MAX_ITERS")
	applyEnvInt(&cfg.RetryAttempts, "RETRY_ATTEMPTS")

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is not set")
	}
	return cfg, nil
}

func applyEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func applyEnvInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
