package llm

import (
	"context"
	"fmt"
)

// Options carries provider credentials and endpoints.
type Options struct {
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OllamaHost    string
}

// NewCapability builds the provider client selected by name.
func NewCapability(ctx context.Context, provider, model string, opts Options) (Capability, error) {
	switch provider {
	case "gemini", "":
		return NewGeminiClient(ctx, opts.GeminiAPIKey, model)
	case "ollama":
		return NewOllamaClient(opts.OllamaHost, model), nil
	case "openai":
		return NewOpenAIClient(opts.OpenAIBaseURL, opts.OpenAIAPIKey, model), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", provider)
	}
}
