package main

import (
	"context"
	"flag"
	"log"
	"time"

	"creditflow/internal/config"
	"creditflow/internal/llm"
	"creditflow/internal/llmtool"
	"creditflow/internal/requests"
	"creditflow/internal/store"
)

func main() {
	provider := flag.String("provider", "", "LLM provider: gemini, ollama, openai")
	model := flag.String("model", "", "model id")
	cfgPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *provider != "" {
		cfg.Provider = *provider
	}
	if *model != "" {
		cfg.Model = *model
	}

	ctx := context.Background()
	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	cap, err := llm.NewCapability(ctx, cfg.Provider, cfg.Model, llm.Options{
		GeminiAPIKey:  cfg.GeminiAPIKey,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OllamaHost:    cfg.OllamaHost,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer cap.Close()

	client := llmtool.NewClient(llm.Chain(cap, llm.Retry(cfg.RetryAttempts, 500*time.Millisecond)))
	p := requests.NewProcessor(client, store.NewRequests(db))

	log.Printf("starting request agent (%s)", cap.Name())
	done, err := p.ProcessPending(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("request agent finished: %d rows completed", done)
}
