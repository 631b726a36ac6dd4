package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"creditflow/internal/config"
	"creditflow/internal/credit"
	"creditflow/internal/llm"
	"creditflow/internal/llmtool"
	"creditflow/internal/store"
	"creditflow/internal/ui"
)

func main() {
	appID := flag.Int("app-id", 0, "force a specific application id instead of random selection")
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
	apps, err := store.NewApplications(db)
	if err != nil {
		log.Fatal(err)
	}

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

	id := *appID
	if id == 0 {
		id, err = apps.RandomID(ctx)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("randomly selected application id: %d", id)
	} else {
		log.Printf("using specified application id: %d", id)
	}

	app, err := apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log.Fatal(err)
	}
	log.Printf("evaluating application for: %s", app.FullName)

	coord := credit.NewCoordinator(client, credit.ApplicationTools(client, cfg.Rubrics, app))
	coord.MaxIters = cfg.MaxIters
	coord.Logf = func(format string, args ...any) {
		fmt.Println(ui.ProgressLine(fmt.Sprintf(format, args...)))
	}

	dec, run, err := coord.Run(ctx, app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: run %s after %d iterations: %v\n", run.State, run.Iterations, err)
		os.Exit(1)
	}
	fmt.Println(ui.DecisionPanel(dec))
}
