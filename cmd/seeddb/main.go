package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"creditflow/internal/config"
	"creditflow/internal/credit"
	"creditflow/internal/store"
)

func main() {
	n := flag.Int("n", 10, "number of fake applicants to insert")
	cfgPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal(err)
	}

	apps, err := store.NewApplications(db)
	if err != nil {
		log.Fatal(err)
	}
	now := time.Now()
	for i := 1; i <= *n; i++ {
		rec := credit.ApplicationRecord{
			ID:          i,
			FullName:    gofakeit.Name(),
			DateOfBirth: gofakeit.DateRange(now.AddDate(-80, 0, 0), now.AddDate(-18, 0, 0)).Format("2006-01-02"),
			Address:     gofakeit.Address().Address,
			NationalID:  gofakeit.SSN(),
			Income:      float64(gofakeit.Number(25000, 150000)),
			Expenses:    float64(gofakeit.Number(15000, 80000)),
			CreditScore: gofakeit.Number(300, 850),
		}
		if err := apps.Insert(ctx, rec); err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("seeded %d applicants", *n)

	queue := store.NewRequests(db)
	samples := []string{
		"What's 2+2?",
		"Summarize the plot of Moby-Dick in two sentences.",
		"Translate 'good morning' into Japanese.",
	}
	for _, body := range samples {
		if err := queue.Insert(ctx, body); err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("seeded %d sample requests", len(samples))
}
