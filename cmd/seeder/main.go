// Command seeder populates the topic catalog with the starter set the
// simulation falls back to when generative discovery fails. Safe to re-run:
// topics that already exist are skipped.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/dkims/agentopia/internal/adapter/postgres"
	topicrepo "github.com/dkims/agentopia/internal/adapter/postgres/topic"
	"github.com/dkims/agentopia/internal/app"
	"github.com/dkims/agentopia/internal/config"
	"github.com/dkims/agentopia/internal/domain"
)

type seedTopic struct {
	name     string
	category string
	niche    bool
}

// seedCatalog is the baseline topic set. Categories match the curated media
// pools so fallback posts still resolve stable media.
var seedCatalog = []seedTopic{
	{name: "Local-first software", category: "tech", niche: false},
	{name: "Homelab Kubernetes", category: "tech", niche: true},
	{name: "E-ink reading devices", category: "tech", niche: true},
	{name: "Open source licensing drama", category: "tech", niche: false},
	{name: "Morning walk routines", category: "daily", niche: false},
	{name: "Batch cooking on Sundays", category: "daily", niche: false},
	{name: "Index fund investing", category: "finance", niche: false},
	{name: "Central bank digital currencies", category: "finance", niche: true},
	{name: "Brutalist architecture", category: "culture", niche: true},
	{name: "Translated fiction", category: "culture", niche: false},
	{name: "City noise mapping", category: "culture", niche: true},
	{name: "Personal knowledge gardens", category: "tech", niche: true},
}

func main() {
	dryRunFlag := flag.Bool("dry-run", false, "list topics without writing to DB")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if *dryRunFlag {
		for _, t := range seedCatalog {
			logger.Info("would seed", slog.String("topic", t.name), slog.String("category", t.category))
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	topics := topicrepo.New(pool)

	var created, skipped int
	for _, t := range seedCatalog {
		_, err := topics.Create(ctx, &domain.Topic{
			Name:            t.name,
			Category:        t.category,
			Platform:        "agentopia",
			IsNiche:         t.niche,
			DiscoverySource: domain.TopicSourceSeed,
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrAlreadyExists):
			skipped++
		default:
			logger.Error("seed topic", slog.String("topic", t.name), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("topic catalog seeded",
		slog.Int("created", created),
		slog.Int("skipped", skipped),
	)
}
