package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/company-research/internal/config"
	"github.com/jonathan/company-research/internal/db"
	"github.com/jonathan/company-research/internal/llm"
	"github.com/jonathan/company-research/internal/research"
	"github.com/spf13/cobra"
)

// loadConfig reads the config file and environment, then applies flags that
// were set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if f := cmd.Flags().Lookup("use-browser"); f != nil && f.Changed {
		cfg.UseBrowser = f.Value.String() == "true"
	}
	if cfg.Verbose && configPath != "" {
		log.Printf("[CONFIG] Loaded config from: %s", configPath)
	}
	return cfg, nil
}

// app holds the wired research stack and what must be released with it.
type app struct {
	service *research.Service
	store   *db.DB
	llm     llm.Client
}

func (a *app) Close() {
	if a.llm != nil {
		if err := a.llm.Close(); err != nil {
			log.Printf("[APP] Failed to close model client: %v", err)
		}
	}
	if a.store != nil {
		a.store.Close()
	}
}

// buildApp wires the sources, summarizer and cache tiers described by cfg.
// Optional parts are skipped when their credentials are missing.
func buildApp(ctx context.Context, cfg config.Config) (*app, error) {
	ttl, err := cfg.CacheTTLDuration()
	if err != nil {
		return nil, err
	}

	a := &app{}
	opts := research.Options{CacheTTL: ttl, Verbose: cfg.Verbose}

	if cfg.DatabaseURL != "" {
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		a.store = store
		opts.Store = store
	}

	var searcher research.Searcher
	if cfg.SearchAPIKey != "" {
		gs, err := research.NewGoogleSearcher(ctx, cfg.SearchAPIKey, cfg.SearchCX)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create search client: %w", err)
		}
		searcher = gs
	}
	opts.Company = research.NewWikipediaScraper(research.WikipediaOptions{
		BaseURL:    cfg.WikipediaBaseURL,
		Searcher:   searcher,
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})

	random := research.NewRandom()
	opts.News = research.NewNewsClient(cfg.NewsAPIKey, cfg.NewsBaseURL, random, cfg.Verbose)
	opts.Reviews = research.NewReviewGenerator(random)

	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}
		a.llm = client
		opts.Summarizer = research.NewSummarizer(client, cfg.Verbose)
	} else if cfg.Verbose {
		log.Printf("[APP] GEMINI_API_KEY not set; summaries use the fallback template")
	}

	a.service = research.NewService(opts)
	return a, nil
}
