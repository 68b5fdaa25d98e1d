// Package app wires configuration into a ready-to-run stock processor.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pauljones0/garden-stock-bot/internal/catalog"
	"github.com/pauljones0/garden-stock-bot/internal/config"
	"github.com/pauljones0/garden-stock-bot/internal/notifier"
	"github.com/pauljones0/garden-stock-bot/internal/processor"
	"github.com/pauljones0/garden-stock-bot/internal/scraper"
	"github.com/pauljones0/garden-stock-bot/internal/storage"
)

// App holds the components built from one configuration.
type App struct {
	Config    *config.Config
	Catalog   *catalog.Catalog
	Fetcher   scraper.Fetcher
	Parser    *scraper.Parser
	Renderer  *notifier.Renderer
	Notifier  *notifier.Client
	Store     storage.Backend
	Processor *processor.StockProcessor
}

// Build loads the catalog, opens the state backend and assembles the processor.
// Callers must Close the returned App.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	cat, err := catalog.LoadConfig(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	fetcher, err := scraper.New(cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s state store: %w", cfg.StateBackend, err)
	}

	a := &App{
		Config:   cfg,
		Catalog:  cat,
		Fetcher:  fetcher,
		Parser:   scraper.NewParser(cat),
		Renderer: notifier.NewRenderer(cat, cfg.RoleMentions),
		Notifier: notifier.New(cfg.DiscordWebhookURL, cfg.RequestTimeout),
		Store:    store,
	}
	a.Processor = processor.New(a.Fetcher, a.Parser, a.Renderer, a.Notifier, a.Store, cfg.StateKey)

	slog.Info("Stock checker ready",
		"fetchMode", cfg.FetchMode,
		"stateBackend", cfg.StateBackend,
		"catalogItems", cat.Len(),
		"webhookConfigured", cfg.WebhookConfigured(),
		"roles", len(cfg.RoleMentions),
	)
	return a, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
