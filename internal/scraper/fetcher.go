// Package scraper retrieves the stock page's text fragments and parses them into snapshots.
package scraper

import (
	"context"
	"fmt"

	"github.com/pauljones0/garden-stock-bot/internal/config"
)

const userAgent = "Garden-Stock-Notifier/1.0 (Go)"

// Fetcher returns the raw text fragments of the stock page.
// Failures are always *FetchError.
type Fetcher interface {
	FetchFragments(ctx context.Context) ([]string, error)
}

// New returns the Fetcher selected by cfg.FetchMode.
func New(cfg *config.Config) (Fetcher, error) {
	switch cfg.FetchMode {
	case config.FetchModeProxy, "":
		return NewProxyClient(cfg.ScraperAPIURL, cfg.RequestTimeout), nil
	case config.FetchModePage:
		return NewPageClient(cfg.StockPageURL, cfg.StockSelector, cfg.RequestTimeout), nil
	case config.FetchModeBrowser:
		return NewBrowserClient(cfg.StockPageURL, cfg.StockSelector, cfg.RequestTimeout), nil
	}
	return nil, fmt.Errorf("unknown fetch mode %q", cfg.FetchMode)
}
