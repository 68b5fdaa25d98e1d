package app

import (
	"context"
	"testing"
	"time"

	"github.com/pauljones0/garden-stock-bot/internal/config"
	"github.com/pauljones0/garden-stock-bot/internal/scraper"
	"github.com/pauljones0/garden-stock-bot/internal/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		FetchMode:      config.FetchModeProxy,
		ScraperAPIURL:  config.DefaultScraperAPIURL,
		RequestTimeout: 5 * time.Second,
		StateBackend:   config.BackendMemory,
		StateKey:       config.DefaultStateKey,
		RoleMentions:   []string{"<@&1>"},
	}
}

func TestBuild(t *testing.T) {
	a, err := Build(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer a.Close()

	if a.Catalog.Len() == 0 {
		t.Error("Expected the embedded catalog to be loaded")
	}
	if _, ok := a.Fetcher.(*scraper.ProxyClient); !ok {
		t.Errorf("Expected *scraper.ProxyClient, got %T", a.Fetcher)
	}
	if _, ok := a.Store.(*storage.MemoryStore); !ok {
		t.Errorf("Expected *storage.MemoryStore, got %T", a.Store)
	}
	if a.Processor == nil {
		t.Error("Expected a processor")
	}
}

func TestBuild_UnknownFetchMode(t *testing.T) {
	cfg := testConfig()
	cfg.FetchMode = "carrier-pigeon"
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Error("Expected an error for an unknown fetch mode")
	}
}
