package processor

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/pauljones0/garden-stock-bot/internal/models"
	"github.com/pauljones0/garden-stock-bot/internal/notifier"
	"github.com/pauljones0/garden-stock-bot/internal/scraper"
)

type Processor interface {
	CheckStock(ctx context.Context) (models.Status, error)
}

type StockProcessor struct {
	fetcher  scraper.Fetcher
	parser   *scraper.Parser
	renderer *notifier.Renderer
	notifier StockNotifier
	store    StateStore
	stateKey string

	// inflight collapses overlapping triggers in this process into one cycle.
	inflight singleflight.Group
}

func New(f scraper.Fetcher, p *scraper.Parser, r *notifier.Renderer, n StockNotifier, store StateStore, stateKey string) *StockProcessor {
	return &StockProcessor{
		fetcher:  f,
		parser:   p,
		renderer: r,
		notifier: n,
		store:    store,
		stateKey: stateKey,
	}
}

// ShouldNotify reports whether current must be announced given the last
// notified snapshot (nil on first run).
func ShouldNotify(current models.Snapshot, previous *models.Snapshot) bool {
	return previous == nil || !current.Equal(*previous)
}

// CheckStock runs one fetch, parse, compare, notify cycle. Callers that arrive
// while a cycle is running receive that cycle's result.
func (p *StockProcessor) CheckStock(ctx context.Context) (models.Status, error) {
	v, err, shared := p.inflight.Do(p.stateKey, func() (result any, err error) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic during stock check", "panic", r)
				result, err = models.StatusError, fmt.Errorf("panic during stock check: %v", r)
			}
		}()
		return p.runCycle(ctx)
	})
	if shared {
		slog.Info("Stock check shared with an overlapping trigger")
	}
	status, _ := v.(models.Status)
	if status == "" {
		status = models.StatusError
	}
	return status, err
}

func (p *StockProcessor) runCycle(ctx context.Context) (models.Status, error) {
	slog.Info("Starting stock check...")

	fragments, err := p.fetcher.FetchFragments(ctx)
	if err != nil {
		slog.Error("Failed to fetch stock data", "error", err)
		return models.StatusFailedFetch, fmt.Errorf("fetch stock data: %w", err)
	}

	current := p.parser.Parse(fragments)

	previous, err := p.store.GetSnapshot(ctx, p.stateKey)
	if err != nil {
		slog.Warn("Failed to read last snapshot, treating as first run", "key", p.stateKey, "error", err)
		previous = nil
	}

	if !ShouldNotify(current, previous) {
		slog.Info("Stock data unchanged since last notification")
		return models.StatusUnchanged, nil
	}
	slog.Info("Stock data changed or initial fetch, sending notification", "firstRun", previous == nil, "items", current.Len())

	payload := p.renderer.Render(current)
	if err := p.notifier.Send(ctx, payload); err != nil {
		slog.Error("Failed to send Discord webhook", "error", err)
		return models.StatusFailedSend, fmt.Errorf("send notification: %w", err)
	}

	// The notification is out; a failed write only means the same stock is announced again next cycle.
	if err := p.store.SetSnapshot(ctx, p.stateKey, current); err != nil {
		slog.Error("Notification sent, but saving snapshot failed", "key", p.stateKey, "error", err)
	} else {
		slog.Info("Notification sent, snapshot updated", "key", p.stateKey)
	}
	return models.StatusNotified, nil
}
