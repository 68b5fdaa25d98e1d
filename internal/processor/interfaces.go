package processor

import (
	"context"

	"github.com/pauljones0/garden-stock-bot/internal/models"
	"github.com/pauljones0/garden-stock-bot/internal/notifier"
)

// StateStore abstracts the storage layer for the last notified snapshot.
// GetSnapshot returns nil, nil when nothing has been stored under key.
type StateStore interface {
	GetSnapshot(ctx context.Context, key string) (*models.Snapshot, error)
	SetSnapshot(ctx context.Context, key string, snap models.Snapshot) error
}

// StockNotifier abstracts the notification layer. A nil error means delivered.
type StockNotifier interface {
	Send(ctx context.Context, payload notifier.Payload) error
}
