// Package storage persists the last notified stock snapshot.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/pauljones0/garden-stock-bot/internal/config"
	"github.com/pauljones0/garden-stock-bot/internal/models"
)

var (
	ErrRead  = errors.New("state read failed")
	ErrWrite = errors.New("state write failed")
)

// Backend is a snapshot store that owns a connection.
type Backend interface {
	GetSnapshot(ctx context.Context, key string) (*models.Snapshot, error)
	SetSnapshot(ctx context.Context, key string, snap models.Snapshot) error
	Close() error
}

// Open returns the backend selected by cfg.StateBackend.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StateBackend {
	case config.BackendFirestore:
		return NewFirestore(ctx, cfg.ProjectID, cfg.FirestoreCredentialsFile)
	case config.BackendSQLite:
		return NewSQLite(ctx, cfg.SQLitePath)
	case config.BackendMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
}
