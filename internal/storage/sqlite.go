package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pauljones0/garden-stock-bot/internal/models"
)

//go:embed schema.sql
var schema string

// SQLiteStore keeps snapshots as JSON rows in a local database file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	slog.Info("Opened sqlite state store", "path", path)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetSnapshot(ctx context.Context, key string) (*models.Snapshot, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		slog.Info("No stored snapshot found, assuming first run", "key", key)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select %s: %v", ErrRead, key, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(value), &snap); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrRead, key, err)
	}
	snap = snap.Clone()
	return &snap, nil
}

func (s *SQLiteStore) SetSnapshot(ctx context.Context, key string, snap models.Snapshot) error {
	value, err := json.Marshal(snap.Clone())
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrWrite, key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: upsert %s: %v", ErrWrite, key, err)
	}
	slog.Info("Stored snapshot", "key", key, "items", snap.Len())
	return nil
}
