package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pauljones0/garden-stock-bot/internal/models"
)

const firestoreCollection = "bot_state"

// stateDocument is the Firestore shape of bot_state/<key>.
type stateDocument struct {
	Snapshot  models.Snapshot `firestore:"snapshot"`
	UpdatedAt time.Time       `firestore:"updatedAt"`
}

type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestore connects to Firestore. credentialsFile is optional; without it
// Application Default Credentials are used.
func NewFirestore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// GetSnapshot returns the stored snapshot for key, or nil if none was ever stored.
func (s *FirestoreStore) GetSnapshot(ctx context.Context, key string) (*models.Snapshot, error) {
	doc, err := s.client.Collection(firestoreCollection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			slog.Info("No stored snapshot found, assuming first run", "collection", firestoreCollection, "key", key)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get %s/%s: %v", ErrRead, firestoreCollection, key, err)
	}
	if !doc.Exists() {
		return nil, nil
	}

	var state stateDocument
	if err := doc.DataTo(&state); err != nil {
		return nil, fmt.Errorf("%w: unmarshal %s/%s: %v", ErrRead, firestoreCollection, key, err)
	}
	snap := state.Snapshot.Clone()
	return &snap, nil
}

// SetSnapshot overwrites the stored snapshot for key.
func (s *FirestoreStore) SetSnapshot(ctx context.Context, key string, snap models.Snapshot) error {
	state := newStateDocument(snap, time.Now())
	if _, err := s.client.Collection(firestoreCollection).Doc(key).Set(ctx, state); err != nil {
		return fmt.Errorf("%w: set %s/%s: %v", ErrWrite, firestoreCollection, key, err)
	}
	slog.Info("Stored snapshot", "collection", firestoreCollection, "key", key, "items", snap.Len())
	return nil
}

// newStateDocument allocates every map so Firestore stores empty categories as
// empty maps rather than nulls.
func newStateDocument(snap models.Snapshot, now time.Time) stateDocument {
	return stateDocument{Snapshot: snap.Clone(), UpdatedAt: now.UTC()}
}
