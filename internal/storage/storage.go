// Package storage persists session snapshots. Sessions are saved as
// JSON snapshots keyed by session ID; the world and story documents
// themselves are static files and never stored here.
package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmcardle/gatewalker/pkg/state"
)

// Storage is the persistence interface for session snapshots.
// LoadSnapshot returns (nil, nil) when no snapshot exists for the ID.
type Storage interface {
	Ping(ctx context.Context) error
	Close() error

	SaveSnapshot(ctx context.Context, id uuid.UUID, snap *state.Snapshot) error
	LoadSnapshot(ctx context.Context, id uuid.UUID) (*state.Snapshot, error)
	DeleteSnapshot(ctx context.Context, id uuid.UUID) error
}
