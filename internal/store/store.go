package store

import (
	"context"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

// Store is the repository interface for snapshots and locally recorded
// cleanings.
type Store interface {
	// Migrate creates the tables if they do not exist.
	Migrate(ctx context.Context) error
	// SaveSnapshot stores a serialized snapshot.
	SaveSnapshot(ctx context.Context, snapshot []byte) error
	// LatestSnapshot returns the most recent snapshot, or nil if none exists.
	LatestSnapshot(ctx context.Context) ([]byte, error)
	// SaveCleaning records a cleaning the backend accepted.
	SaveCleaning(ctx context.Context, c model.ScheduledCleaning) error
	// Cleanings lists recorded cleanings for a vessel, newest first.
	Cleanings(ctx context.Context, vesselID string) ([]model.ScheduledCleaning, error)
	Close() error
}
