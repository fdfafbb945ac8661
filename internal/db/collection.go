package db

import (
	"context"

	"github.com/ukydev/scooter-console/internal/models"
)

// SnapshotCollection defines the interface for dashboard snapshot operations.
type SnapshotCollection interface {
	InsertSnapshot(ctx context.Context, snapshot models.DashboardSnapshot) error
	FindSnapshots(ctx context.Context, limit int64) (SnapshotCursor, error)
}

// SnapshotCursor defines the interface for snapshot cursor operations.
type SnapshotCursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}
