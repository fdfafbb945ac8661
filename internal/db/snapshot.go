package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ukydev/scooter-console/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SnapshotsCollectionName is where dashboard snapshots are archived.
const SnapshotsCollectionName = "dashboard_snapshots"

// MongoSnapshotCollection wraps a MongoDB collection for snapshot operations.
type MongoSnapshotCollection struct {
	Collection *mongo.Collection
}

// NewSnapshotCollection returns the snapshot collection of database db.
func NewSnapshotCollection(client *mongo.Client, db string) *MongoSnapshotCollection {
	return &MongoSnapshotCollection{Collection: client.Database(db).Collection(SnapshotsCollectionName)}
}

// EnsureIndexes creates the index used to list the newest snapshots.
func (c *MongoSnapshotCollection) EnsureIndexes(ctx context.Context) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "taken_at", Value: -1}},
	})
	return err
}

// InsertSnapshot inserts a snapshot record into the collection.
func (c *MongoSnapshotCollection) InsertSnapshot(ctx context.Context, snapshot models.DashboardSnapshot) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if snapshot.TakenAt.IsZero() {
		snapshot.TakenAt = time.Now()
	}
	_, err := c.Collection.InsertOne(ctx, snapshot)
	return err
}

// mongoSnapshotCursor wraps a MongoDB cursor for snapshot queries.
type mongoSnapshotCursor struct {
	cursor *mongo.Cursor
}

// All retrieves all results from the cursor.
func (m *mongoSnapshotCursor) All(ctx context.Context, out interface{}) error {
	return m.cursor.All(ctx, out)
}

// Close closes the cursor.
func (m *mongoSnapshotCursor) Close(ctx context.Context) error {
	return m.cursor.Close(ctx)
}

// FindSnapshots returns the newest snapshots first. A limit of 0 returns all.
func (c *MongoSnapshotCollection) FindSnapshots(ctx context.Context, limit int64) (SnapshotCursor, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	opts := options.Find().SetSort(bson.D{{Key: "taken_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := c.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return &mongoSnapshotCursor{cursor: cursor}, nil
}

// LoadSnapshots drains FindSnapshots into a slice.
func LoadSnapshots(ctx context.Context, coll SnapshotCollection, limit int64) ([]models.DashboardSnapshot, error) {
	cursor, err := coll.FindSnapshots(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	snapshots := []models.DashboardSnapshot{}
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode snapshots: %w", err)
	}
	return snapshots, nil
}
