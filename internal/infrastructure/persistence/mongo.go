// Package persistence stores point-in-time snapshots of the in-memory store.
// The memory store stays the system of record; Mongo only carries state
// across restarts.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dnexpress/logistics-api/internal/core/ports"
)

const (
	defaultTimeout     = 10 * time.Second
	snapshotCollection = "snapshots"
	snapshotKey        = "latest"
)

// Config captures the minimal settings required to establish the MongoDB
// connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping,
// and returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// MongoSnapshotStore keeps a single latest snapshot document, replaced on
// every save.
type MongoSnapshotStore struct {
	coll *mongo.Collection
}

func NewMongoSnapshotStore(db *mongo.Database) *MongoSnapshotStore {
	return &MongoSnapshotStore{coll: db.Collection(snapshotCollection)}
}

// snapshotDoc is the stored shape. The snapshot itself is kept as its JSON
// encoding: decimal.Decimal has no exported fields, so driving it through
// the BSON struct codec would zero every monetary value.
type snapshotDoc struct {
	ID       string    `bson:"_id"`
	Snapshot []byte    `bson:"snapshot"`
	SavedAt  time.Time `bson:"saved_at"`
}

func encodeSnapshot(snap *ports.Snapshot) (snapshotDoc, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return snapshotDoc{}, fmt.Errorf("encode snapshot: %w", err)
	}
	return snapshotDoc{ID: snapshotKey, Snapshot: data, SavedAt: snap.SavedAt}, nil
}

func decodeSnapshot(doc snapshotDoc) (*ports.Snapshot, error) {
	var snap ports.Snapshot
	if err := json.Unmarshal(doc.Snapshot, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func (s *MongoSnapshotStore) Save(ctx context.Context, snap *ports.Snapshot) error {
	doc, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": snapshotKey}, doc, opts); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the latest snapshot, or (nil, nil) when none has been saved.
func (s *MongoSnapshotStore) Load(ctx context.Context) (*ports.Snapshot, error) {
	var doc snapshotDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": snapshotKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return decodeSnapshot(doc)
}

// NoopSnapshotStore is used when no Mongo URI is configured; the service then
// runs fully in-memory.
type NoopSnapshotStore struct{}

func (NoopSnapshotStore) Save(context.Context, *ports.Snapshot) error { return nil }

func (NoopSnapshotStore) Load(context.Context) (*ports.Snapshot, error) { return nil, nil }
