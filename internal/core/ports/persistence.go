package ports

import (
	"context"
	"time"

	"github.com/dnexpress/logistics-api/internal/core/domain"
)

// Snapshot is a full copy of the entity store, in a shape a backing store can
// persist and restore wholesale.
type Snapshot struct {
	Users         []*domain.User          `json:"users" bson:"users"`
	Shipments     []*domain.Shipment      `json:"shipments" bson:"shipments"`
	Inventory     []*domain.InventoryItem `json:"inventory" bson:"inventory"`
	Manifests     []*domain.Manifest      `json:"manifests" bson:"manifests"`
	StatusUpdates []*domain.StatusUpdate  `json:"statusUpdates" bson:"status_updates"`
	SavedAt       time.Time               `json:"savedAt" bson:"saved_at"`
}

// SnapshotStore persists store snapshots. The in-memory store itself has no
// durability; a SnapshotStore is how a real backing store plugs in without
// touching business logic. Load returns (nil, nil) when nothing was saved yet.
type SnapshotStore interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}
