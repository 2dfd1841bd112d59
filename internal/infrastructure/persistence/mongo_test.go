package persistence

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

// The snapshot travels to Mongo as a BSON document, so the round-trip must go
// through the BSON codec, not just the JSON helpers.
func TestSnapshotDoc_BSONRoundTripKeepsRates(t *testing.T) {
	rate := decimal.RequireFromString("42.50")
	snap := &ports.Snapshot{
		Shipments: []*domain.Shipment{{
			ID:             "shp_1",
			TrackingNumber: "DNE123456789",
			Rate:           rate,
		}},
		SavedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	doc, err := encodeSnapshot(snap)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("bson marshal: %v", err)
	}
	var stored snapshotDoc
	if err := bson.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("bson unmarshal: %v", err)
	}

	got, err := decodeSnapshot(stored)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Shipments) != 1 {
		t.Fatalf("got %d shipments, want 1", len(got.Shipments))
	}
	if !got.Shipments[0].Rate.Equal(rate) {
		t.Fatalf("rate %s after round-trip, want %s", got.Shipments[0].Rate, rate)
	}
	if !got.SavedAt.Equal(snap.SavedAt) {
		t.Fatalf("savedAt %s after round-trip, want %s", got.SavedAt, snap.SavedAt)
	}
}

func TestDecodeSnapshot_RejectsGarbage(t *testing.T) {
	if _, err := decodeSnapshot(snapshotDoc{Snapshot: []byte("{not json")}); err == nil {
		t.Fatal("corrupt snapshot payload must not decode")
	}
}
