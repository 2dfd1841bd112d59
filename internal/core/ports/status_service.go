package ports

import (
	"context"
	"time"

	"github.com/dnexpress/logistics-api/internal/core/domain"
)

// AdvanceInput carries a status transition request.
type AdvanceInput struct {
	Status   domain.ShipmentStatus
	Location string
	Notes    string
}

// StatusView is the tracking-progress projection of one shipment.
type StatusView struct {
	ShipmentID        string                      `json:"shipmentId"`
	TrackingNumber    string                      `json:"trackingNumber"`
	CurrentStatus     domain.ShipmentStatus       `json:"currentStatus"`
	StatusHistory     []domain.StatusHistoryEntry `json:"statusHistory"`
	EstimatedDelivery *time.Time                  `json:"estimatedDelivery"`
	ActualDelivery    *time.Time                  `json:"actualDelivery"`
	LastUpdated       time.Time                   `json:"lastUpdated"`
	// Updates are the audit records behind the history, oldest first. Unlike
	// StatusHistory they carry who performed each transition.
	Updates []*domain.StatusUpdate `json:"updates"`
}

// StatusService is the shipment state machine.
type StatusService interface {
	// Advance applies one status transition: validates the vocabulary and
	// the transition, appends to the shipment's history, mirrors the change
	// into the cross-shipment status log, and notifies fire-and-forget.
	Advance(ctx context.Context, actor Actor, shipmentID string, in AdvanceInput) (*domain.Shipment, *domain.StatusUpdate, error)
	Progress(ctx context.Context, actor Actor, shipmentID string) (*StatusView, error)
	ListByCustomer(ctx context.Context, actor Actor, customerID string, page Page) ([]*domain.StatusUpdate, PageResult, error)
}

// StatusNotification describes one transition for the notification side
// effect. Delivery is best-effort; a failed notification never fails the
// transition that produced it.
type StatusNotification struct {
	CustomerID     string                `json:"customerId"`
	TrackingNumber string                `json:"trackingNumber"`
	Status         domain.ShipmentStatus `json:"status"`
	Message        string                `json:"message"`
	Timestamp      time.Time             `json:"timestamp"`
}

// Notifier delivers status notifications to customers.
type Notifier interface {
	Notify(ctx context.Context, n StatusNotification) error
}
