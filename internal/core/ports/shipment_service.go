package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dnexpress/logistics-api/internal/core/domain"
)

// AddressInput holds an origin or destination.
type AddressInput struct {
	Address      string
	City         string
	State        string
	ZipCode      string
	Country      string
	ContactName  string
	ContactPhone string
}

// PackageInput holds the package descriptor.
type PackageInput struct {
	Weight      float64
	Length      float64
	Width       float64
	Height      float64
	Description string
	Contents    []string
}

// CreateShipmentInput carries all data needed to create a shipment.
type CreateShipmentInput struct {
	Origin      AddressInput
	Destination AddressInput
	Package     PackageInput
	Service     domain.ServiceLevel
	Rate        decimal.Decimal
	Notes       string
}

// UpdateShipmentInput covers the fields editable while a shipment is pending.
type UpdateShipmentInput struct {
	Notes   *string
	Service *domain.ServiceLevel
}

// ListShipmentsInput carries the query parameters of the list endpoint.
type ListShipmentsInput struct {
	Status string
	Page   Page
}

// PageResult echoes pagination back alongside a list payload.
type PageResult struct {
	Total    int `json:"total"`
	Limit    int `json:"limit"`
	Offset   int `json:"offset"`
	Returned int `json:"returned"`
}

// TrackingView is the public, unauthenticated projection of a shipment.
// Street addresses and customer identity are withheld.
type TrackingView struct {
	TrackingNumber    string                      `json:"trackingNumber"`
	Status            domain.ShipmentStatus       `json:"status"`
	OriginCity        string                      `json:"originCity"`
	OriginState       string                      `json:"originState"`
	OriginCountry     string                      `json:"originCountry"`
	DestCity          string                      `json:"destinationCity"`
	DestState         string                      `json:"destinationState"`
	DestCountry       string                      `json:"destinationCountry"`
	StatusHistory     []domain.StatusHistoryEntry `json:"statusHistory"`
	EstimatedDelivery *time.Time                  `json:"estimatedDelivery"`
	ActualDelivery    *time.Time                  `json:"actualDelivery"`
	CreatedAt         time.Time                   `json:"createdAt"`
}

// ShipmentService defines use-case operations for shipments.
type ShipmentService interface {
	Create(ctx context.Context, actor Actor, in CreateShipmentInput) (*domain.Shipment, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Shipment, error)
	List(ctx context.Context, actor Actor, in ListShipmentsInput) ([]*domain.Shipment, PageResult, error)
	Update(ctx context.Context, actor Actor, id string, in UpdateShipmentInput) (*domain.Shipment, error)
	// Track serves the public tracking page; no authentication involved.
	Track(ctx context.Context, trackingNumber string) (*TrackingView, error)
}
