package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dnexpress/logistics-api/internal/core/domain"
)

// UpdateCustomerInput carries the profile fields a customer may change.
// Nil fields are left untouched.
type UpdateCustomerInput struct {
	FirstName   *string
	LastName    *string
	Phone       *string
	CompanyName *string
	Profile     *domain.Profile
	Settings    *domain.Settings
}

// AccountMetrics is the per-company dashboard summary.
type AccountMetrics struct {
	TotalShipments     int             `json:"totalShipments"`
	ActiveShipments    int             `json:"activeShipments"`
	DeliveredShipments int             `json:"deliveredShipments"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	InventoryItems     int             `json:"inventoryItems"`
}

// CustomerInfo bundles a profile with recent activity for the detail view.
type CustomerInfo struct {
	User            *domain.User       `json:"user"`
	Metrics         AccountMetrics     `json:"summary"`
	RecentShipments []*domain.Shipment `json:"recentShipments"`
	InventoryCount  int                `json:"inventoryCount"`
}

// CustomerService covers profile management. Ownership (owner-or-admin on the
// target id) is enforced by middleware before these are reached.
type CustomerService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateCustomerInput) (*domain.User, error)
	Info(ctx context.Context, id string) (*CustomerInfo, error)
	// Deactivate soft-deletes the account by flipping status to inactive.
	Deactivate(ctx context.Context, id string) error
}
