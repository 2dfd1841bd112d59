package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dnexpress/logistics-api/internal/core/domain"
)

// Page carries the limit/offset convention shared by every list endpoint.
type Page struct {
	Limit  int
	Offset int
}

// UserPatch is an explicit partial update for a user record. Nil fields are
// left untouched; the store refreshes UpdatedAt on every apply.
type UserPatch struct {
	FirstName   *string
	LastName    *string
	Phone       *string
	CompanyName *string
	Profile     *domain.Profile
	Settings    *domain.Settings
	Status      *string
	Sethwan     *domain.SethwanLink
}

// UserFilter selects users for admin listings.
type UserFilter struct {
	Status string
	Role   string
	Page   Page
}

// UserRepository defines persistence operations for accounts.
// Lookups return domain.ErrUserNotFound when no record matches.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	ByID(ctx context.Context, id string) (*domain.User, error)
	// ByEmail matches case-insensitively.
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	ByCustomerNumber(ctx context.Context, customerNumber string) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, int, error)
	Count(ctx context.Context) (int, error)
}

// ShipmentPatch covers the fields a customer may edit while a shipment is
// still pending.
type ShipmentPatch struct {
	Notes             *string
	Service           *domain.ServiceLevel
	Rate              *decimal.Decimal
	EstimatedDelivery *time.Time
}

// ShipmentFilter selects a company's shipments.
type ShipmentFilter struct {
	Status string
	Page   Page
}

// ShipmentRepository defines persistence operations for shipments.
type ShipmentRepository interface {
	Create(ctx context.Context, s *domain.Shipment) error
	ByID(ctx context.Context, id string) (*domain.Shipment, error)
	// ByTrackingNumber is a case-sensitive exact match.
	ByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
	ListByCompany(ctx context.Context, companyID string, filter ShipmentFilter) ([]*domain.Shipment, int, error)
	ListAll(ctx context.Context) ([]*domain.Shipment, error)
	Update(ctx context.Context, id string, patch ShipmentPatch) (*domain.Shipment, error)
	// AppendStatus atomically appends a history entry, sets the current
	// status, and stamps the actual delivery time when provided.
	AppendStatus(ctx context.Context, id string, entry domain.StatusHistoryEntry, actualDelivery *time.Time) (*domain.Shipment, error)
}

// InventoryPatch is an explicit partial update for an inventory item.
type InventoryPatch struct {
	Name        *string
	Description *string
	Quantity    *int
	Location    *string
	Status      *domain.InventoryStatus
}

// InventoryFilter selects a company's inventory items.
type InventoryFilter struct {
	Location string
	Status   string
	Page     Page
}

// InventoryRepository defines persistence operations for inventory items.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	ByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	BySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)
	ListByCompany(ctx context.Context, companyID string, filter InventoryFilter) ([]*domain.InventoryItem, int, error)
	ListAll(ctx context.Context) ([]*domain.InventoryItem, error)
	Update(ctx context.Context, id string, patch InventoryPatch) (*domain.InventoryItem, error)
}

// ManifestFilter selects a company's manifests.
type ManifestFilter struct {
	Status string
	Type   string
	Page   Page
}

// ManifestRepository defines persistence operations for manifests.
type ManifestRepository interface {
	Create(ctx context.Context, m *domain.Manifest) error
	ByID(ctx context.Context, id string) (*domain.Manifest, error)
	ListByCompany(ctx context.Context, companyID string, filter ManifestFilter) ([]*domain.Manifest, int, error)
	UpdateStatus(ctx context.Context, id string, status domain.ManifestStatus) (*domain.Manifest, error)
}

// StatusUpdateRepository stores the denormalized cross-shipment status log.
type StatusUpdateRepository interface {
	Create(ctx context.Context, u *domain.StatusUpdate) error
	ListByShipment(ctx context.Context, shipmentID string) ([]*domain.StatusUpdate, error)
	// ListByCompany returns updates newest first.
	ListByCompany(ctx context.Context, companyID string, page Page) ([]*domain.StatusUpdate, int, error)
}
