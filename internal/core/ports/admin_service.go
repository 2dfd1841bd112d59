package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dnexpress/logistics-api/internal/core/domain"
)

// AdminDashboard is the system-wide operations view.
type AdminDashboard struct {
	TotalUsers           int             `json:"totalUsers"`
	ActiveUsers          int             `json:"activeUsers"`
	TotalShipments       int             `json:"totalShipments"`
	ActiveShipments      int             `json:"activeShipments"`
	DeliveredShipments   int             `json:"deliveredShipments"`
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
	AverageShipmentValue decimal.Decimal `json:"averageShipmentValue"`
	InventoryItems       int             `json:"inventoryItems"`
	TotalInventoryQty    int             `json:"totalInventoryQuantity"`
	SystemStatus         string          `json:"systemStatus"`
	LastUpdated          time.Time       `json:"lastUpdated"`
}

// SystemReportInput selects the sections of an admin report. Type is one of
// all, shipments, revenue, users, inventory.
type SystemReportInput struct {
	Type  string
	Start time.Time
	End   time.Time
}

// SystemShipmentsSection summarizes shipments across all tenants.
type SystemShipmentsSection struct {
	Total     int                           `json:"total"`
	ByStatus  map[domain.ShipmentStatus]int `json:"byStatus"`
	ByService map[domain.ServiceLevel]int   `json:"byService"`
	Delivered int                           `json:"delivered"`
	Cancelled int                           `json:"cancelled"`
}

// SystemRevenueSection summarizes revenue across all tenants.
type SystemRevenueSection struct {
	Total     decimal.Decimal                         `json:"total"`
	Average   decimal.Decimal                         `json:"average"`
	ByService map[domain.ServiceLevel]decimal.Decimal `json:"byService"`
}

// SystemUsersSection summarizes accounts.
type SystemUsersSection struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	NewUsers int `json:"newUsers"`
}

// SystemInventorySection summarizes stock across all tenants.
type SystemInventorySection struct {
	TotalItems    int                            `json:"totalItems"`
	TotalQuantity int                            `json:"totalQuantity"`
	ByStatus      map[domain.InventoryStatus]int `json:"byStatus"`
	LowStock      int                            `json:"lowStock"`
}

// SystemReport bundles the requested sections; absent sections are nil.
type SystemReport struct {
	Start       time.Time               `json:"startDate"`
	End         time.Time               `json:"endDate"`
	GeneratedAt time.Time               `json:"generatedAt"`
	Shipments   *SystemShipmentsSection `json:"shipments,omitempty"`
	Revenue     *SystemRevenueSection   `json:"revenue,omitempty"`
	Users       *SystemUsersSection     `json:"users,omitempty"`
	Inventory   *SystemInventorySection `json:"inventory,omitempty"`
}

// AdminUserDetail is one account with its activity rollup.
type AdminUserDetail struct {
	User    *domain.User   `json:"user"`
	Metrics AccountMetrics `json:"metrics"`
}

// AdminService covers the operator surface. Role enforcement happens in
// middleware; every call here assumes an admin actor.
type AdminService interface {
	Dashboard(ctx context.Context) (*AdminDashboard, error)
	Users(ctx context.Context, filter UserFilter) ([]*domain.User, PageResult, error)
	UserDetail(ctx context.Context, id string) (*AdminUserDetail, error)
	SetUserStatus(ctx context.Context, id, status string) (*domain.User, error)
	Report(ctx context.Context, in SystemReportInput) (*SystemReport, error)
}
