package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dnexpress/logistics-api/internal/core/domain"
)

// ReportRange selects the window a report covers. Explicit Start/End win over
// Period; otherwise Period (day, week, month, year) counts back from now.
type ReportRange struct {
	Period string
	Start  time.Time
	End    time.Time
}

// RevenueTrendPoint is one weekly bucket in the revenue trend.
type RevenueTrendPoint struct {
	Week      string          `json:"week"`
	Revenue   decimal.Decimal `json:"revenue"`
	Shipments int             `json:"shipments"`
}

// RevenueReport summarizes billing over a window.
type RevenueReport struct {
	Period    string              `json:"period"`
	Start     time.Time           `json:"start"`
	End       time.Time           `json:"end"`
	Total     decimal.Decimal     `json:"total"`
	Average   decimal.Decimal     `json:"average"`
	Count     int                 `json:"count"`
	Currency  string              `json:"currency"`
	Delivered int                 `json:"delivered"`
	Cancelled int                 `json:"cancelled"`
	Pending   int                 `json:"pending"`
	Trend     []RevenueTrendPoint `json:"trend"`
}

// DeliveryPerformanceReport measures how shipments are being delivered.
type DeliveryPerformanceReport struct {
	TotalShipments      int                           `json:"totalShipments"`
	Delivered           int                           `json:"deliveredShipments"`
	DeliveryRatePct     float64                       `json:"deliveryRatePct"`
	OnTimeDeliveries    int                           `json:"onTimeDeliveries"`
	OnTimeRatePct       float64                       `json:"onTimeRatePct"`
	LateDeliveries      int                           `json:"lateDeliveries"`
	AverageDeliveryDays float64                       `json:"averageDeliveryDays"`
	StatusBreakdown     map[domain.ShipmentStatus]int `json:"statusBreakdown"`
}

// InventoryAlert identifies an item flagged by the health check.
type InventoryAlert struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// InventoryHealthReport flags stock problems across a company's inventory.
type InventoryHealthReport struct {
	TotalItems      int                            `json:"totalItems"`
	ActiveItems     int                            `json:"activeItems"`
	TotalQuantity   int                            `json:"totalQuantity"`
	AverageQuantity float64                        `json:"averageQuantityPerItem"`
	LowStock        []InventoryAlert               `json:"lowStockItems"`
	OutOfStock      []InventoryAlert               `json:"outOfStockItems"`
	RecentAdditions int                            `json:"recentAdditions"`
	StatusBreakdown map[domain.InventoryStatus]int `json:"statusBreakdown"`
}

// ServiceCost aggregates spend for one service level.
type ServiceCost struct {
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

// CarrierCostReport breaks spend down by service type.
type CarrierCostReport struct {
	TotalSpent     decimal.Decimal                     `json:"totalSpent"`
	TotalShipments int                                 `json:"totalShipments"`
	AverageCost    decimal.Decimal                     `json:"averageCostPerShipment"`
	Currency       string                              `json:"currency"`
	ByService      map[domain.ServiceLevel]ServiceCost `json:"byServiceType"`
}

// CustomReportInput selects which metric blocks a custom report includes.
// Format is "json" or "csv".
type CustomReportInput struct {
	Metrics []string
	Period  string
	Format  string
}

// CustomReportMetrics holds the requested blocks; absent blocks are nil.
type CustomReportMetrics struct {
	Revenue   *RevenueReport             `json:"revenue,omitempty"`
	Delivery  *DeliveryPerformanceReport `json:"delivery,omitempty"`
	Inventory *InventoryHealthReport     `json:"inventory,omitempty"`
}

// CustomReport is the assembled on-demand report.
type CustomReport struct {
	Generated time.Time           `json:"generated"`
	Period    string              `json:"period"`
	Company   string              `json:"company"`
	Metrics   CustomReportMetrics `json:"metrics"`
}

// ReportService computes read-side aggregations over a company's records.
// Reports are recomputed per request; nothing is cached.
type ReportService interface {
	Revenue(ctx context.Context, actor Actor, rng ReportRange) (*RevenueReport, error)
	DeliveryPerformance(ctx context.Context, actor Actor) (*DeliveryPerformanceReport, error)
	InventoryHealth(ctx context.Context, actor Actor) (*InventoryHealthReport, error)
	CarrierCosts(ctx context.Context, actor Actor) (*CarrierCostReport, error)
	Custom(ctx context.Context, actor Actor, in CustomReportInput) (*CustomReport, error)
	// CustomCSV renders a custom report in the CSV export format.
	CustomCSV(report *CustomReport) []byte
}
