package domain

import "time"

// InventoryStatus is the lifecycle state of an inventory item.
type InventoryStatus string

const (
	InventoryActive       InventoryStatus = "active"
	InventoryInactive     InventoryStatus = "inactive"
	InventoryDiscontinued InventoryStatus = "discontinued"
)

func (s InventoryStatus) Valid() bool {
	switch s {
	case InventoryActive, InventoryInactive, InventoryDiscontinued:
		return true
	}
	return false
}

// LowStockThreshold marks items flagged in inventory-health reports.
const LowStockThreshold = 10

// InventoryItem is a warehoused stock line owned by one company.
// SKU is unique across all companies; Quantity is never negative.
type InventoryItem struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"companyId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	Location    string          `json:"location,omitempty"`
	Status      InventoryStatus `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	LastUpdated time.Time       `json:"lastUpdated"`
}
