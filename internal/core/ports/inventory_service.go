package ports

import (
	"context"

	"github.com/dnexpress/logistics-api/internal/core/domain"
)

// AddInventoryInput carries a new stock line. SKU is optional; a blank SKU is
// generated.
type AddInventoryInput struct {
	Name        string
	Description string
	SKU         string
	Quantity    int
	Location    string
}

// ListInventoryInput carries the list endpoint's query parameters.
type ListInventoryInput struct {
	Location string
	Status   string
	Page     Page
}

// InventorySummary aggregates a company's whole inventory, regardless of the
// page requested.
type InventorySummary struct {
	TotalItems    int `json:"totalItems"`
	TotalQuantity int `json:"totalQuantity"`
	ActiveItems   int `json:"activeItems"`
}

// UpdateInventoryInput is the patch accepted by the update endpoint.
type UpdateInventoryInput struct {
	Name        *string
	Description *string
	Quantity    *int
	Location    *string
	Status      *domain.InventoryStatus
}

// InventoryService manages a company's warehoused stock.
type InventoryService interface {
	Add(ctx context.Context, actor Actor, in AddInventoryInput) (*domain.InventoryItem, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.InventoryItem, error)
	List(ctx context.Context, actor Actor, in ListInventoryInput) ([]*domain.InventoryItem, PageResult, InventorySummary, error)
	Update(ctx context.Context, actor Actor, id string, in UpdateInventoryInput) (*domain.InventoryItem, error)
	// Remove soft-deletes by marking the item inactive; removing an already
	// inactive item succeeds and leaves it inactive.
	Remove(ctx context.Context, actor Actor, id string) error
}
