package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

// InventoryService manages a company's warehoused stock lines.
type InventoryService struct {
	inventory ports.InventoryRepository
	logger    zerolog.Logger
}

func NewInventoryService(inventory ports.InventoryRepository, logger zerolog.Logger) *InventoryService {
	return &InventoryService{inventory: inventory, logger: logger}
}

// Add creates a stock line. An explicit SKU must be unique across all
// companies; a blank SKU is generated.
func (s *InventoryService) Add(ctx context.Context, actor ports.Actor, in ports.AddInventoryInput) (*domain.InventoryItem, error) {
	if in.Name == "" || in.Quantity < 0 {
		return nil, domain.ErrValidation
	}
	if in.SKU != "" {
		if _, err := s.inventory.BySKU(ctx, in.SKU); err == nil {
			return nil, domain.ErrSKUTaken
		} else if !errors.Is(err, domain.ErrInventoryNotFound) {
			return nil, err
		}
	}

	item := &domain.InventoryItem{
		CompanyID:   actor.ID,
		Name:        in.Name,
		Description: in.Description,
		SKU:         in.SKU,
		Quantity:    in.Quantity,
		Location:    in.Location,
		Status:      domain.InventoryActive,
	}
	if err := s.inventory.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("item_id", item.ID).
		Str("sku", item.SKU).
		Str("company_id", item.CompanyID).
		Msg("inventory item added")
	return item, nil
}

func (s *InventoryService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.InventoryItem, error) {
	item, err := s.inventory.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(item.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

// List returns one page of items plus a summary over the company's entire
// inventory.
func (s *InventoryService) List(ctx context.Context, actor ports.Actor, in ports.ListInventoryInput) ([]*domain.InventoryItem, ports.PageResult, ports.InventorySummary, error) {
	filter := ports.InventoryFilter{Location: in.Location, Status: in.Status, Page: in.Page}
	items, total, err := s.inventory.ListByCompany(ctx, actor.ID, filter)
	if err != nil {
		return nil, ports.PageResult{}, ports.InventorySummary{}, err
	}

	all, _, err := s.inventory.ListByCompany(ctx, actor.ID, ports.InventoryFilter{Page: ports.Page{Limit: -1}})
	if err != nil {
		return nil, ports.PageResult{}, ports.InventorySummary{}, err
	}
	var summary ports.InventorySummary
	for _, item := range all {
		summary.TotalItems++
		summary.TotalQuantity += item.Quantity
		if item.Status == domain.InventoryActive {
			summary.ActiveItems++
		}
	}

	return items, pageResult(total, in.Page, len(items)), summary, nil
}

func (s *InventoryService) Update(ctx context.Context, actor ports.Actor, id string, in ports.UpdateInventoryInput) (*domain.InventoryItem, error) {
	item, err := s.inventory.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(item.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.ErrValidation
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, domain.ErrValidation
	}

	patch := ports.InventoryPatch{
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Location:    in.Location,
		Status:      in.Status,
	}
	return s.inventory.Update(ctx, id, patch)
}

// Remove soft-deletes by marking the item inactive. Removing an already
// inactive item succeeds and leaves it inactive.
func (s *InventoryService) Remove(ctx context.Context, actor ports.Actor, id string) error {
	item, err := s.inventory.ByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(item.CompanyID) {
		return domain.ErrForbidden
	}
	if item.Status == domain.InventoryInactive {
		return nil
	}

	inactive := domain.InventoryInactive
	if _, err := s.inventory.Update(ctx, id, ports.InventoryPatch{Status: &inactive}); err != nil {
		return err
	}
	s.logger.Info().Str("item_id", id).Msg("inventory item removed")
	return nil
}
