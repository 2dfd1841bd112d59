package memory

import (
	"context"
	"sort"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
	"github.com/dnexpress/logistics-api/internal/pkg/idgen"
)

// InventoryRepository implements ports.InventoryRepository on the in-memory
// store.
type InventoryRepository struct {
	store *Store
}

func NewInventoryRepository(store *Store) *InventoryRepository {
	return &InventoryRepository{store: store}
}

func (r *InventoryRepository) Create(_ context.Context, item *domain.InventoryItem) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if item.ID == "" {
		item.ID = idgen.ID()
	}
	if item.SKU == "" {
		item.SKU = idgen.SKU()
	}
	if item.Status == "" {
		item.Status = domain.InventoryActive
	}
	item.CreatedAt = now
	item.LastUpdated = now

	c := cloneItem(item)
	s.inventory[c.ID] = c
	s.bySKU[c.SKU] = c.ID
	return nil
}

func (r *InventoryRepository) ByID(_ context.Context, id string) (*domain.InventoryItem, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.inventory[id]
	if !ok {
		return nil, domain.ErrInventoryNotFound
	}
	return cloneItem(item), nil
}

func (r *InventoryRepository) BySKU(_ context.Context, sku string) (*domain.InventoryItem, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySKU[sku]
	if !ok {
		return nil, domain.ErrInventoryNotFound
	}
	return cloneItem(s.inventory[id]), nil
}

func (r *InventoryRepository) ListByCompany(_ context.Context, companyID string, filter ports.InventoryFilter) ([]*domain.InventoryItem, int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.InventoryItem, 0)
	for _, item := range s.inventory {
		if item.CompanyID != companyID {
			continue
		}
		if filter.Location != "" && item.Location != filter.Location {
			continue
		}
		if filter.Status != "" && string(item.Status) != filter.Status {
			continue
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start, end := paginate(total, clampPage(filter.Page))
	out := make([]*domain.InventoryItem, 0, end-start)
	for _, item := range matched[start:end] {
		out = append(out, cloneItem(item))
	}
	return out, total, nil
}

func (r *InventoryRepository) ListAll(_ context.Context) ([]*domain.InventoryItem, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.InventoryItem, 0, len(s.inventory))
	for _, item := range s.inventory {
		out = append(out, cloneItem(item))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InventoryRepository) Update(_ context.Context, id string, patch ports.InventoryPatch) (*domain.InventoryItem, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.inventory[id]
	if !ok {
		return nil, domain.ErrInventoryNotFound
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Location != nil {
		item.Location = *patch.Location
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}
	item.LastUpdated = s.now()
	return cloneItem(item), nil
}
