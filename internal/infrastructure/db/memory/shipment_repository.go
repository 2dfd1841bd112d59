package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
	"github.com/dnexpress/logistics-api/internal/pkg/idgen"
)

// ShipmentRepository implements ports.ShipmentRepository on the in-memory
// store.
type ShipmentRepository struct {
	store *Store
}

func NewShipmentRepository(store *Store) *ShipmentRepository {
	return &ShipmentRepository{store: store}
}

// Create assigns the record id and tracking number, seeds the status history
// with the initial pending entry, and inserts the record.
func (r *ShipmentRepository) Create(_ context.Context, sh *domain.Shipment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sh.ID == "" {
		sh.ID = idgen.ID()
	}
	if sh.TrackingNumber == "" {
		sh.TrackingNumber = idgen.TrackingNumber()
	}
	if sh.Status == "" {
		sh.Status = domain.StatusPending
	}
	if len(sh.StatusHistory) == 0 {
		sh.StatusHistory = []domain.StatusHistoryEntry{{
			Status:    sh.Status,
			Timestamp: now,
			Location:  sh.Origin.City,
			Notes:     "Shipment created",
		}}
	}
	sh.CreatedAt = now
	sh.UpdatedAt = now

	c := cloneShipment(sh)
	s.shipments[c.ID] = c
	s.byTracking[c.TrackingNumber] = c.ID
	return nil
}

func (r *ShipmentRepository) ByID(_ context.Context, id string) (*domain.Shipment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	sh, ok := s.shipments[id]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	return cloneShipment(sh), nil
}

func (r *ShipmentRepository) ByTrackingNumber(_ context.Context, trackingNumber string) (*domain.Shipment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byTracking[trackingNumber]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	return cloneShipment(s.shipments[id]), nil
}

func (r *ShipmentRepository) ListByCompany(_ context.Context, companyID string, filter ports.ShipmentFilter) ([]*domain.Shipment, int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Shipment, 0)
	for _, sh := range s.shipments {
		if sh.CompanyID != companyID {
			continue
		}
		if filter.Status != "" && string(sh.Status) != filter.Status {
			continue
		}
		matched = append(matched, sh)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start, end := paginate(total, clampPage(filter.Page))
	out := make([]*domain.Shipment, 0, end-start)
	for _, sh := range matched[start:end] {
		out = append(out, cloneShipment(sh))
	}
	return out, total, nil
}

func (r *ShipmentRepository) ListAll(_ context.Context) ([]*domain.Shipment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Shipment, 0, len(s.shipments))
	for _, sh := range s.shipments {
		out = append(out, cloneShipment(sh))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ShipmentRepository) Update(_ context.Context, id string, patch ports.ShipmentPatch) (*domain.Shipment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sh, ok := s.shipments[id]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}

	if patch.Notes != nil {
		sh.Notes = *patch.Notes
	}
	if patch.Service != nil {
		sh.Service = *patch.Service
	}
	if patch.Rate != nil {
		sh.Rate = *patch.Rate
	}
	if patch.EstimatedDelivery != nil {
		sh.EstimatedDelivery = patch.EstimatedDelivery
	}
	sh.UpdatedAt = s.now()
	return cloneShipment(sh), nil
}

func (r *ShipmentRepository) AppendStatus(_ context.Context, id string, entry domain.StatusHistoryEntry, actualDelivery *time.Time) (*domain.Shipment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sh, ok := s.shipments[id]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}

	sh.Status = entry.Status
	sh.StatusHistory = append(sh.StatusHistory, entry)
	if actualDelivery != nil {
		sh.ActualDelivery = actualDelivery
	}
	sh.UpdatedAt = s.now()
	return cloneShipment(sh), nil
}
