package memory

import (
	"context"
	"sort"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
	"github.com/dnexpress/logistics-api/internal/pkg/idgen"
)

// StatusUpdateRepository implements ports.StatusUpdateRepository on the
// in-memory store. The log is append-only.
type StatusUpdateRepository struct {
	store *Store
}

func NewStatusUpdateRepository(store *Store) *StatusUpdateRepository {
	return &StatusUpdateRepository{store: store}
}

func (r *StatusUpdateRepository) Create(_ context.Context, u *domain.StatusUpdate) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = idgen.ID()
	}
	if u.Timestamp.IsZero() {
		u.Timestamp = s.now()
	}
	c := *u
	s.statusUpdates = append(s.statusUpdates, &c)
	return nil
}

func (r *StatusUpdateRepository) ListByShipment(_ context.Context, shipmentID string) ([]*domain.StatusUpdate, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.StatusUpdate, 0)
	for _, u := range s.statusUpdates {
		if u.ShipmentID != shipmentID {
			continue
		}
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (r *StatusUpdateRepository) ListByCompany(_ context.Context, companyID string, page ports.Page) ([]*domain.StatusUpdate, int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.StatusUpdate, 0)
	for _, u := range s.statusUpdates {
		if u.CompanyID != companyID {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	total := len(matched)
	start, end := paginate(total, clampPage(page))
	out := make([]*domain.StatusUpdate, 0, end-start)
	for _, u := range matched[start:end] {
		c := *u
		out = append(out, &c)
	}
	return out, total, nil
}
