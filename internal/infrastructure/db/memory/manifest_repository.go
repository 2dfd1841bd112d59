package memory

import (
	"context"
	"sort"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
	"github.com/dnexpress/logistics-api/internal/pkg/idgen"
)

// ManifestRepository implements ports.ManifestRepository on the in-memory
// store.
type ManifestRepository struct {
	store *Store
}

func NewManifestRepository(store *Store) *ManifestRepository {
	return &ManifestRepository{store: store}
}

func (r *ManifestRepository) Create(_ context.Context, m *domain.Manifest) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if m.ID == "" {
		m.ID = idgen.ID()
	}
	if m.ManifestNumber == "" {
		m.ManifestNumber = idgen.ManifestNumber()
	}
	if m.Status == "" {
		m.Status = domain.ManifestPending
	}
	if m.ManifestType == "" {
		m.ManifestType = domain.ManifestTypeStandard
	}
	m.CreatedAt = now
	m.UpdatedAt = now

	c := cloneManifest(m)
	s.manifests[c.ID] = c
	return nil
}

func (r *ManifestRepository) ByID(_ context.Context, id string) (*domain.Manifest, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.manifests[id]
	if !ok {
		return nil, domain.ErrManifestNotFound
	}
	return cloneManifest(m), nil
}

func (r *ManifestRepository) ListByCompany(_ context.Context, companyID string, filter ports.ManifestFilter) ([]*domain.Manifest, int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Manifest, 0)
	for _, m := range s.manifests {
		if m.CompanyID != companyID {
			continue
		}
		if filter.Status != "" && string(m.Status) != filter.Status {
			continue
		}
		if filter.Type != "" && m.ManifestType != filter.Type {
			continue
		}
		matched = append(matched, m)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start, end := paginate(total, clampPage(filter.Page))
	out := make([]*domain.Manifest, 0, end-start)
	for _, m := range matched[start:end] {
		out = append(out, cloneManifest(m))
	}
	return out, total, nil
}

func (r *ManifestRepository) UpdateStatus(_ context.Context, id string, status domain.ManifestStatus) (*domain.Manifest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.manifests[id]
	if !ok {
		return nil, domain.ErrManifestNotFound
	}
	m.Status = status
	m.UpdatedAt = s.now()
	return cloneManifest(m), nil
}
