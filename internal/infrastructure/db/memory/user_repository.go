package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
	"github.com/dnexpress/logistics-api/internal/pkg/idgen"
)

// UserRepository implements ports.UserRepository on the in-memory store.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create fills identifiers and account defaults, then inserts the record.
// Customer number assignment retries against the live collection, so it stays
// unique even across concurrent registrations.
func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if u.ID == "" {
		u.ID = idgen.ID()
	}
	if u.CustomerNumber == "" {
		u.CustomerNumber = s.nextCustomerNumber()
	}
	if u.Role == "" {
		u.Role = domain.RoleCustomer
	}
	if u.Status == "" {
		u.Status = domain.UserActive
	}
	if u.Settings == (domain.Settings{}) {
		u.Settings = domain.DefaultSettings()
	}
	if u.WarehouseAddress == (domain.WarehouseAddress{}) {
		u.WarehouseAddress = domain.NewWarehouseAddress(u.CustomerNumber, u.FullName())
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	c := cloneUser(u)
	s.users[c.ID] = c
	s.byEmail[strings.ToLower(c.Email)] = c.ID
	s.byCustomerNo[c.CustomerNumber] = c.ID
	return nil
}

func (r *UserRepository) ByID(_ context.Context, id string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) ByEmail(_ context.Context, email string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(s.users[id]), nil
}

func (r *UserRepository) ByCustomerNumber(_ context.Context, customerNumber string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCustomerNo[customerNumber]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(s.users[id]), nil
}

func (r *UserRepository) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.CompanyName != nil {
		u.CompanyName = *patch.CompanyName
	}
	if patch.Profile != nil {
		u.Profile = *patch.Profile
	}
	if patch.Settings != nil {
		u.Settings = *patch.Settings
	}
	if patch.Status != nil {
		u.Status = *patch.Status
	}
	if patch.Sethwan != nil {
		u.Sethwan = *patch.Sethwan
	}
	u.UpdatedAt = s.now()
	return cloneUser(u), nil
}

func (r *UserRepository) List(_ context.Context, filter ports.UserFilter) ([]*domain.User, int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start, end := paginate(total, clampPage(filter.Page))
	out := make([]*domain.User, 0, end-start)
	for _, u := range matched[start:end] {
		out = append(out, cloneUser(u))
	}
	return out, total, nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}
