package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

const recentShipmentCount = 5

// CustomerService implements profile management and the account dashboard.
type CustomerService struct {
	users     ports.UserRepository
	shipments ports.ShipmentRepository
	inventory ports.InventoryRepository
	logger    zerolog.Logger
}

func NewCustomerService(users ports.UserRepository, shipments ports.ShipmentRepository, inventory ports.InventoryRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{users: users, shipments: shipments, inventory: inventory, logger: logger}
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.ByID(ctx, id)
}

func (s *CustomerService) Update(ctx context.Context, id string, in ports.UpdateCustomerInput) (*domain.User, error) {
	if in.Phone != nil {
		if err := validatePhone(*in.Phone); err != nil {
			return nil, err
		}
	}
	patch := ports.UserPatch{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		Profile:     in.Profile,
		Settings:    in.Settings,
	}
	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("profile updated")
	return user, nil
}

// Info returns the profile with the account metrics and recent shipments.
func (s *CustomerService) Info(ctx context.Context, id string) (*ports.CustomerInfo, error) {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	all, _, err := s.shipments.ListByCompany(ctx, id, ports.ShipmentFilter{Page: ports.Page{Limit: -1}})
	if err != nil {
		return nil, err
	}

	metrics := ports.AccountMetrics{TotalRevenue: decimal.Zero}
	for _, sh := range all {
		metrics.TotalShipments++
		if sh.Active() {
			metrics.ActiveShipments++
		}
		if sh.Status == domain.StatusDelivered {
			metrics.DeliveredShipments++
		}
		if sh.Status != domain.StatusCancelled {
			metrics.TotalRevenue = metrics.TotalRevenue.Add(sh.Rate)
		}
	}

	_, itemTotal, err := s.inventory.ListByCompany(ctx, id, ports.InventoryFilter{Page: ports.Page{Limit: -1}})
	if err != nil {
		return nil, err
	}
	metrics.InventoryItems = itemTotal

	recent := all
	if len(recent) > recentShipmentCount {
		recent = recent[:recentShipmentCount]
	}

	return &ports.CustomerInfo{
		User:            user,
		Metrics:         metrics,
		RecentShipments: recent,
		InventoryCount:  itemTotal,
	}, nil
}

func (s *CustomerService) Deactivate(ctx context.Context, id string) error {
	inactive := domain.UserInactive
	if _, err := s.users.Update(ctx, id, ports.UserPatch{Status: &inactive}); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("account deactivated")
	return nil
}
