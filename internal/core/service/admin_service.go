package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

// AdminService covers the operator surface: system dashboard, account
// management and cross-tenant reports. Role enforcement happens in
// middleware.
type AdminService struct {
	users     ports.UserRepository
	shipments ports.ShipmentRepository
	inventory ports.InventoryRepository
	logger    zerolog.Logger
}

func NewAdminService(users ports.UserRepository, shipments ports.ShipmentRepository, inventory ports.InventoryRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, shipments: shipments, inventory: inventory, logger: logger}
}

func (s *AdminService) Dashboard(ctx context.Context) (*ports.AdminDashboard, error) {
	users, _, err := s.users.List(ctx, ports.UserFilter{Page: ports.Page{Limit: -1}})
	if err != nil {
		return nil, err
	}
	shipments, err := s.shipments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	inventory, err := s.inventory.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	dash := &ports.AdminDashboard{
		TotalRevenue:         decimal.Zero,
		AverageShipmentValue: decimal.Zero,
		SystemStatus:         "operational",
		LastUpdated:          time.Now().UTC(),
	}
	for _, u := range users {
		dash.TotalUsers++
		if u.Status == domain.UserActive {
			dash.ActiveUsers++
		}
	}
	billed := 0
	for _, sh := range shipments {
		dash.TotalShipments++
		if sh.Active() {
			dash.ActiveShipments++
		}
		if sh.Status == domain.StatusDelivered {
			dash.DeliveredShipments++
		}
		if sh.Status != domain.StatusCancelled {
			dash.TotalRevenue = dash.TotalRevenue.Add(sh.Rate)
			billed++
		}
	}
	if billed > 0 {
		dash.AverageShipmentValue = dash.TotalRevenue.Div(decimal.NewFromInt(int64(billed))).Round(2)
	}
	for _, item := range inventory {
		dash.InventoryItems++
		dash.TotalInventoryQty += item.Quantity
	}
	return dash, nil
}

func (s *AdminService) Users(ctx context.Context, filter ports.UserFilter) ([]*domain.User, ports.PageResult, error) {
	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return users, pageResult(total, filter.Page, len(users)), nil
}

func (s *AdminService) UserDetail(ctx context.Context, id string) (*ports.AdminUserDetail, error) {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	shipments, _, err := s.shipments.ListByCompany(ctx, id, ports.ShipmentFilter{Page: ports.Page{Limit: -1}})
	if err != nil {
		return nil, err
	}
	metrics := ports.AccountMetrics{TotalRevenue: decimal.Zero}
	for _, sh := range shipments {
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

	return &ports.AdminUserDetail{User: user, Metrics: metrics}, nil
}

func (s *AdminService) SetUserStatus(ctx context.Context, id, status string) (*domain.User, error) {
	if status != domain.UserActive && status != domain.UserInactive {
		return nil, domain.ErrInvalidStatus
	}
	user, err := s.users.Update(ctx, id, ports.UserPatch{Status: &status})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Str("status", status).Msg("account status changed")
	return user, nil
}

// Report assembles the requested cross-tenant sections; type "all" includes
// every section.
func (s *AdminService) Report(ctx context.Context, in ports.SystemReportInput) (*ports.SystemReport, error) {
	switch in.Type {
	case "", "all", "shipments", "revenue", "users", "inventory":
	default:
		return nil, domain.ErrValidation
	}
	reportType := in.Type
	if reportType == "" {
		reportType = "all"
	}

	end := in.End
	if end.IsZero() {
		end = time.Now().UTC()
	}
	start := in.Start
	if start.IsZero() {
		start = end.AddDate(0, -1, 0)
	}

	report := &ports.SystemReport{Start: start, End: end, GeneratedAt: time.Now().UTC()}
	inWindow := func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	}

	if reportType == "all" || reportType == "shipments" || reportType == "revenue" {
		shipments, err := s.shipments.ListAll(ctx)
		if err != nil {
			return nil, err
		}

		if reportType == "all" || reportType == "shipments" {
			section := &ports.SystemShipmentsSection{
				ByStatus:  map[domain.ShipmentStatus]int{},
				ByService: map[domain.ServiceLevel]int{},
			}
			for _, sh := range shipments {
				if !inWindow(sh.CreatedAt) {
					continue
				}
				section.Total++
				section.ByStatus[sh.Status]++
				section.ByService[sh.Service]++
				if sh.Status == domain.StatusDelivered {
					section.Delivered++
				}
				if sh.Status == domain.StatusCancelled {
					section.Cancelled++
				}
			}
			report.Shipments = section
		}

		if reportType == "all" || reportType == "revenue" {
			section := &ports.SystemRevenueSection{
				Total:     decimal.Zero,
				Average:   decimal.Zero,
				ByService: map[domain.ServiceLevel]decimal.Decimal{},
			}
			billed := 0
			for _, sh := range shipments {
				if !inWindow(sh.CreatedAt) || sh.Status == domain.StatusCancelled {
					continue
				}
				billed++
				section.Total = section.Total.Add(sh.Rate)
				current, ok := section.ByService[sh.Service]
				if !ok {
					current = decimal.Zero
				}
				section.ByService[sh.Service] = current.Add(sh.Rate)
			}
			if billed > 0 {
				section.Average = section.Total.Div(decimal.NewFromInt(int64(billed))).Round(2)
			}
			report.Revenue = section
		}
	}

	if reportType == "all" || reportType == "users" {
		users, _, err := s.users.List(ctx, ports.UserFilter{Page: ports.Page{Limit: -1}})
		if err != nil {
			return nil, err
		}
		section := &ports.SystemUsersSection{}
		for _, u := range users {
			section.Total++
			if u.Status == domain.UserActive {
				section.Active++
			} else {
				section.Inactive++
			}
			if inWindow(u.CreatedAt) {
				section.NewUsers++
			}
		}
		report.Users = section
	}

	if reportType == "all" || reportType == "inventory" {
		items, err := s.inventory.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		section := &ports.SystemInventorySection{ByStatus: map[domain.InventoryStatus]int{}}
		for _, item := range items {
			section.TotalItems++
			section.TotalQuantity += item.Quantity
			section.ByStatus[item.Status]++
			if item.Quantity < domain.LowStockThreshold {
				section.LowStock++
			}
		}
		report.Inventory = section
	}

	return report, nil
}
