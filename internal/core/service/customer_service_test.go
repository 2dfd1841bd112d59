package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
	"github.com/dnexpress/logistics-api/internal/infrastructure/db/memory"
)

type customerFixture struct {
	svc       *CustomerService
	users     *memory.UserRepository
	shipments *memory.ShipmentRepository
	inventory *memory.InventoryRepository
}

func newCustomerFixture() *customerFixture {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	shipments := memory.NewShipmentRepository(store)
	inventory := memory.NewInventoryRepository(store)
	return &customerFixture{
		svc:       NewCustomerService(users, shipments, inventory, zerolog.Nop()),
		users:     users,
		shipments: shipments,
		inventory: inventory,
	}
}

func TestCustomerService_Update(t *testing.T) {
	f := newCustomerFixture()
	owner := seedAccount(t, f.users, false)

	phone := "7865550123"
	company := "Acme Global Imports"
	updated, err := f.svc.Update(context.Background(), owner.ID, ports.UpdateCustomerInput{Phone: &phone, CompanyName: &company})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != phone || updated.CompanyName != company {
		t.Fatalf("patch not applied: %+v", updated)
	}

	bad := "12"
	if _, err := f.svc.Update(context.Background(), owner.ID, ports.UpdateCustomerInput{Phone: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("short phone must fail, got %v", err)
	}
}

func TestCustomerService_Info(t *testing.T) {
	f := newCustomerFixture()
	owner := seedAccount(t, f.users, false)

	seedShipment(t, f.shipments, owner.ID)
	delivered := seedShipment(t, f.shipments, owner.ID)
	cancelled := seedShipment(t, f.shipments, owner.ID)
	now := time.Now().UTC()
	if _, err := f.shipments.AppendStatus(context.Background(), delivered.ID, domain.StatusHistoryEntry{Status: domain.StatusDelivered, Timestamp: now}, &now); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if _, err := f.shipments.AppendStatus(context.Background(), cancelled.ID, domain.StatusHistoryEntry{Status: domain.StatusCancelled, Timestamp: now}, nil); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := f.inventory.Create(context.Background(), &domain.InventoryItem{CompanyID: owner.ID, Name: "Widget", Quantity: 3}); err != nil {
		t.Fatalf("inventory: %v", err)
	}

	info, err := f.svc.Info(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	m := info.Metrics
	if m.TotalShipments != 3 || m.ActiveShipments != 1 || m.DeliveredShipments != 1 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
	// Cancelled shipments are never billed.
	if !m.TotalRevenue.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("revenue = %s, want 50", m.TotalRevenue)
	}
	if m.InventoryItems != 1 || info.InventoryCount != 1 {
		t.Fatalf("inventory count wrong: %+v", m)
	}
	if len(info.RecentShipments) != 3 {
		t.Fatalf("recent shipments = %d, want 3", len(info.RecentShipments))
	}
}

func TestCustomerService_Deactivate(t *testing.T) {
	f := newCustomerFixture()
	owner := seedAccount(t, f.users, false)

	if err := f.svc.Deactivate(context.Background(), owner.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	reloaded, err := f.svc.Get(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reloaded.Status != domain.UserInactive {
		t.Fatalf("status = %q, want inactive", reloaded.Status)
	}

	if err := f.svc.Deactivate(context.Background(), "user_missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
