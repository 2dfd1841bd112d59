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

// ---------------------------------------------------------------------------
// stubs
// ---------------------------------------------------------------------------

type stubNotifier struct {
	delivered chan ports.StatusNotification
	err       error
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{delivered: make(chan ports.StatusNotification, 8)}
}

func (n *stubNotifier) Notify(_ context.Context, notification ports.StatusNotification) error {
	if n.err != nil {
		return n.err
	}
	n.delivered <- notification
	return nil
}

func (n *stubNotifier) wait(t *testing.T) ports.StatusNotification {
	t.Helper()
	select {
	case got := <-n.delivered:
		return got
	case <-time.After(2 * time.Second):
		t.Fatal("notification never delivered")
		return ports.StatusNotification{}
	}
}

// ---------------------------------------------------------------------------
// fixtures
// ---------------------------------------------------------------------------

type statusFixture struct {
	svc       *StatusService
	shipments *memory.ShipmentRepository
	updates   *memory.StatusUpdateRepository
	notifier  *stubNotifier
}

func newStatusFixture() *statusFixture {
	store := memory.NewStore()
	shipments := memory.NewShipmentRepository(store)
	updates := memory.NewStatusUpdateRepository(store)
	notifier := newStubNotifier()
	return &statusFixture{
		svc:       NewStatusService(shipments, updates, notifier, zerolog.Nop()),
		shipments: shipments,
		updates:   updates,
		notifier:  notifier,
	}
}

func seedShipment(t *testing.T, repo *memory.ShipmentRepository, companyID string) *domain.Shipment {
	t.Helper()
	eta := time.Now().UTC().AddDate(0, 0, 7)
	sh := &domain.Shipment{
		CustomerID:        companyID,
		CompanyID:         companyID,
		Origin:            domain.PostalAddress{Address: "1 Main St", City: "Miami", State: "FL", Country: "USA"},
		Destination:       domain.PostalAddress{Address: "7 High St", City: "Kingston", Country: "Jamaica"},
		Package:           domain.Package{Weight: 4.5},
		Service:           domain.ServiceStandard,
		Rate:              decimal.NewFromInt(25),
		EstimatedDelivery: &eta,
	}
	if err := repo.Create(context.Background(), sh); err != nil {
		t.Fatalf("seed shipment: %v", err)
	}
	return sh
}

func customerActor(id string) ports.Actor {
	return ports.Actor{ID: id, Email: "ana@acme.test", Role: domain.RoleCustomer, CompanyName: "Acme Imports"}
}

// ---------------------------------------------------------------------------
// tests
// ---------------------------------------------------------------------------

func TestStatusService_Advance(t *testing.T) {
	f := newStatusFixture()
	sh := seedShipment(t, f.shipments, "company_1")

	updated, record, err := f.svc.Advance(context.Background(), customerActor("company_1"), sh.ID, ports.AdvanceInput{
		Status:   domain.StatusPickup,
		Location: "Miami Hub",
		Notes:    "picked up at dock 3",
	})
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if updated.Status != domain.StatusPickup {
		t.Fatalf("status = %q, want pickup", updated.Status)
	}
	if len(updated.StatusHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(updated.StatusHistory))
	}
	if record.ShipmentID != sh.ID || record.Status != domain.StatusPickup || record.UpdatedBy != "company_1" {
		t.Fatalf("unexpected status record: %+v", record)
	}

	n := f.notifier.wait(t)
	if n.TrackingNumber != sh.TrackingNumber || n.Status != domain.StatusPickup {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestStatusService_AdvanceUnknownStatus(t *testing.T) {
	f := newStatusFixture()
	sh := seedShipment(t, f.shipments, "company_1")

	_, _, err := f.svc.Advance(context.Background(), customerActor("company_1"), sh.ID, ports.AdvanceInput{Status: "teleported"})
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestStatusService_AdvanceRejectsRewind(t *testing.T) {
	f := newStatusFixture()
	sh := seedShipment(t, f.shipments, "company_1")
	actor := customerActor("company_1")

	if _, _, err := f.svc.Advance(context.Background(), actor, sh.ID, ports.AdvanceInput{Status: domain.StatusInTransit}); err != nil {
		t.Fatalf("advance: %v", err)
	}
	_, _, err := f.svc.Advance(context.Background(), actor, sh.ID, ports.AdvanceInput{Status: domain.StatusPickup})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestStatusService_AdvanceRejectsTerminal(t *testing.T) {
	f := newStatusFixture()
	sh := seedShipment(t, f.shipments, "company_1")
	actor := customerActor("company_1")

	if _, _, err := f.svc.Advance(context.Background(), actor, sh.ID, ports.AdvanceInput{Status: domain.StatusCancelled}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	_, _, err := f.svc.Advance(context.Background(), actor, sh.ID, ports.AdvanceInput{Status: domain.StatusPickup})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("cancelled shipments must be frozen, got %v", err)
	}
}

func TestStatusService_AdvanceForbidden(t *testing.T) {
	f := newStatusFixture()
	sh := seedShipment(t, f.shipments, "company_1")

	_, _, err := f.svc.Advance(context.Background(), customerActor("company_2"), sh.ID, ports.AdvanceInput{Status: domain.StatusPickup})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestStatusService_AdvanceAdminBypassesOwnership(t *testing.T) {
	f := newStatusFixture()
	sh := seedShipment(t, f.shipments, "company_1")

	admin := ports.Actor{ID: "ops_1", Role: domain.RoleAdmin}
	if _, _, err := f.svc.Advance(context.Background(), admin, sh.ID, ports.AdvanceInput{Status: domain.StatusPickup}); err != nil {
		t.Fatalf("admin advance: %v", err)
	}
}

func TestStatusService_AdvanceDeliveredStampsActualDelivery(t *testing.T) {
	f := newStatusFixture()
	sh := seedShipment(t, f.shipments, "company_1")

	updated, _, err := f.svc.Advance(context.Background(), customerActor("company_1"), sh.ID, ports.AdvanceInput{Status: domain.StatusDelivered})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if updated.ActualDelivery == nil {
		t.Fatal("actual delivery not stamped")
	}
	if last := updated.StatusHistory[len(updated.StatusHistory)-1]; last.Location != "Kingston" {
		t.Fatalf("location must default to destination city, got %q", last.Location)
	}
}

func TestStatusService_AdvanceSurvivesNotifierFailure(t *testing.T) {
	f := newStatusFixture()
	f.notifier.err = errors.New("broker down")
	sh := seedShipment(t, f.shipments, "company_1")

	if _, _, err := f.svc.Advance(context.Background(), customerActor("company_1"), sh.ID, ports.AdvanceInput{Status: domain.StatusPickup}); err != nil {
		t.Fatalf("transition must not fail on notifier error: %v", err)
	}
}

func TestStatusService_Progress(t *testing.T) {
	f := newStatusFixture()
	sh := seedShipment(t, f.shipments, "company_1")
	actor := customerActor("company_1")

	if _, _, err := f.svc.Advance(context.Background(), actor, sh.ID, ports.AdvanceInput{Status: domain.StatusInTransit}); err != nil {
		t.Fatalf("advance: %v", err)
	}

	view, err := f.svc.Progress(context.Background(), actor, sh.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if view.CurrentStatus != domain.StatusInTransit || len(view.StatusHistory) != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if len(view.Updates) != 1 {
		t.Fatalf("got %d audit records, want 1", len(view.Updates))
	}
	if view.Updates[0].Status != domain.StatusInTransit || view.Updates[0].UpdatedBy != actor.ID {
		t.Fatalf("unexpected audit record: %+v", view.Updates[0])
	}

	if _, err := f.svc.Progress(context.Background(), customerActor("company_2"), sh.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestStatusService_ListByCustomer(t *testing.T) {
	f := newStatusFixture()
	sh := seedShipment(t, f.shipments, "company_1")
	actor := customerActor("company_1")

	for _, status := range []domain.ShipmentStatus{domain.StatusPickup, domain.StatusInTransit} {
		if _, _, err := f.svc.Advance(context.Background(), actor, sh.ID, ports.AdvanceInput{Status: status}); err != nil {
			t.Fatalf("advance to %s: %v", status, err)
		}
	}

	updates, page, err := f.svc.ListByCustomer(context.Background(), actor, "company_1", ports.Page{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 || len(updates) != 2 {
		t.Fatalf("unexpected page: %+v len=%d", page, len(updates))
	}

	if _, _, err := f.svc.ListByCustomer(context.Background(), actor, "company_2", ports.Page{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
