package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
	"github.com/dnexpress/logistics-api/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// stubs
// ---------------------------------------------------------------------------

type stubSethwanClient struct {
	validation *ports.SethwanValidation
	warehouses *ports.SethwanWarehouses
	push       *ports.SethwanShipmentPush
	sync       *ports.SethwanWarehouseSync
	submit     *ports.SethwanManifestSubmit

	submitted []*domain.Manifest
}

func (c *stubSethwanClient) Validate(context.Context, ports.SethwanCredentials) *ports.SethwanValidation {
	if c.validation != nil {
		return c.validation
	}
	return &ports.SethwanValidation{SethwanResult: ports.SethwanResult{Success: true}, Valid: true}
}

func (c *stubSethwanClient) Warehouses(context.Context, ports.SethwanCredentials) *ports.SethwanWarehouses {
	if c.warehouses != nil {
		return c.warehouses
	}
	return &ports.SethwanWarehouses{SethwanResult: ports.SethwanResult{Success: true}}
}

func (c *stubSethwanClient) PushShipment(context.Context, ports.SethwanCredentials, *domain.Shipment) *ports.SethwanShipmentPush {
	if c.push != nil {
		return c.push
	}
	return &ports.SethwanShipmentPush{SethwanResult: ports.SethwanResult{Success: true}}
}

func (c *stubSethwanClient) SyncCustomerWarehouse(context.Context, ports.SethwanCredentials, *domain.User) *ports.SethwanWarehouseSync {
	if c.sync != nil {
		return c.sync
	}
	return &ports.SethwanWarehouseSync{SethwanResult: ports.SethwanResult{Success: true}, WarehouseID: "wh_1"}
}

func (c *stubSethwanClient) SubmitManifest(_ context.Context, _ ports.SethwanCredentials, m *domain.Manifest, _ string) *ports.SethwanManifestSubmit {
	c.submitted = append(c.submitted, m)
	if c.submit != nil {
		return c.submit
	}
	return &ports.SethwanManifestSubmit{SethwanResult: ports.SethwanResult{Success: true}, Reference: "STW-REF-1"}
}

// ---------------------------------------------------------------------------
// fixtures
// ---------------------------------------------------------------------------

type manifestFixture struct {
	svc       *ManifestService
	shipments *memory.ShipmentRepository
	users     *memory.UserRepository
	client    *stubSethwanClient
}

func newManifestFixture() *manifestFixture {
	store := memory.NewStore()
	manifests := memory.NewManifestRepository(store)
	shipments := memory.NewShipmentRepository(store)
	users := memory.NewUserRepository(store)
	client := &stubSethwanClient{}
	return &manifestFixture{
		svc:       NewManifestService(manifests, shipments, users, client, zerolog.Nop()),
		shipments: shipments,
		users:     users,
		client:    client,
	}
}

func seedAccount(t *testing.T, users *memory.UserRepository, integrated bool) *domain.User {
	t.Helper()
	u := &domain.User{
		CompanyName:  "Acme Imports",
		FirstName:    "Ana",
		LastName:     "Diaz",
		Email:        "ana@acme.test",
		Phone:        "3055550100",
		PasswordHash: "x",
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if integrated {
		link := domain.SethwanLink{CustomerID: "stw_cust_1", AccountID: "stw_acct_1", APIKey: "k", DefaultWarehouse: "wh_1", Integrated: true}
		var err error
		u, err = users.Update(context.Background(), u.ID, ports.UserPatch{Sethwan: &link})
		if err != nil {
			t.Fatalf("integrate account: %v", err)
		}
	}
	return u
}

// ---------------------------------------------------------------------------
// tests
// ---------------------------------------------------------------------------

func TestManifestService_Create(t *testing.T) {
	f := newManifestFixture()
	owner := seedAccount(t, f.users, false)
	actor := customerActor(owner.ID)
	a := seedShipment(t, f.shipments, owner.ID)
	b := seedShipment(t, f.shipments, owner.ID)

	manifest, err := f.svc.Create(context.Background(), actor, ports.CreateManifestInput{
		ShipmentIDs: []string{a.ID, b.ID},
		Destination: "Kingston",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(manifest.ManifestNumber, "MNF-") {
		t.Fatalf("manifest number not assigned: %q", manifest.ManifestNumber)
	}
	if manifest.Status != domain.ManifestPending || manifest.ManifestType != domain.ManifestTypeStandard {
		t.Fatalf("defaults not applied: %+v", manifest)
	}
}

func TestManifestService_CreateValidation(t *testing.T) {
	f := newManifestFixture()
	owner := seedAccount(t, f.users, false)
	actor := customerActor(owner.ID)
	sh := seedShipment(t, f.shipments, owner.ID)

	if _, err := f.svc.Create(context.Background(), actor, ports.CreateManifestInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty manifest must fail, got %v", err)
	}
	if _, err := f.svc.Create(context.Background(), actor, ports.CreateManifestInput{
		ShipmentIDs:  []string{sh.ID},
		ManifestType: "freeform",
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown type must fail, got %v", err)
	}
	if _, err := f.svc.Create(context.Background(), actor, ports.CreateManifestInput{
		ShipmentIDs: []string{"ship_missing"},
	}); !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("unknown shipment must fail, got %v", err)
	}
}

func TestManifestService_CreateRejectsForeignShipments(t *testing.T) {
	f := newManifestFixture()
	owner := seedAccount(t, f.users, false)
	foreign := seedShipment(t, f.shipments, "company_other")

	_, err := f.svc.Create(context.Background(), customerActor(owner.ID), ports.CreateManifestInput{
		ShipmentIDs: []string{foreign.ID},
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestManifestService_Document(t *testing.T) {
	f := newManifestFixture()
	owner := seedAccount(t, f.users, false)
	actor := customerActor(owner.ID)
	a := seedShipment(t, f.shipments, owner.ID)
	b := seedShipment(t, f.shipments, owner.ID)

	manifest, err := f.svc.Create(context.Background(), actor, ports.CreateManifestInput{ShipmentIDs: []string{a.ID, b.ID}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	doc, err := f.svc.Document(context.Background(), actor, manifest.ID)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if doc.Filename != manifest.ManifestNumber+".txt" {
		t.Fatalf("filename = %q", doc.Filename)
	}
	body := string(doc.Body)
	if !strings.Contains(body, manifest.ManifestNumber) {
		t.Fatal("manifest number missing from document")
	}
	if !strings.Contains(body, a.TrackingNumber) || !strings.Contains(body, b.TrackingNumber) {
		t.Fatal("shipment lines missing from document")
	}
	if !strings.Contains(body, "Total weight: 9.0 lbs") {
		t.Fatalf("weight total missing:\n%s", body)
	}
	if !strings.Contains(body, "Total value:  50.00") {
		t.Fatalf("value total missing:\n%s", body)
	}
}

func TestManifestService_SubmitRequiresIntegration(t *testing.T) {
	f := newManifestFixture()
	owner := seedAccount(t, f.users, false)
	actor := customerActor(owner.ID)
	sh := seedShipment(t, f.shipments, owner.ID)

	manifest, err := f.svc.Create(context.Background(), actor, ports.CreateManifestInput{ShipmentIDs: []string{sh.ID}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.SubmitToSethwan(context.Background(), actor, manifest.ID); !errors.Is(err, domain.ErrNotIntegrated) {
		t.Fatalf("expected ErrNotIntegrated, got %v", err)
	}
}

func TestManifestService_SubmitToSethwan(t *testing.T) {
	f := newManifestFixture()
	owner := seedAccount(t, f.users, true)
	actor := customerActor(owner.ID)
	sh := seedShipment(t, f.shipments, owner.ID)

	manifest, err := f.svc.Create(context.Background(), actor, ports.CreateManifestInput{ShipmentIDs: []string{sh.ID}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	submitted, err := f.svc.SubmitToSethwan(context.Background(), actor, manifest.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Status != domain.ManifestSubmitted {
		t.Fatalf("status = %q, want submitted", submitted.Status)
	}
	if len(f.client.submitted) != 1 || f.client.submitted[0].ID != manifest.ID {
		t.Fatal("manifest never reached the partner client")
	}
}

func TestManifestService_SubmitPartnerRejection(t *testing.T) {
	f := newManifestFixture()
	owner := seedAccount(t, f.users, true)
	actor := customerActor(owner.ID)
	sh := seedShipment(t, f.shipments, owner.ID)
	f.client.submit = &ports.SethwanManifestSubmit{SethwanResult: ports.SethwanResult{Success: false, Error: "warehouse closed"}}

	manifest, err := f.svc.Create(context.Background(), actor, ports.CreateManifestInput{ShipmentIDs: []string{sh.ID}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.SubmitToSethwan(context.Background(), actor, manifest.ID); err == nil {
		t.Fatal("rejection must surface as an error")
	}
	got, err := f.svc.Get(context.Background(), actor, manifest.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.ManifestPending {
		t.Fatalf("rejected manifest must stay pending, got %q", got.Status)
	}
}

func TestManifestService_UpdateStatus(t *testing.T) {
	f := newManifestFixture()
	owner := seedAccount(t, f.users, false)
	actor := customerActor(owner.ID)
	sh := seedShipment(t, f.shipments, owner.ID)

	manifest, err := f.svc.Create(context.Background(), actor, ports.CreateManifestInput{ShipmentIDs: []string{sh.ID}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := f.svc.UpdateStatus(context.Background(), actor, manifest.ID, domain.ManifestApproved)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != domain.ManifestApproved {
		t.Fatalf("status = %q, want approved", updated.Status)
	}

	if _, err := f.svc.UpdateStatus(context.Background(), actor, manifest.ID, "shredded"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), customerActor("company_other"), manifest.ID, domain.ManifestRejected); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
