package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
	"github.com/dnexpress/logistics-api/internal/infrastructure/db/memory"
)

func newInventoryService() *InventoryService {
	return NewInventoryService(memory.NewInventoryRepository(memory.NewStore()), zerolog.Nop())
}

func TestInventoryService_Add(t *testing.T) {
	svc := newInventoryService()
	actor := customerActor("company_1")

	item, err := svc.Add(context.Background(), actor, ports.AddInventoryInput{Name: "Widget", Quantity: 12, Location: "A-04"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.CompanyID != "company_1" {
		t.Fatalf("company not taken from caller: %q", item.CompanyID)
	}
	if item.SKU == "" {
		t.Fatal("sku not generated")
	}
	if item.Status != domain.InventoryActive {
		t.Fatalf("status = %q, want active", item.Status)
	}
}

func TestInventoryService_AddValidation(t *testing.T) {
	svc := newInventoryService()
	actor := customerActor("company_1")

	if _, err := svc.Add(context.Background(), actor, ports.AddInventoryInput{Quantity: 1}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("nameless item must fail, got %v", err)
	}
	if _, err := svc.Add(context.Background(), actor, ports.AddInventoryInput{Name: "Widget", Quantity: -1}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("negative quantity must fail, got %v", err)
	}
}

func TestInventoryService_AddDuplicateSKU(t *testing.T) {
	svc := newInventoryService()

	if _, err := svc.Add(context.Background(), customerActor("company_1"), ports.AddInventoryInput{Name: "Widget", SKU: "SKU-1", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	// SKU uniqueness holds across companies.
	_, err := svc.Add(context.Background(), customerActor("company_2"), ports.AddInventoryInput{Name: "Gadget", SKU: "SKU-1", Quantity: 1})
	if !errors.Is(err, domain.ErrSKUTaken) {
		t.Fatalf("expected ErrSKUTaken, got %v", err)
	}
}

func TestInventoryService_UpdateOwnershipAndValidation(t *testing.T) {
	svc := newInventoryService()
	actor := customerActor("company_1")
	item, err := svc.Add(context.Background(), actor, ports.AddInventoryInput{Name: "Widget", Quantity: 5})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	qty := 9
	updated, err := svc.Update(context.Background(), actor, item.ID, ports.UpdateInventoryInput{Quantity: &qty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Quantity != 9 {
		t.Fatalf("quantity = %d, want 9", updated.Quantity)
	}

	negative := -3
	if _, err := svc.Update(context.Background(), actor, item.ID, ports.UpdateInventoryInput{Quantity: &negative}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("negative quantity must fail, got %v", err)
	}
	bogus := domain.InventoryStatus("vaporized")
	if _, err := svc.Update(context.Background(), actor, item.ID, ports.UpdateInventoryInput{Status: &bogus}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown status must fail, got %v", err)
	}
	if _, err := svc.Update(context.Background(), customerActor("company_2"), item.ID, ports.UpdateInventoryInput{Quantity: &qty}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestInventoryService_RemoveIsIdempotent(t *testing.T) {
	svc := newInventoryService()
	actor := customerActor("company_1")
	item, err := svc.Add(context.Background(), actor, ports.AddInventoryInput{Name: "Widget", Quantity: 5})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.Remove(context.Background(), actor, item.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, err := svc.Get(context.Background(), actor, item.ID)
	if err != nil {
		t.Fatalf("get after remove: %v", err)
	}
	if got.Status != domain.InventoryInactive {
		t.Fatalf("status = %q, want inactive", got.Status)
	}

	if err := svc.Remove(context.Background(), actor, item.ID); err != nil {
		t.Fatalf("second remove must succeed: %v", err)
	}
}

func TestInventoryService_ListWithSummary(t *testing.T) {
	svc := newInventoryService()
	actor := customerActor("company_1")

	for _, in := range []ports.AddInventoryInput{
		{Name: "Widget", Quantity: 10, Location: "A-01"},
		{Name: "Gadget", Quantity: 5, Location: "A-02"},
		{Name: "Gear", Quantity: 2, Location: "B-01"},
	} {
		if _, err := svc.Add(context.Background(), actor, in); err != nil {
			t.Fatalf("add %s: %v", in.Name, err)
		}
	}
	if _, err := svc.Add(context.Background(), customerActor("company_2"), ports.AddInventoryInput{Name: "Other", Quantity: 99}); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, page, summary, err := svc.List(context.Background(), actor, ports.ListInventoryInput{Page: ports.Page{Limit: 2}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || len(items) != 2 {
		t.Fatalf("unexpected page: %+v len=%d", page, len(items))
	}
	// Summary spans the whole inventory, not just the page.
	if summary.TotalItems != 3 || summary.TotalQuantity != 17 || summary.ActiveItems != 3 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	filtered, page, _, err := svc.List(context.Background(), actor, ports.ListInventoryInput{Location: "A-01"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if page.Total != 1 || filtered[0].Name != "Widget" {
		t.Fatalf("location filter ignored: %+v", filtered)
	}
}
