package idgen

import (
	"fmt"
	"strings"
	"testing"
)

func TestID_Format(t *testing.T) {
	id := ID()
	parts := strings.Split(id, "_")
	if len(parts) != 3 || parts[0] != "id" {
		t.Fatalf("unexpected id format: %q", id)
	}
	if len(parts[2]) != 9 {
		t.Fatalf("expected 9-char suffix, got %q", parts[2])
	}
}

func TestTrackingNumber_Format(t *testing.T) {
	tn := TrackingNumber()
	if !strings.HasPrefix(tn, "DNE") {
		t.Fatalf("expected DNE prefix, got %q", tn)
	}
	if tn != strings.ToUpper(tn) {
		t.Fatalf("tracking number must be upper case: %q", tn)
	}
	if len(tn) < 11 {
		t.Fatalf("tracking number too short: %q", tn)
	}
}

func TestCustomerNumber_Sequence(t *testing.T) {
	got := CustomerNumber(0, nil)
	if got != "DNX-100001" {
		t.Fatalf("expected DNX-100001, got %q", got)
	}
	got = CustomerNumber(41, nil)
	if got != "DNX-100042" {
		t.Fatalf("expected DNX-100042, got %q", got)
	}
}

func TestCustomerNumber_CollisionAdvances(t *testing.T) {
	taken := map[string]bool{"DNX-100001": true, "DNX-100002": true}
	got := CustomerNumber(0, func(c string) bool { return taken[c] })
	if got != "DNX-100003" {
		t.Fatalf("expected DNX-100003, got %q", got)
	}
}

func TestCustomerNumber_FallsBackWhenExhausted(t *testing.T) {
	// Exhaust the whole sequential window so the random path is forced.
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		seen[fmt.Sprintf("DNX-%06d", 100001+i)] = true
	}

	got := CustomerNumber(0, func(c string) bool { return seen[c] })
	if !strings.HasPrefix(got, "DNX-") || len(got) != 10 {
		t.Fatalf("unexpected fallback format: %q", got)
	}
	if seen[got] {
		t.Fatalf("fallback returned an existing number: %q", got)
	}
}

func TestSKU_Format(t *testing.T) {
	sku := SKU()
	if !strings.HasPrefix(sku, "SKU-") {
		t.Fatalf("expected SKU- prefix, got %q", sku)
	}
	if parts := strings.Split(sku, "-"); len(parts) != 3 || len(parts[2]) != 3 {
		t.Fatalf("unexpected sku format: %q", sku)
	}
}

func TestManifestNumber_Format(t *testing.T) {
	mn := ManifestNumber()
	parts := strings.Split(mn, "-")
	if len(parts) != 3 || parts[0] != "MNF" {
		t.Fatalf("unexpected manifest number format: %q", mn)
	}
	if len(parts[1]) != 8 || len(parts[2]) != 4 {
		t.Fatalf("unexpected manifest number format: %q", mn)
	}
}
