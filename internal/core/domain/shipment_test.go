package domain

import "testing"

func TestShipmentStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to ShipmentStatus
		want     bool
	}{
		{StatusPending, StatusPickup, true},
		{StatusPending, StatusDelivered, true}, // forward jumps skip missed scans
		{StatusPickup, StatusInTransit, true},
		{StatusInTransit, StatusOutForDelivery, true},
		{StatusOutForDelivery, StatusDelivered, true},

		{StatusInTransit, StatusPickup, false}, // no rewind
		{StatusPickup, StatusPickup, false},
		{StatusDelivered, StatusCancelled, false}, // terminal
		{StatusCancelled, StatusPickup, false},

		{StatusPending, StatusCancelled, true},
		{StatusOutForDelivery, StatusCancelled, true},

		{StatusPending, "teleported", false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestShipmentStatus_Terminal(t *testing.T) {
	for status, want := range map[ShipmentStatus]bool{
		StatusPending:        false,
		StatusPickup:         false,
		StatusInTransit:      false,
		StatusOutForDelivery: false,
		StatusDelivered:      true,
		StatusCancelled:      true,
	} {
		if got := status.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", status, got, want)
		}
	}
}

func TestShipment_Active(t *testing.T) {
	sh := &Shipment{Status: StatusInTransit}
	if !sh.Active() {
		t.Error("in-transit shipment must be active")
	}
	sh.Status = StatusDelivered
	if sh.Active() {
		t.Error("delivered shipment must not be active")
	}
}
