package model

import "testing"

func TestOrderStatusCanTransition(t *testing.T) {
	tests := []struct {
		from  OrderStatus
		to    OrderStatus
		typ   OrderType
		allow bool
	}{
		{OrderStatusPending, OrderStatusAccepted, OrderTypePickup, true},
		{OrderStatusPending, OrderStatusRejected, OrderTypePickup, true},
		{OrderStatusPending, OrderStatusCancelled, OrderTypeDineIn, true},
		{OrderStatusPending, OrderStatusReady, OrderTypePickup, false},
		{OrderStatusAccepted, OrderStatusPreparing, OrderTypeDelivery, true},
		{OrderStatusAccepted, OrderStatusRejected, OrderTypeDelivery, false},
		{OrderStatusPreparing, OrderStatusReady, OrderTypePickup, true},
		{OrderStatusReady, OrderStatusOutForDelivery, OrderTypeDelivery, true},
		{OrderStatusReady, OrderStatusOutForDelivery, OrderTypePickup, false},
		{OrderStatusReady, OrderStatusOutForDelivery, OrderTypeDineIn, false},
		{OrderStatusReady, OrderStatusCompleted, OrderTypeDelivery, true},
		{OrderStatusReady, OrderStatusCancelled, OrderTypePickup, false},
		{OrderStatusOutForDelivery, OrderStatusCompleted, OrderTypeDelivery, true},
		{OrderStatusCompleted, OrderStatusCancelled, OrderTypePickup, false},
		{OrderStatusCancelled, OrderStatusPending, OrderTypePickup, false},
		{OrderStatusRejected, OrderStatusAccepted, OrderTypePickup, false},
	}

	for _, tc := range tests {
		if got := tc.from.CanTransition(tc.to, tc.typ); got != tc.allow {
			t.Fatalf("%s -> %s (%s): expected %v, got %v", tc.from, tc.to, tc.typ, tc.allow, got)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled, OrderStatusRejected} {
		if !s.IsTerminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusAccepted, OrderStatusPreparing, OrderStatusReady, OrderStatusOutForDelivery} {
		if s.IsTerminal() {
			t.Fatalf("expected %s to be non-terminal", s)
		}
	}
	if OrderStatus("shipped").Valid() {
		t.Fatalf("expected unknown status to be invalid")
	}
}

func TestReservationStatusCanTransition(t *testing.T) {
	allowed := map[ReservationStatus][]ReservationStatus{
		ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled},
		ReservationStatusConfirmed: {ReservationStatusSeated, ReservationStatusCancelled, ReservationStatusNoShow},
		ReservationStatusSeated:    {ReservationStatusCompleted},
	}
	all := []ReservationStatus{
		ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusSeated,
		ReservationStatusCompleted, ReservationStatusCancelled, ReservationStatusNoShow,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			if got := from.CanTransition(to); got != want {
				t.Fatalf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}
