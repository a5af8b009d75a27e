package orderflow

import (
	"strings"
	"testing"
	"time"

	"feastbid/internal/bid"
	"feastbid/internal/types"
)

func orderBid(price float64) bid.Bid {
	return bid.Bid{
		AgentName:      "Tasty Burger",
		Neighborhood:   "Fenway",
		Offer:          "combo",
		RealPrice:      price + 2,
		BidPrice:       price,
		StatusTimeline: []string{"Order locked", "On the grill", "Runner dispatched", "At your door"},
	}
}

func TestComputeOrderWeeklyPlan(t *testing.T) {
	c := types.RequestConstraints{Duration: types.Duration7, Quantity: 3}
	o := ComputeOrder(orderBid(10.00), c, time.Now())

	if o.Subtotal != 210.00 {
		t.Fatalf("Subtotal = %v, want 210.00", o.Subtotal)
	}
	if o.Taxes != 14.70 {
		t.Fatalf("Taxes = %v, want 14.70", o.Taxes)
	}
	if o.Total != 224.70 {
		t.Fatalf("Total = %v, want 224.70", o.Total)
	}
}

func TestComputeOrderSingle(t *testing.T) {
	c := types.RequestConstraints{Duration: types.DurationSingle, Quantity: 2}
	o := ComputeOrder(orderBid(12.00), c, time.Now())

	if o.Subtotal != 24.00 || o.Taxes != 1.68 || o.Total != 25.68 {
		t.Fatalf("order = %v/%v/%v, want 24.00/1.68/25.68", o.Subtotal, o.Taxes, o.Total)
	}
}

func TestComputeOrderQuantityFloor(t *testing.T) {
	c := types.RequestConstraints{Duration: types.DurationSingle, Quantity: 0}
	o := ComputeOrder(orderBid(9.99), c, time.Now())
	if o.Quantity != 1 || o.Subtotal != 9.99 {
		t.Fatalf("order = qty %d subtotal %v, want 1 / 9.99", o.Quantity, o.Subtotal)
	}
}

func TestOrderIDFormat(t *testing.T) {
	o := ComputeOrder(orderBid(10.00), types.DefaultConstraints(), time.Now())
	if !strings.HasPrefix(o.ID, "#MATCH-") {
		t.Fatalf("ID = %q, want #MATCH- prefix", o.ID)
	}
	o2 := ComputeOrder(orderBid(10.00), types.DefaultConstraints(), time.Now())
	if o.ID == o2.ID {
		t.Fatalf("order IDs collide: %q", o.ID)
	}
}

func TestTrackProgressesWithAge(t *testing.T) {
	placed := time.Now()
	o := ComputeOrder(orderBid(10.00), types.DefaultConstraints(), placed)

	snap := Track(o, placed)
	if snap.StatusIndex != 1 {
		t.Fatalf("fresh order StatusIndex = %d, want 1", snap.StatusIndex)
	}

	snap = Track(o, placed.Add(25*time.Second))
	if snap.StatusIndex != 3 {
		t.Fatalf("StatusIndex at 25s = %d, want 3", snap.StatusIndex)
	}

	snap = Track(o, placed.Add(10*time.Minute))
	if snap.StatusIndex != len(o.Bid.StatusTimeline) {
		t.Fatalf("StatusIndex = %d, must cap at timeline length %d", snap.StatusIndex, len(o.Bid.StatusTimeline))
	}
	if snap.ETAMinutes != 5 {
		t.Fatalf("ETAMinutes = %d, must floor at 5", snap.ETAMinutes)
	}
}

func TestTrackETADeterministicPerOrder(t *testing.T) {
	placed := time.Now()
	o := ComputeOrder(orderBid(10.00), types.DefaultConstraints(), placed)

	a := Track(o, placed)
	b := Track(o, placed)
	if a.ETAMinutes != b.ETAMinutes {
		t.Fatalf("ETA jitter not stable: %d vs %d", a.ETAMinutes, b.ETAMinutes)
	}
	if a.ETAMinutes < 18 || a.ETAMinutes > 29 {
		t.Fatalf("initial ETA = %d, want within 18..29", a.ETAMinutes)
	}

	later := Track(o, placed.Add(30*time.Second))
	if later.ETAMinutes != a.ETAMinutes-3 {
		t.Fatalf("ETA at 30s = %d, want %d", later.ETAMinutes, a.ETAMinutes-3)
	}
}

func TestTrackClockSkew(t *testing.T) {
	placed := time.Now()
	o := ComputeOrder(orderBid(10.00), types.DefaultConstraints(), placed)

	snap := Track(o, placed.Add(-time.Minute))
	if snap.StatusIndex != 1 {
		t.Fatalf("StatusIndex with skewed clock = %d, want 1", snap.StatusIndex)
	}
}
