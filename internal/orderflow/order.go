package orderflow

import (
	"math"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"feastbid/internal/bid"
	"feastbid/internal/types"
)

// taxRate is the flat simulated sales tax applied at checkout.
const taxRate = 0.07

// Order is an immutable record of a completed checkout. It snapshots the
// accepted bid so later negotiations can never rewrite history.
type Order struct {
	ID        string    `json:"id"`
	Bid       bid.Bid   `json:"bid"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	Subtotal  float64   `json:"subtotal"`
	Taxes     float64   `json:"taxes"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

// ComputeOrder derives the order from the accepted bid and constraints:
// subtotal = unit price x quantity x duration multiplier, taxes at 7%,
// amounts rounded to cents.
func ComputeOrder(b bid.Bid, c types.RequestConstraints, now time.Time) Order {
	qty := c.Quantity
	if qty < 1 {
		qty = 1
	}
	subtotal := round2(b.BidPrice * float64(qty) * float64(c.Duration.Multiplier()))
	taxes := round2(subtotal * taxRate)
	return Order{
		ID:        newOrderID(),
		Bid:       b,
		Quantity:  qty,
		UnitPrice: b.BidPrice,
		Subtotal:  subtotal,
		Taxes:     taxes,
		Total:     round2(subtotal + taxes),
		CreatedAt: now,
	}
}

func newOrderID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return "#MATCH-" + ulid.MustNew(ulid.Now(), entropy).String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
