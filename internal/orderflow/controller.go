// Package orderflow owns the canonical application state - constraints, the
// bid list, the selected bid, and placed orders - and sequences the screen
// flow with its navigation guards. All other components receive read-only
// snapshots and return new values; the controller is the single writer.
package orderflow

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"feastbid/internal/bid"
	"feastbid/internal/guardrail"
	"feastbid/internal/llm"
	"feastbid/internal/negotiation"
	"feastbid/internal/types"
)

// Screen identifiers.
type Screen string

const (
	ScreenInspiration Screen = "inspiration"
	ScreenForm        Screen = "form"
	ScreenBidding     Screen = "bidding"
	ScreenNegotiation Screen = "negotiation"
	ScreenCheckout    Screen = "checkout"
	ScreenTracking    Screen = "tracking"
)

var (
	// ErrNavigationBlocked means a guard rejected the navigation; the
	// current screen is unchanged.
	ErrNavigationBlocked = errors.New("orderflow: navigation blocked")
	ErrUnknownScreen     = errors.New("orderflow: unknown screen")
	ErrUnknownBid        = errors.New("orderflow: no such bid")
	ErrNoSelection       = errors.New("orderflow: no bid selected")
	ErrNoSession         = errors.New("orderflow: no negotiation in progress")
)

// BidSource produces bid batches; satisfied by *bid.Generator and by test
// fakes.
type BidSource interface {
	Generate(ctx context.Context, c types.RequestConstraints) ([]bid.Bid, error)
}

// Controller is the screen-flow state machine. Safe for concurrent use.
type Controller struct {
	gen   BidSource
	llm   llm.Client
	guard *guardrail.Filter

	mu          sync.Mutex
	screen      Screen
	constraints types.RequestConstraints
	bids        []bid.Bid
	loading     bool
	genSeq      uint64
	genErr      string
	selected    *bid.Bid
	session     *negotiation.Session
	orders      []Order
}

func New(gen BidSource, client llm.Client, guard *guardrail.Filter) *Controller {
	return &Controller{
		gen:         gen,
		llm:         client,
		guard:       guard,
		screen:      ScreenInspiration,
		constraints: types.DefaultConstraints(),
	}
}

// Snapshot is a read-only view of the controller state.
type Snapshot struct {
	Screen      Screen                   `json:"screen"`
	Constraints types.RequestConstraints `json:"constraints"`
	Loading     bool                     `json:"loading"`
	GenError    string                   `json:"genError,omitempty"`
	BidCount    int                      `json:"bidCount"`
	Selected    *bid.Bid                 `json:"selected,omitempty"`
	Negotiating bool                     `json:"negotiating"`
	OrderCount  int                      `json:"orderCount"`
}

func (f *Controller) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := Snapshot{
		Screen:      f.screen,
		Constraints: f.constraints,
		Loading:     f.loading,
		GenError:    f.genErr,
		BidCount:    len(f.bids),
		Negotiating: f.session != nil,
		OrderCount:  len(f.orders),
	}
	if f.selected != nil {
		sel := *f.selected
		snap.Selected = &sel
	}
	return snap
}

// NavigateTo moves to a screen subject to the guards: bidding needs bids or a
// generation in flight, checkout needs a selection, tracking needs an order,
// negotiation needs a live session. A rejected navigation leaves the current
// screen unchanged.
func (f *Controller) NavigateTo(target Screen) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch target {
	case ScreenInspiration, ScreenForm:
		// always allowed
	case ScreenBidding:
		if len(f.bids) == 0 && !f.loading {
			return ErrNavigationBlocked
		}
	case ScreenNegotiation:
		if f.session == nil {
			return ErrNavigationBlocked
		}
	case ScreenCheckout:
		if f.selected == nil {
			return ErrNavigationBlocked
		}
	case ScreenTracking:
		if len(f.orders) == 0 {
			return ErrNavigationBlocked
		}
	default:
		return ErrUnknownScreen
	}
	f.screen = target
	return nil
}

func (f *Controller) Screen() Screen {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.screen
}

// StartWithInspiration resets the constraints to defaults with only the item
// preference overridden, clears prior bids and selection, and moves to the
// form.
func (f *Controller) StartWithInspiration(pref string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := types.DefaultConstraints()
	c.ItemPref = pref
	f.constraints = c
	f.bids = nil
	f.selected = nil
	f.genErr = ""
	f.loading = false
	f.genSeq++ // supersede any generation still in flight
	f.abandonSessionLocked()
	f.screen = ScreenForm
}

// SubmitRequest stores the constraints, kicks off one asynchronous bid
// generation, and moves to the bidding screen in its loading sub-state.
// A resubmission supersedes any generation still in flight: the stale batch
// is discarded when it lands.
func (f *Controller) SubmitRequest(ctx context.Context, c types.RequestConstraints) {
	c = c.Normalize()

	f.mu.Lock()
	f.constraints = c
	f.bids = nil
	f.selected = nil
	f.abandonSessionLocked()
	f.loading = true
	f.genErr = ""
	f.genSeq++
	seq := f.genSeq
	f.screen = ScreenBidding
	f.mu.Unlock()

	go func() {
		bids, err := f.gen.Generate(ctx, c)

		f.mu.Lock()
		defer f.mu.Unlock()
		if seq != f.genSeq {
			// Superseded by a newer submission.
			return
		}
		f.loading = false
		if err != nil {
			log.Printf("orderflow: bid generation failed: %v", err)
			f.genErr = generationErrorMessage(err)
			return
		}
		f.bids = bids
		if len(bids) == 0 {
			f.genErr = "No agents bid on this request. Adjust your budget or item and resubmit the form."
		}
	}()
}

func generationErrorMessage(err error) string {
	if errors.Is(err, llm.ErrMissingCredential) {
		return "Bids could not be generated: GEMINI_API_KEY is not set. Add it to .env.local (or export it) and resubmit the form."
	}
	return "Bids could not be generated right now. Check your connection and resubmit the form."
}

// Bids returns the ranked bid list for display. Ranking is derived on every
// call and never reorders the stored records.
func (f *Controller) Bids(mode bid.SortMode) []bid.Enriched {
	f.mu.Lock()
	bids := append([]bid.Bid(nil), f.bids...)
	qty := f.constraints.Quantity
	f.mu.Unlock()
	return bid.Rank(bids, qty, mode)
}

// SelectBid accepts a bid as-is and moves to checkout.
func (f *Controller) SelectBid(agentName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.findBidLocked(agentName)
	if !ok {
		return ErrUnknownBid
	}
	f.selected = &b
	f.abandonSessionLocked()
	f.screen = ScreenCheckout
	return nil
}

// NegotiateBid opens a chat session for the bid and moves to the negotiation
// screen.
func (f *Controller) NegotiateBid(agentName string) (*negotiation.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.findBidLocked(agentName)
	if !ok {
		return nil, ErrUnknownBid
	}
	f.selected = &b
	f.abandonSessionLocked()
	f.session = negotiation.NewSession(b, f.constraints, f.llm, f.guard)
	f.screen = ScreenNegotiation
	return f.session, nil
}

// Session returns the live negotiation session, if any.
func (f *Controller) Session() (*negotiation.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return nil, ErrNoSession
	}
	return f.session, nil
}

// AcceptNegotiation closes the session, folds the final deal back into the
// selected bid (price, offer) and the constraints (quantity), and moves to
// checkout.
func (f *Controller) AcceptNegotiation() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil || f.selected == nil {
		return ErrNoSession
	}
	deal, _, err := f.session.Accept()
	if err != nil {
		return err
	}
	revised := f.selected.Revised(deal.UnitPrice, deal.Offer)
	f.selected = &revised
	f.constraints.Quantity = deal.Quantity
	f.session = nil
	f.screen = ScreenCheckout
	return nil
}

// AbandonNegotiation discards the session and returns to the bidding screen.
func (f *Controller) AbandonNegotiation() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.abandonSessionLocked()
	f.screen = ScreenBidding
}

// Checkout computes the order from the selected bid and constraints,
// prepends it to the order list, and moves to tracking.
func (f *Controller) Checkout() (Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return Order{}, ErrNoSelection
	}
	order := ComputeOrder(*f.selected, f.constraints, time.Now())
	f.orders = append([]Order{order}, f.orders...)
	f.screen = ScreenTracking
	return order, nil
}

// Orders returns a copy of the order list, newest first.
func (f *Controller) Orders() []Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Order(nil), f.orders...)
}

// OrderByID looks up one placed order.
func (f *Controller) OrderByID(id string) (Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

func (f *Controller) findBidLocked(agentName string) (bid.Bid, bool) {
	for _, b := range f.bids {
		if b.AgentName == agentName {
			return b, true
		}
	}
	return bid.Bid{}, false
}

func (f *Controller) abandonSessionLocked() {
	if f.session != nil {
		f.session.Abandon()
		f.session = nil
	}
}
