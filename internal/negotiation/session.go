// Package negotiation runs the per-bid chat session: it turns user free-text
// into model calls, parses structured deal deltas out of the reply, applies
// the discount floor, and keeps an append-only transcript.
package negotiation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"feastbid/internal/bid"
	"feastbid/internal/guardrail"
	"feastbid/internal/llm"
	"feastbid/internal/types"
)

// State of the session machine. Opening is transient: a new session seeds the
// greeting and lands in AwaitingInput.
type State string

const (
	StateAwaitingInput State = "awaiting_user_input"
	StateAwaitingReply State = "awaiting_model_reply"
	StateAccepted      State = "closed_accepted"
	StateAbandoned     State = "closed_abandoned"
)

// Speaker roles in the transcript.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

var (
	ErrEmptyMessage = errors.New("negotiation: message is empty")
	ErrBusy         = errors.New("negotiation: a turn is already in flight")
	ErrClosed       = errors.New("negotiation: session is closed")
)

// Canned lines. The fallback line stands in for any transport failure; the
// deal is left untouched and no retry is attempted.
const (
	fallbackLine   = "Server's on fire! Give me a sec."
	emptyReplyLine = "I'm losing signal in the kitchen! Try again."
)

// maxDiscount is the business ceiling: the negotiated unit price never falls
// below (1 - maxDiscount) of the original bid price.
const maxDiscount = 0.15

// Message is one transcript entry.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Deal is the mutable (price, offer, quantity) triple being negotiated.
type Deal struct {
	UnitPrice float64 `json:"unitPrice"`
	Offer     string  `json:"offer"`
	Quantity  int     `json:"quantity"`
}

// TurnResult is what one completed negotiation turn yields.
type TurnResult struct {
	Reply       string
	Deal        Deal
	DealChanged bool
	Input       guardrail.InputReport
	Output      guardrail.ReplyReport
}

// EventKind tags transcript feed events.
type EventKind string

const (
	EventMessage EventKind = "message"
	EventDeal    EventKind = "deal"
	EventClosed  EventKind = "closed"
)

// Event is delivered to transcript subscribers.
type Event struct {
	Kind    EventKind `json:"kind"`
	Message *Message  `json:"message,omitempty"`
	Deal    *Deal     `json:"deal,omitempty"`
	State   State     `json:"state,omitempty"`
}

// Session is the negotiation state machine for one selected bid. All methods
// are safe for concurrent use; at most one model call is in flight at a time
// and only the latest issued request may touch state.
type Session struct {
	id    string
	bid   bid.Bid
	floor float64

	llm   llm.Client
	guard *guardrail.Filter

	mu         sync.Mutex
	state      State
	deal       Deal
	origQty    int
	transcript []Message
	seq        uint64
	cancel     context.CancelFunc
	watchers   map[chan Event]struct{}
}

// NewSession opens a session for the selected bid, seeding the transcript
// with the agent greeting and initializing the deal from the bid and the
// constraints' quantity.
func NewSession(b bid.Bid, c types.RequestConstraints, client llm.Client, guard *guardrail.Filter) *Session {
	qty := c.Quantity
	if qty < 1 {
		qty = 1
	}
	s := &Session{
		id:    uuid.NewString(),
		bid:   b,
		floor: round2((1 - maxDiscount) * b.BidPrice),
		llm:   client,
		guard: guard,
		state: StateAwaitingInput,
		deal: Deal{
			UnitPrice: b.BidPrice,
			Offer:     b.Offer,
			Quantity:  qty,
		},
		origQty:  qty,
		watchers: make(map[chan Event]struct{}),
	}
	greeting := fmt.Sprintf(
		"Yo! I'm the %s agent. I see you're after %dx of the good stuff. My current offer is $%.2f each. It's a steal, but I like your style... want to talk numbers?",
		b.AgentName, qty, b.BidPrice,
	)
	s.transcript = append(s.transcript, Message{Role: RoleAgent, Text: greeting})
	return s
}

func (s *Session) ID() string { return s.id }

// Bid returns the bid the session was opened for (original, pre-negotiation).
func (s *Session) Bid() bid.Bid { return s.bid }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Deal() Deal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deal
}

// Transcript returns a copy of the chat so far.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.transcript...)
}

// HasChanges reports whether any model-driven revision moved price or
// quantity off the original bid.
func (s *Session) HasChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasChangesLocked()
}

func (s *Session) hasChangesLocked() bool {
	return s.deal.UnitPrice != s.bid.BidPrice || s.deal.Quantity != s.origQty
}

// Send runs one negotiation turn. It appends the user message optimistically,
// calls the model with the instruction payload, applies parsed deal deltas
// under the discount floor, and appends the cleaned reply. Re-entrant sends
// while a turn is in flight are rejected with ErrBusy, not queued.
func (s *Session) Send(ctx context.Context, text string) (TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return TurnResult{}, ErrEmptyMessage
	}

	s.mu.Lock()
	switch s.state {
	case StateAccepted, StateAbandoned:
		s.mu.Unlock()
		return TurnResult{}, ErrClosed
	case StateAwaitingReply:
		s.mu.Unlock()
		return TurnResult{}, ErrBusy
	}

	inputReport := s.guard.ClassifyInput(text)

	s.appendLocked(Message{Role: RoleUser, Text: text})

	if s.guard != nil && s.guard.Enforce && inputReport.Injection {
		// Hard-block mode: answer with the in-character redirect without
		// spending a model call.
		refusal := fmt.Sprintf("I'm here to help with your %s order! What can I do for you?", s.bid.AgentName)
		s.appendLocked(Message{Role: RoleAgent, Text: refusal})
		res := TurnResult{Reply: refusal, Deal: s.deal, Input: inputReport}
		s.mu.Unlock()
		return res, nil
	}

	s.seq++
	seq := s.seq
	s.state = StateAwaitingReply
	callCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	system := systemInstruction(s.bid.AgentName, s.bid.BrandVoice, s.deal)
	s.mu.Unlock()

	reply, err := s.llm.Chat(callCtx, system, text)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Stale-reply guard: only the latest issued request for a live session
	// may affect state. A superseded or post-abandon reply is dropped.
	if s.state != StateAwaitingReply || seq != s.seq {
		return TurnResult{}, ErrClosed
	}
	s.state = StateAwaitingInput
	s.cancel = nil

	if errors.Is(err, llm.ErrEmptyReply) {
		err = nil
		reply = ""
	}
	if err != nil {
		log.Printf("negotiation %s: model call failed: %v", s.id, err)
		s.appendLocked(Message{Role: RoleAgent, Text: fallbackLine})
		return TurnResult{Reply: fallbackLine, Deal: s.deal, Input: inputReport}, nil
	}
	if reply == "" {
		reply = emptyReplyLine
	}

	outputReport := s.guard.ClassifyReply(reply, s.bid.AgentName)

	upd, clean := ParseDealTags(reply)
	before := s.deal

	if upd.Price != nil {
		p := *upd.Price
		if p < s.floor {
			p = s.floor
		}
		s.deal.UnitPrice = p
	}
	if upd.Quantity != nil && !isAddOnRequest(text) {
		if q := *upd.Quantity; q >= 1 {
			s.deal.Quantity = q
		}
	}
	if upd.Offer != nil {
		s.deal.Offer = *upd.Offer
	}

	s.appendLocked(Message{Role: RoleAgent, Text: clean})

	changed := s.deal.UnitPrice != before.UnitPrice
	if s.deal != before {
		d := s.deal
		s.publishLocked(Event{Kind: EventDeal, Deal: &d})
	}

	return TurnResult{
		Reply:       clean,
		Deal:        s.deal,
		DealChanged: changed,
		Input:       inputReport,
		Output:      outputReport,
	}, nil
}

// Accept closes the session and emits the final deal for folding back into
// the selected bid and constraints. hasChanges reports whether the deal moved
// off the original bid at all.
func (s *Session) Accept() (Deal, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateAccepted, StateAbandoned:
		return Deal{}, false, ErrClosed
	}
	s.state = StateAccepted
	s.seq++ // invalidate any in-flight reply
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	changed := s.hasChangesLocked()
	s.publishLocked(Event{Kind: EventClosed, State: StateAccepted})
	s.closeWatchersLocked()
	return s.deal, changed, nil
}

// Abandon closes the session from any non-terminal state, cancelling an
// in-flight model call. Nothing is emitted; transcript and deal are discarded
// by the caller.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateAccepted, StateAbandoned:
		return
	}
	s.state = StateAbandoned
	s.seq++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.publishLocked(Event{Kind: EventClosed, State: StateAbandoned})
	s.closeWatchersLocked()
}

// Subscribe returns a feed of transcript and deal events. The channel closes
// when the session closes or ctx is done. Slow subscribers lose the oldest
// events rather than blocking the session.
func (s *Session) Subscribe(ctx context.Context) <-chan Event {
	s.mu.Lock()
	if s.state == StateAccepted || s.state == StateAbandoned {
		s.mu.Unlock()
		ch := make(chan Event)
		close(ch)
		return ch
	}
	// Replay the transcript so late subscribers see the full chat. The buffer
	// holds the whole replay plus headroom for live events, so no replayed
	// entry is ever dropped.
	ch := make(chan Event, len(s.transcript)+16)
	for _, m := range s.transcript {
		msg := m
		pushEvent(ch, Event{Kind: EventMessage, Message: &msg})
	}
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		if _, ok := s.watchers[ch]; ok {
			delete(s.watchers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}()

	return ch
}

func (s *Session) appendLocked(m Message) {
	s.transcript = append(s.transcript, m)
	msg := m
	s.publishLocked(Event{Kind: EventMessage, Message: &msg})
}

func (s *Session) publishLocked(evt Event) {
	for ch := range s.watchers {
		pushEvent(ch, evt)
	}
}

func (s *Session) closeWatchersLocked() {
	for ch := range s.watchers {
		delete(s.watchers, ch)
		close(ch)
	}
}

// pushEvent delivers without blocking: if the buffer is full the oldest
// event is dropped to make room.
func pushEvent(ch chan Event, evt Event) {
	select {
	case ch <- evt:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- evt:
	default:
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
