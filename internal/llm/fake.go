package llm

import (
	"context"
	"encoding/json"
	"sync"

	genai "google.golang.org/genai"
)

// FakeClient returns deterministic payloads for offline runs and tests.
// Scripted responses, when present, are consumed in order; otherwise a
// canned three-bid batch and a fixed chat line are returned.
type FakeClient struct {
	mu            sync.Mutex
	JSONResponses []json.RawMessage
	ChatResponses []string
	Err           error
}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.JSONResponses) > 0 {
		out := f.JSONResponses[0]
		f.JSONResponses = f.JSONResponses[1:]
		return out, nil
	}
	return json.RawMessage(fakeBidBatch), nil
}

func (f *FakeClient) Chat(ctx context.Context, system, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.ChatResponses) > 0 {
		out := f.ChatResponses[0]
		f.ChatResponses = f.ChatResponses[1:]
		return out, nil
	}
	return "You got it! Best I can do is what's on the table right now. Deal?", nil
}

// fakeBidBatch mirrors the generation contract: exactly three bids with every
// field populated.
const fakeBidBatch = `[
  {
    "agentName": "Tasty Burger",
    "neighborhood": "Fenway",
    "offer": "Two Big Tasty combos, fries on the house",
    "moat": "Fenway Original",
    "realPrice": 14.50,
    "bidPrice": 12.95,
    "dietaryCheck": "No restrictions noted",
    "brandVoice": "Ballpark Energy",
    "statusTimeline": ["Order locked", "On the grill", "Runner dispatched", "At your door"],
    "expertTip": "Ask for the secret sauce on the side.",
    "bonusOffer": "Free Side of Fries"
  },
  {
    "agentName": "Regina Pizzeria",
    "neighborhood": "North End",
    "offer": "Brick oven classic, cut fresh to order",
    "moat": "The Real Deal",
    "realPrice": 19.00,
    "bidPrice": 16.50,
    "dietaryCheck": "Vegetarian option available",
    "brandVoice": "OG Boston Pizzeria",
    "statusTimeline": ["Dough stretched", "In the brick oven", "Boxed hot", "Out for delivery"],
    "expertTip": "Reheat on a skillet, never the microwave.",
    "bonusOffer": "Extra Garlic Knots"
  },
  {
    "agentName": "Legal Sea Foods",
    "neighborhood": "Seaport",
    "offer": "Market-fresh catch with chowder starter",
    "moat": "Market Fresh",
    "realPrice": 28.50,
    "bidPrice": 24.95,
    "dietaryCheck": "Pescatarian friendly",
    "brandVoice": "Classy & Classic",
    "statusTimeline": ["Order confirmed", "Kitchen preparing", "Quality check", "Courier en route"],
    "expertTip": "The chowder travels better than you'd think.",
    "bonusOffer": "Double Points"
  }
]`
