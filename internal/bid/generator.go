package bid

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	genai "google.golang.org/genai"

	"feastbid/internal/catalog"
	"feastbid/internal/llm"
	"feastbid/internal/types"
)

// responseSchema constrains the generation call to an array of complete bids.
// Every field is required; the model cannot omit any.
var responseSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"agentName":    {Type: genai.TypeString},
			"neighborhood": {Type: genai.TypeString},
			"offer":        {Type: genai.TypeString},
			"moat":         {Type: genai.TypeString},
			"realPrice":    {Type: genai.TypeNumber},
			"bidPrice":     {Type: genai.TypeNumber},
			"dietaryCheck": {Type: genai.TypeString},
			"brandVoice":   {Type: genai.TypeString},
			"statusTimeline": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"expertTip":  {Type: genai.TypeString},
			"bonusOffer": {Type: genai.TypeString},
		},
		Required: []string{
			"agentName", "neighborhood", "offer", "moat", "realPrice", "bidPrice",
			"dietaryCheck", "brandVoice", "statusTimeline", "expertTip", "bonusOffer",
		},
	},
}

// Generator produces bid batches from the text-completion service, with an
// expiring cache so identical requests within the TTL skip the model call.
type Generator struct {
	llm   llm.Client
	cache *expirable.LRU[string, []Bid]
}

// NewGenerator wires a generator. cacheEntries <= 0 disables caching.
func NewGenerator(client llm.Client, cacheEntries int, cacheTTL time.Duration) *Generator {
	g := &Generator{llm: client}
	if cacheEntries > 0 {
		g.cache = expirable.NewLRU[string, []Bid](cacheEntries, nil, cacheTTL)
	}
	return g
}

// Generate asks the model for exactly three competing bids matching the
// constraints. Transport errors, schema failures, and unusable payloads are
// all reported uniformly as a generation failure; malformed entries inside an
// otherwise valid array are dropped.
func (g *Generator) Generate(ctx context.Context, c types.RequestConstraints) ([]Bid, error) {
	key := cacheKey(c)
	if g.cache != nil {
		if cached, ok := g.cache.Get(key); ok {
			log.Printf("bid: cache hit for %q", c.ItemPref)
			return append([]Bid(nil), cached...), nil
		}
	}

	raw, err := g.llm.GenerateJSON(ctx, buildPrompt(c), responseSchema)
	if err != nil {
		return nil, fmt.Errorf("bid: generate: %w", err)
	}

	bids, err := decodeBatch(raw)
	if err != nil {
		return nil, fmt.Errorf("bid: decode batch: %w", err)
	}

	if g.cache != nil && len(bids) > 0 {
		g.cache.Add(key, append([]Bid(nil), bids...))
	}
	return bids, nil
}

// decodeBatch unmarshals entry by entry so one malformed element does not
// void the whole batch.
func decodeBatch(raw json.RawMessage) ([]Bid, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	out := make([]Bid, 0, len(entries))
	for _, e := range entries {
		var b Bid
		if err := json.Unmarshal(e, &b); err != nil {
			log.Printf("bid: dropping malformed entry: %v", err)
			continue
		}
		if !b.Valid() {
			log.Printf("bid: dropping structurally invalid entry for %q", b.AgentName)
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func buildPrompt(c types.RequestConstraints) string {
	roster, _ := json.Marshal(catalog.AllAgents())

	var b strings.Builder
	fmt.Fprintf(&b, "Act as the FeastBid OS. A user in Boston has the following request:\n")
	fmt.Fprintf(&b, "Duration: %s days\n", c.Duration)
	fmt.Fprintf(&b, "Quantity per order: %d\n", c.Quantity)
	fmt.Fprintf(&b, "Budget per item: $%g\n", c.BudgetCap)
	fmt.Fprintf(&b, "Dietary Tags: %s\n", strings.Join(c.DietaryTags, ", "))
	fmt.Fprintf(&b, "Item Preference: %s\n\n", c.ItemPref)
	b.WriteString("From the following agent list, select exactly 3 agents that best match the preference and budget.\n")
	b.WriteString("For each agent, generate a competitive bid.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("1. The 'bidPrice' must be the UNIT PRICE per item.\n")
	b.WriteString("2. Use real Boston-specific menu pricing (e.g., $14.95, $28.50).\n")
	b.WriteString("3. Factor in market price for seafood if applicable.\n")
	b.WriteString("4. The 'bidPrice' must be slightly lower than 'realPrice' to show value.\n")
	b.WriteString("5. If Duration is > 7 days, offer a subscription-style 'Offer'.\n")
	b.WriteString("6. Maintain the Brand Voice.\n")
	b.WriteString("7. Include a 4-step 'statusTimeline' specific to the restaurant's operations.\n")
	b.WriteString("8. Generate an 'expertTip' for the post-order delight.\n")
	b.WriteString("9. Generate a 'bonusOffer' (e.g., \"Free Side of Guac\", \"Extra Garlic Knots\", \"Double Points\") that the user can claim.\n\n")
	fmt.Fprintf(&b, "Agent Database: %s\n", roster)
	return b.String()
}

func cacheKey(c types.RequestConstraints) string {
	return fmt.Sprintf("%s|%g|%d|%s|%s",
		c.Duration, c.BudgetCap, c.Quantity, c.ItemPref, strings.Join(c.DietaryTags, ","))
}
