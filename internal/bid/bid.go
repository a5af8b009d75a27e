// Package bid defines the restaurant bid model, batch generation through the
// text-completion service, and display ranking.
package bid

// Bid is one restaurant's offer for the user's request. Bids are immutable
// after generation; a negotiation that revises price or offer produces a new
// value via Revised.
type Bid struct {
	AgentName      string   `json:"agentName"`
	Neighborhood   string   `json:"neighborhood"`
	Offer          string   `json:"offer"`
	Moat           string   `json:"moat"`
	RealPrice      float64  `json:"realPrice"`
	BidPrice       float64  `json:"bidPrice"`
	DietaryCheck   string   `json:"dietaryCheck"`
	BrandVoice     string   `json:"brandVoice"`
	StatusTimeline []string `json:"statusTimeline"`
	ExpertTip      string   `json:"expertTip"`
	BonusOffer     string   `json:"bonusOffer"`
}

// Valid reports whether the bid is structurally usable: invalid entries are
// dropped before ranking, never surfaced as errors.
func (b Bid) Valid() bool {
	return b.AgentName != "" && b.RealPrice > 0 && b.BidPrice > 0
}

// Revised returns a copy with the negotiated unit price and offer applied.
func (b Bid) Revised(unitPrice float64, offer string) Bid {
	out := b
	out.BidPrice = unitPrice
	out.Offer = offer
	return out
}
