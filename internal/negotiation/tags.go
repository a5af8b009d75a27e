package negotiation

import (
	"regexp"
	"strconv"
	"strings"
)

// The bracket-tag micro-format is the integration contract between free-text
// generation and structured deal state. Tags may appear anywhere in the
// prose, in any subset; extraction is tolerant by design because the model
// wraps them in conversational text.
var (
	rePriceTag = regexp.MustCompile(`\[NEW_PRICE:\s*([\d.]+)\]`)
	reQtyTag   = regexp.MustCompile(`\[NEW_QUANTITY:\s*(\d+)\]`)
	reOfferTag = regexp.MustCompile(`\[NEW_OFFER:\s*(.+?)\]`)

	rePriceStrip = regexp.MustCompile(`\[NEW_PRICE:.*?\]`)
	reQtyStrip   = regexp.MustCompile(`\[NEW_QUANTITY:.*?\]`)
	reOfferStrip = regexp.MustCompile(`\[NEW_OFFER:.*?\]`)
)

// DealUpdate carries the optional deltas parsed from one agent reply. Nil
// fields mean "no change this turn".
type DealUpdate struct {
	Price    *float64
	Quantity *int
	Offer    *string
}

// Empty reports whether the reply carried no tags at all.
func (u DealUpdate) Empty() bool {
	return u.Price == nil && u.Quantity == nil && u.Offer == nil
}

// ParseDealTags extracts the deal deltas from a model reply and returns them
// with the display text: all tags removed, surrounding prose preserved, outer
// whitespace trimmed.
func ParseDealTags(text string) (DealUpdate, string) {
	var upd DealUpdate

	if m := rePriceTag.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			upd.Price = &v
		}
	}
	if m := reQtyTag.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			upd.Quantity = &v
		}
	}
	if m := reOfferTag.FindStringSubmatch(text); m != nil {
		v := m[1]
		upd.Offer = &v
	}

	clean := rePriceStrip.ReplaceAllString(text, "")
	clean = reQtyStrip.ReplaceAllString(clean, "")
	clean = reOfferStrip.ReplaceAllString(clean, "")
	return upd, strings.TrimSpace(clean)
}

var (
	reAddWord     = regexp.MustCompile(`(?i)\b(add|include|also want|throw\s+in|toss\s+in)\b`)
	reExplicitQty = regexp.MustCompile(`(?i)\b\d+\s+more\b|\b\d+\s*(x|times)\b|\bmake\s+it\s+\d+\b|\bquantity\s+(of\s+)?\d+\b`)
)

// isAddOnRequest judges whether the user asked for an add-on (extra fries,
// a side) rather than a genuine quantity change. Addition words without an
// explicit "N more"/"make it N" pattern suppress quantity adoption so a
// model-proposed [NEW_QUANTITY] tag does not inflate the main item count.
func isAddOnRequest(userMessage string) bool {
	return reAddWord.MatchString(userMessage) && !reExplicitQty.MatchString(userMessage)
}
