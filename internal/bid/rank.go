package bid

import "sort"

// SortMode selects the display ordering of a bid list.
type SortMode string

const (
	SortBestSavings SortMode = "best-savings"
	SortLowestPrice SortMode = "lowest-price"
)

// Enriched is a bid plus the order totals derived for a given quantity.
type Enriched struct {
	Bid
	TotalWas  float64 `json:"totalWas"`
	TotalPay  float64 `json:"totalPay"`
	TotalSave float64 `json:"totalSave"`
}

// Rank derives order totals for each bid and returns them sorted for display.
// Structurally invalid bids are dropped silently. The input slice is never
// mutated; ordering is derived state, not persisted.
//
// best-savings (the default for unknown modes) sorts by TotalSave descending
// with ties broken by ascending TotalPay; lowest-price sorts by TotalPay
// ascending. Both keep input order as the final tie-break.
func Rank(bids []Bid, quantity int, mode SortMode) []Enriched {
	if quantity < 1 {
		quantity = 1
	}
	q := float64(quantity)

	out := make([]Enriched, 0, len(bids))
	for _, b := range bids {
		if !b.Valid() {
			continue
		}
		totalWas := b.RealPrice * q
		totalPay := b.BidPrice * q
		out = append(out, Enriched{
			Bid:       b,
			TotalWas:  totalWas,
			TotalPay:  totalPay,
			TotalSave: totalWas - totalPay,
		})
	}

	switch mode {
	case SortLowestPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].TotalPay < out[j].TotalPay
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].TotalSave != out[j].TotalSave {
				return out[i].TotalSave > out[j].TotalSave
			}
			return out[i].TotalPay < out[j].TotalPay
		})
	}
	return out
}
