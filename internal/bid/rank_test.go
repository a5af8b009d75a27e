package bid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mkBid(name string, real, bid float64) Bid {
	return Bid{
		AgentName:      name,
		Neighborhood:   "Fenway",
		Offer:          "combo",
		RealPrice:      real,
		BidPrice:       bid,
		StatusTimeline: []string{"a", "b", "c", "d"},
	}
}

func TestRankBestSavings(t *testing.T) {
	bids := []Bid{
		mkBid("small-save", 10.00, 9.50),  // saves 0.50/unit
		mkBid("big-save", 20.00, 17.00),   // saves 3.00/unit
		mkBid("mid-save", 15.00, 13.50),   // saves 1.50/unit
	}

	out := Rank(bids, 2, SortBestSavings)
	require.Len(t, out, 3)
	require.Equal(t, "big-save", out[0].AgentName)
	require.Equal(t, "mid-save", out[1].AgentName)
	require.Equal(t, "small-save", out[2].AgentName)

	require.InDelta(t, 40.00, out[0].TotalWas, 1e-9)
	require.InDelta(t, 34.00, out[0].TotalPay, 1e-9)
	require.InDelta(t, 6.00, out[0].TotalSave, 1e-9)
}

func TestRankBestSavingsTieBreaksOnTotalPay(t *testing.T) {
	bids := []Bid{
		mkBid("pricier", 20.00, 18.00), // saves 2.00, pays 18.00
		mkBid("cheaper", 12.00, 10.00), // saves 2.00, pays 10.00
	}

	out := Rank(bids, 1, SortBestSavings)
	require.Equal(t, "cheaper", out[0].AgentName)
	require.Equal(t, "pricier", out[1].AgentName)
}

func TestRankLowestPrice(t *testing.T) {
	bids := []Bid{
		mkBid("expensive", 30.00, 24.95),
		mkBid("cheap", 14.50, 12.95),
		mkBid("middle", 19.00, 16.50),
	}

	out := Rank(bids, 1, SortLowestPrice)
	require.Equal(t, []string{"cheap", "middle", "expensive"},
		[]string{out[0].AgentName, out[1].AgentName, out[2].AgentName})
}

func TestRankDropsInvalidSilently(t *testing.T) {
	bids := []Bid{
		mkBid("ok", 10.00, 9.00),
		{AgentName: "", RealPrice: 10, BidPrice: 9},
		{AgentName: "free-lunch", RealPrice: 10, BidPrice: 0},
	}

	out := Rank(bids, 1, SortBestSavings)
	require.Len(t, out, 1)
	require.Equal(t, "ok", out[0].AgentName)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	bids := []Bid{
		mkBid("b", 10.00, 9.00),
		mkBid("a", 20.00, 15.00),
	}

	_ = Rank(bids, 1, SortBestSavings)
	require.Equal(t, "b", bids[0].AgentName)
	require.Equal(t, "a", bids[1].AgentName)
}

func TestRankUnknownModeFallsBackToBestSavings(t *testing.T) {
	bids := []Bid{
		mkBid("small", 10.00, 9.80),
		mkBid("big", 10.00, 8.00),
	}

	out := Rank(bids, 1, SortMode("bogus"))
	require.Equal(t, "big", out[0].AgentName)
}

func TestRankQuantityFloor(t *testing.T) {
	out := Rank([]Bid{mkBid("x", 10.00, 9.00)}, 0, SortBestSavings)
	require.InDelta(t, 9.00, out[0].TotalPay, 1e-9)
}
