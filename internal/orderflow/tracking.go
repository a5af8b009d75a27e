package orderflow

import (
	"hash/fnv"
	"time"
)

// Delivery progress is simulated: one milestone every progressStep since the
// order was placed, with a fake ETA that counts down to a floor. The original
// client ran these timers in the browser; here they are derived from the
// order's age so every snapshot agrees.
const (
	progressStep  = 10 * time.Second
	etaFloorMin   = 5
	etaBaseMin    = 18
	etaJitterSpan = 12
)

// TrackingSnapshot is the derived delivery state of one order at a moment in
// time. StatusIndex is 1-based into StatusTimeline.
type TrackingSnapshot struct {
	OrderID        string   `json:"orderId"`
	StatusTimeline []string `json:"statusTimeline"`
	StatusIndex    int      `json:"statusIndex"`
	ETAMinutes     int      `json:"etaMinutes"`
}

// Track derives the tracking snapshot for an order at time now.
func Track(o Order, now time.Time) TrackingSnapshot {
	steps := int(now.Sub(o.CreatedAt) / progressStep)
	if steps < 0 {
		steps = 0
	}

	maxIndex := len(o.Bid.StatusTimeline)
	if maxIndex == 0 {
		maxIndex = 1
	}
	index := 1 + steps
	if index > maxIndex {
		index = maxIndex
	}

	// Deterministic per-order ETA start so repeated snapshots agree.
	eta := etaBaseMin + int(hashID(o.ID)%etaJitterSpan) - steps
	if eta < etaFloorMin {
		eta = etaFloorMin
	}

	return TrackingSnapshot{
		OrderID:        o.ID,
		StatusTimeline: append([]string(nil), o.Bid.StatusTimeline...),
		StatusIndex:    index,
		ETAMinutes:     eta,
	}
}

func hashID(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}
