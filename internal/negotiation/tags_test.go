package negotiation

import "testing"

func TestParseDealTagsAllThree(t *testing.T) {
	upd, clean := ParseDealTags("[NEW_PRICE: 8.50] hi there [NEW_QUANTITY: 2] bye [NEW_OFFER: 2 for 1]")

	if upd.Price == nil || *upd.Price != 8.50 {
		t.Fatalf("Price = %v, want 8.50", upd.Price)
	}
	if upd.Quantity == nil || *upd.Quantity != 2 {
		t.Fatalf("Quantity = %v, want 2", upd.Quantity)
	}
	if upd.Offer == nil || *upd.Offer != "2 for 1" {
		t.Fatalf("Offer = %v, want %q", upd.Offer, "2 for 1")
	}
	if clean != "hi there  bye" {
		t.Fatalf("clean = %q, want %q", clean, "hi there  bye")
	}
}

func TestParseDealTagsAbsent(t *testing.T) {
	upd, clean := ParseDealTags("Best I can do, take it or leave it.")
	if !upd.Empty() {
		t.Fatalf("upd = %+v, want empty", upd)
	}
	if clean != "Best I can do, take it or leave it." {
		t.Fatalf("clean = %q, prose must survive untouched", clean)
	}
}

func TestParseDealTagsMidProse(t *testing.T) {
	upd, clean := ParseDealTags("Alright, alright. [NEW_PRICE: 11.00] You drive a hard bargain!")
	if upd.Price == nil || *upd.Price != 11.00 {
		t.Fatalf("Price = %v, want 11.00", upd.Price)
	}
	if upd.Quantity != nil || upd.Offer != nil {
		t.Fatalf("unexpected extra deltas: %+v", upd)
	}
	if clean != "Alright, alright.  You drive a hard bargain!" {
		t.Fatalf("clean = %q", clean)
	}
}

func TestParseDealTagsMalformedNumber(t *testing.T) {
	// A tag that fails the numeric pattern is neither adopted nor stripped as
	// a price tag by the capture regex; the strip regex still removes it.
	upd, clean := ParseDealTags("[NEW_PRICE: lots] sure thing")
	if upd.Price != nil {
		t.Fatalf("Price = %v, want nil for non-numeric tag", upd.Price)
	}
	if clean != "sure thing" {
		t.Fatalf("clean = %q, want tag stripped", clean)
	}
}

func TestParseDealTagsTalkingAboutTags(t *testing.T) {
	// Prose that mentions prices without the bracket syntax carries no deltas.
	upd, _ := ParseDealTags("The NEW_PRICE would be 8.50 if I could do it, but I can't.")
	if !upd.Empty() {
		t.Fatalf("upd = %+v, want empty for untagged prose", upd)
	}
}

func TestIsAddOnRequest(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"can you add fries to that?", true},
		{"throw in a drink and we have a deal", true},
		{"also want some garlic knots", true},
		{"add 2 more burgers", false},
		{"make it 5", false},
		{"I want 3x the order", false},
		{"quantity of 4 please", false},
		{"lower the price please", false},
	}
	for _, tc := range cases {
		if got := isAddOnRequest(tc.text); got != tc.want {
			t.Errorf("isAddOnRequest(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
