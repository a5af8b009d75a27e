package types

import "testing"

func TestDurationMultiplier(t *testing.T) {
	cases := map[Duration]int{
		DurationSingle:    1,
		Duration7:         7,
		Duration14:        14,
		Duration30:        30,
		Duration("weird"): 1,
	}
	for d, want := range cases {
		if got := d.Multiplier(); got != want {
			t.Errorf("Multiplier(%q) = %d, want %d", d, got, want)
		}
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	c := RequestConstraints{Duration: "bogus", BudgetCap: -1, Quantity: 0}.Normalize()
	if c.Duration != DurationSingle || c.BudgetCap != 25 || c.Quantity != 1 {
		t.Fatalf("Normalize() = %+v", c)
	}
	if c.DietaryTags == nil {
		t.Fatalf("DietaryTags must never be nil")
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	in := RequestConstraints{
		Duration:    Duration14,
		BudgetCap:   40,
		DietaryTags: []string{"vegan"},
		ItemPref:    "poke",
		Quantity:    3,
	}
	if got := in.Normalize(); got.Duration != Duration14 || got.BudgetCap != 40 || got.Quantity != 3 {
		t.Fatalf("Normalize() = %+v, values must survive", got)
	}
}
