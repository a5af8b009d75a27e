package types

// Duration is the requested order cadence: a one-off order or a 7/14/30 day
// recurring plan.
type Duration string

const (
	DurationSingle Duration = "single"
	Duration7      Duration = "7"
	Duration14     Duration = "14"
	Duration30     Duration = "30"
)

// Multiplier returns the number of deliveries the duration implies.
func (d Duration) Multiplier() int {
	switch d {
	case Duration7:
		return 7
	case Duration14:
		return 14
	case Duration30:
		return 30
	default:
		return 1
	}
}

// Valid reports whether d is one of the four supported duration codes.
func (d Duration) Valid() bool {
	switch d {
	case DurationSingle, Duration7, Duration14, Duration30:
		return true
	}
	return false
}

// RequestConstraints captures what the user asked for on the request form.
// The order flow controller owns the canonical copy; everyone else works on
// value copies.
type RequestConstraints struct {
	Duration    Duration `json:"duration"`
	BudgetCap   float64  `json:"budgetCap"`
	DietaryTags []string `json:"dietaryTags"`
	ItemPref    string   `json:"itemPref"`
	Quantity    int      `json:"quantity"`
	Location    string   `json:"location,omitempty"`
}

// DefaultConstraints returns the form defaults used on first load and after
// an inspiration pick.
func DefaultConstraints() RequestConstraints {
	return RequestConstraints{
		Duration:    DurationSingle,
		BudgetCap:   25,
		DietaryTags: []string{},
		ItemPref:    "",
		Quantity:    1,
	}
}

// Normalize fills zero values with defaults so a partially filled form still
// yields a usable request.
func (c RequestConstraints) Normalize() RequestConstraints {
	out := c
	if !out.Duration.Valid() {
		out.Duration = DurationSingle
	}
	if out.BudgetCap <= 0 {
		out.BudgetCap = 25
	}
	if out.Quantity < 1 {
		out.Quantity = 1
	}
	if out.DietaryTags == nil {
		out.DietaryTags = []string{}
	}
	return out
}
