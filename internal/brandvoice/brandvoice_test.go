package brandvoice

import (
	"strings"
	"testing"
)

func TestResolveRulePriority(t *testing.T) {
	cases := []struct {
		label     string
		formality string
		tone      string
	}{
		{"Classy & Classic", FormalityFormal, "Formal"},
		{"Elite Tier", FormalityPremium, "Premium"},
		{"chill premium vibes", FormalityCasual, "Relaxed but premium"},
		{"Ballpark Energy", FormalityCasual, "High-energy"},
		{"OG Boston Pizzeria", FormalityCasual, "Authentic"},
		{"Macro Focused", FormalityCasual, "Clean, direct"},
		{"Something Unrecognized", FormalityCasual, "ZAPPY"},
	}
	for _, tc := range cases {
		p := Resolve(tc.label)
		if p.Formality != tc.formality {
			t.Errorf("Resolve(%q).Formality = %q, want %q", tc.label, p.Formality, tc.formality)
		}
		if !strings.HasPrefix(p.Tone, tc.tone) {
			t.Errorf("Resolve(%q).Tone = %q, want prefix %q", tc.label, p.Tone, tc.tone)
		}
	}
}

func TestResolveFastMassiveShadowedByEnergyRule(t *testing.T) {
	// "fast" alone matches the high-energy rule, which sits before the
	// fast & massive rule, so the combined label resolves to high-energy.
	p := Resolve("Fast & Massive")
	if !strings.HasPrefix(p.Tone, "High-energy") {
		t.Fatalf("Resolve(Fast & Massive).Tone = %q, want the high-energy rule", p.Tone)
	}
}

func TestResolvePremiumBeatsChillPremium(t *testing.T) {
	// "premium" hits the elite rule before the chill+premium rule can fire.
	p := Resolve("premium but chill")
	if p.Formality != FormalityPremium {
		t.Fatalf("Resolve(premium but chill).Formality = %q, want %q", p.Formality, FormalityPremium)
	}
}

func TestInstructionsBlock(t *testing.T) {
	got := Instructions("Classy & Classic", "Legal Sea Foods")
	for _, want := range []string{
		"BRAND VOICE GUIDELINES - STRICTLY FOLLOW THESE:",
		"- Tone: Formal, professional",
		"- Formality Level: formal",
		"You are Legal Sea Foods",
		"- NEVER use: hook you up",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Instructions missing %q in:\n%s", want, got)
		}
	}
}
