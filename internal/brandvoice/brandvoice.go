// Package brandvoice maps a free-text brand voice label to the tone policy
// injected into the negotiation system instruction. Rules are ordered; the
// first match wins, so overlapping keywords resolve by position.
package brandvoice

import "strings"

// Formality tiers.
const (
	FormalityFormal  = "formal"
	FormalityCasual  = "casual"
	FormalityPremium = "premium"
)

// Policy describes how an agent should sound.
type Policy struct {
	Tone         string
	EmojiUsage   string
	Phrases      []string
	AvoidPhrases []string
	Formality    string
}

type rule struct {
	match  func(voice string) bool
	policy Policy
}

func anyOf(words ...string) func(string) bool {
	return func(voice string) bool {
		for _, w := range words {
			if strings.Contains(voice, w) {
				return true
			}
		}
		return false
	}
}

func allOf(words ...string) func(string) bool {
	return func(voice string) bool {
		for _, w := range words {
			if !strings.Contains(voice, w) {
				return false
			}
		}
		return true
	}
}

// Rule order preserves the original resolution priority; "fast & massive" is
// listed after the high-energy rule that also matches "fast", so the earlier
// rule shadows it for labels containing both.
var rules = []rule{
	{
		// Classy & Classic
		match: anyOf("classy", "classic", "elegant"),
		policy: Policy{
			Tone:         "Formal, professional, and sophisticated. Use refined language.",
			EmojiUsage:   "Minimal emojis (0-1 per message). Use sparingly and only when appropriate.",
			Phrases:      []string{"We would be delighted to", "I can offer you", "That would be", "Certainly", "Absolutely"},
			AvoidPhrases: []string{"hook you up", "bet", "let's do this", "deal!", "you got it"},
			Formality:    FormalityFormal,
		},
	},
	{
		// Elite Tier
		match: anyOf("elite", "premium", "tier"),
		policy: Policy{
			Tone:         "Premium, sophisticated, and refined. No casual language whatsoever.",
			EmojiUsage:   "No emojis. Maintain premium, text-only communication.",
			Phrases:      []string{"We are pleased to offer", "I can provide you with", "That would be available at", "Certainly, we can accommodate", "We would be honored to"},
			AvoidPhrases: []string{"hook you up", "bet", "let's do this", "deal!", "you got it", "awesome", "cool"},
			Formality:    FormalityPremium,
		},
	},
	{
		// Chill premium custom
		match: allOf("chill", "premium"),
		policy: Policy{
			Tone:         "Relaxed but premium. Friendly and approachable, yet sophisticated.",
			EmojiUsage:   "1-2 emojis per message. Use tastefully.",
			Phrases:      []string{"I can help you with", "That sounds great", "We can do that", "Perfect", "Absolutely"},
			AvoidPhrases: []string{"hook you up", "bet", "let's do this", "deal!"},
			Formality:    FormalityCasual,
		},
	},
	{
		// Ballpark energy / hype fast
		match: anyOf("ballpark", "energy", "hype", "fast"),
		policy: Policy{
			Tone:         "High-energy, enthusiastic, and casual. Use Gen Z/Millennial language.",
			EmojiUsage:   "1-2 emojis per message. Use enthusiastically.",
			Phrases:      []string{"Bet!", "Let's do this!", "You got it!", "Deal!", "Hook you up", "Locked in"},
			AvoidPhrases: []string{"We would be delighted", "Certainly", "We are pleased"},
			Formality:    FormalityCasual,
		},
	},
	{
		// OG Boston / authentic
		match: anyOf("og", "boston", "authentic"),
		policy: Policy{
			Tone:         "Authentic, casual, and genuine. Use local, down-to-earth language.",
			EmojiUsage:   "1-2 emojis per message. Use naturally.",
			Phrases:      []string{"Absolutely", "You got it", "Let's do it", "Sounds good", "Perfect"},
			AvoidPhrases: []string{"We would be delighted", "hook you up", "bet"},
			Formality:    FormalityCasual,
		},
	},
	{
		// Macro-focused clean
		match: anyOf("macro", "clean", "focused"),
		policy: Policy{
			Tone:         "Clean, direct, and health-focused. Professional but approachable.",
			EmojiUsage:   "Minimal emojis (0-1 per message). Use food-related emojis only.",
			Phrases:      []string{"I can help you with", "That works", "Perfect", "Absolutely", "We can do that"},
			AvoidPhrases: []string{"hook you up", "bet", "let's do this", "deal!"},
			Formality:    FormalityCasual,
		},
	},
	{
		// Fast & massive
		match: allOf("fast", "massive"),
		policy: Policy{
			Tone:         "Fast-paced, energetic, and efficient. High-volume focused.",
			EmojiUsage:   "1-2 emojis per message. Use enthusiastically.",
			Phrases:      []string{"Let's do this!", "You got it!", "Locked in", "Perfect", "Absolutely"},
			AvoidPhrases: []string{"We would be delighted", "Certainly", "We are pleased"},
			Formality:    FormalityCasual,
		},
	},
}

var defaultPolicy = Policy{
	Tone:         "ZAPPY, high-energy, and casual. Use Gen Z/Millennial language.",
	EmojiUsage:   "1-2 emojis per message. Use enthusiastically.",
	Phrases:      []string{"Bet!", "Let's do this!", "You got it!", "Deal!", "Hook you up", "Locked in"},
	AvoidPhrases: []string{"We would be delighted", "Certainly", "We are pleased"},
	Formality:    FormalityCasual,
}

// Resolve returns the tone policy for a brand voice label.
func Resolve(label string) Policy {
	voice := strings.ToLower(label)
	for _, r := range rules {
		if r.match(voice) {
			return r.policy
		}
	}
	return defaultPolicy
}

// Instructions renders the policy as the BRAND VOICE block of the system
// instruction. The output is injected verbatim into the model prompt.
func Instructions(label, restaurant string) string {
	p := Resolve(label)
	var b strings.Builder
	b.WriteString("BRAND VOICE GUIDELINES - STRICTLY FOLLOW THESE:\n")
	b.WriteString("- Tone: " + p.Tone + "\n")
	b.WriteString("- Emoji Usage: " + p.EmojiUsage + "\n")
	b.WriteString("- Use phrases like: " + strings.Join(p.Phrases, ", ") + "\n")
	b.WriteString("- NEVER use: " + strings.Join(p.AvoidPhrases, ", ") + "\n")
	b.WriteString("- Formality Level: " + p.Formality + "\n")
	b.WriteString("- You are " + restaurant + " - maintain this brand voice consistently throughout the conversation.\n")
	return b.String()
}
