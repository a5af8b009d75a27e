// Package guardrail classifies negotiation text against known prompt-injection
// and off-topic patterns, and checks agent replies for contract violations.
// Classification is advisory: the discount floor itself is enforced by the
// negotiation session, not here.
package guardrail

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

// injectionPatterns flag attempts to break the agent out of its role or
// extract its instructions.
var injectionPatterns = []*regexp.Regexp{
	// Instruction override attempts
	regexp.MustCompile(`(?i)ignore\s+(previous|all|your)\s+instructions?`),
	regexp.MustCompile(`(?i)forget\s+(that\s+)?you\s+are`),
	regexp.MustCompile(`(?i)disregard\s+(previous|all|your)\s+instructions?`),

	// Role hijacking
	regexp.MustCompile(`(?i)you\s+are\s+now\s+(a|an)\s+`),
	regexp.MustCompile(`(?i)act\s+as\s+(if\s+)?you\s+are`),
	regexp.MustCompile(`(?i)pretend\s+you\s+are`),
	regexp.MustCompile(`(?i)roleplay\s+as`),

	// System instruction manipulation
	regexp.MustCompile(`(?i)system\s*:`),
	regexp.MustCompile(`(?i)system\s+message\s*:`),
	regexp.MustCompile(`(?i)update\s+your\s+instructions?`),
	regexp.MustCompile(`(?i)change\s+your\s+instructions?`),

	// Information extraction
	regexp.MustCompile(`(?i)what\s+are\s+your\s+(system\s+)?instructions?`),
	regexp.MustCompile(`(?i)show\s+me\s+your\s+(system\s+)?instructions?`),
	regexp.MustCompile(`(?i)reveal\s+your\s+(system\s+)?instructions?`),
	regexp.MustCompile(`(?i)tell\s+me\s+your\s+(system\s+)?instructions?`),
	regexp.MustCompile(`(?i)what\s+is\s+your\s+prompt`),
	regexp.MustCompile(`(?i)show\s+me\s+your\s+prompt`),

	// Format manipulation
	regexp.MustCompile(`(?i)output\s+(in|as)\s+(json|xml|yaml|code|python|javascript)`),
	regexp.MustCompile(`(?i)respond\s+(in|as)\s+(json|xml|yaml|code|python|javascript)`),
	regexp.MustCompile(`(?i)format\s+(your\s+)?response\s+(in|as)\s+(json|xml|yaml|code)`),

	// Repetition attacks
	regexp.MustCompile(`(?i)repeat\s+after\s+me`),
	regexp.MustCompile(`(?i)say\s+(exactly|precisely)\s+(what|this)`),

	// Translation/manipulation requests
	regexp.MustCompile(`(?i)translate\s+this`),
	regexp.MustCompile(`(?i)convert\s+this`),

	// Character/identity change
	regexp.MustCompile(`(?i)forget\s+you\s*'?re\s+(a|an)\s+`),
	regexp.MustCompile(`(?i)you\s+are\s+no\s+longer`),
	regexp.MustCompile(`(?i)stop\s+being\s+(a|an)\s+`),

	// Discount-maximization probes
	regexp.MustCompile(`(?i)think\s+step\s+by\s+step\s+about\s+how\s+to\s+give\s+maximum`),
	regexp.MustCompile(`(?i)calculate\s+the\s+maximum\s+discount`),
	regexp.MustCompile(`(?i)give\s+me\s+the\s+maximum\s+discount`),

	// State extraction
	regexp.MustCompile(`(?i)show\s+me\s+your\s+internal\s+state`),
	regexp.MustCompile(`(?i)what\s+is\s+your\s+internal\s+state`),
	regexp.MustCompile(`(?i)output\s+your\s+state`),
}

// offTopicPatterns flag small talk that should be redirected, not answered.
var offTopicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)what('?s)?\s+the\s+weather`),
	regexp.MustCompile(`(?i)tell\s+me\s+a\s+joke`),
	regexp.MustCompile(`(?i)what('?s)?\s+2\s*\+\s*2`),
	regexp.MustCompile(`(?i)what\s+time\s+is\s+it`),
	regexp.MustCompile(`(?i)where\s+are\s+you\s+from`),
}

var (
	reLeakInstruction = regexp.MustCompile(`(?i)system\s+instruction`)
	reLeakMine        = regexp.MustCompile(`(?i)my\s+instructions?\s+are`)
	reLeakProgrammed  = regexp.MustCompile(`(?i)I\s+am\s+programmed`)
	reRoleChange      = regexp.MustCompile(`I\s+am\s+(now|actually)\s+(a|an)\s+`)
	reDiscount        = regexp.MustCompile(`(?i)(\d+)%\s*(off|discount)`)
	reBareJSON        = regexp.MustCompile(`(?s)^\{.*\}$`)
)

// InputReport is the classification of one user message.
type InputReport struct {
	Injection bool
	OffTopic  bool
}

// Flagged reports whether the message tripped any pattern set.
func (r InputReport) Flagged() bool { return r.Injection || r.OffTopic }

// ReplyReport is the validation result for one agent reply. Violations break
// the agent contract; warnings are suspicious but tolerated.
type ReplyReport struct {
	Violations []string
	Warnings   []string
}

// Valid reports whether the reply carried no hard violations.
func (r ReplyReport) Valid() bool { return len(r.Violations) == 0 }

// Filter is a configured classifier. Debug enables diagnostic logging of
// every hit; Enforce is consulted by callers to decide whether input
// injection blocks the turn.
type Filter struct {
	Debug   bool
	Enforce bool
}

func New(debug, enforce bool) *Filter {
	return &Filter{Debug: debug, Enforce: enforce}
}

// ClassifyInput tests a user message against the injection and off-topic
// pattern sets. Pure aside from optional diagnostic logging.
func (f *Filter) ClassifyInput(text string) InputReport {
	rep := InputReport{
		Injection: matchesAny(injectionPatterns, text),
		OffTopic:  matchesAny(offTopicPatterns, text),
	}
	if f != nil && f.Debug && rep.Flagged() {
		log.Printf("guardrail: user input flagged (injection=%v offTopic=%v): %q", rep.Injection, rep.OffTopic, clip(text, 120))
	}
	return rep
}

// ClassifyReply validates an agent reply against the negotiation contract.
// restaurant is the identity the agent must keep.
func (f *Filter) ClassifyReply(text, restaurant string) ReplyReport {
	var rep ReplyReport

	if reLeakInstruction.MatchString(text) || reLeakMine.MatchString(text) || reLeakProgrammed.MatchString(text) {
		rep.Violations = append(rep.Violations, "system instruction leakage detected")
	}

	if reRoleChange.MatchString(text) && !strings.Contains(strings.ToLower(text), strings.ToLower(restaurant)) {
		rep.Violations = append(rep.Violations, "role change detected")
	}

	if m := reDiscount.FindStringSubmatch(text); m != nil {
		if pct, err := strconv.Atoi(m[1]); err == nil && pct > 15 {
			rep.Warnings = append(rep.Warnings, "discount exceeds 15% limit: "+m[1]+"%")
		}
	}

	trimmed := strings.TrimSpace(text)
	if reBareJSON.MatchString(trimmed) &&
		!strings.Contains(text, "[NEW_PRICE") &&
		!strings.Contains(text, "[NEW_QUANTITY") &&
		!strings.Contains(text, "[NEW_OFFER") {
		rep.Warnings = append(rep.Warnings, "response appears to be in JSON format")
	}

	if matchesAny(offTopicPatterns, text) {
		rep.Warnings = append(rep.Warnings, "response contains off-topic content")
	}

	if f != nil && f.Debug && (len(rep.Violations) > 0 || len(rep.Warnings) > 0) {
		log.Printf("guardrail: agent reply flagged violations=%v warnings=%v", rep.Violations, rep.Warnings)
	}
	return rep
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
