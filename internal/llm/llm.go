// Package llm abstracts the hosted text-completion service. Two call shapes
// exist: schema-constrained JSON generation (bid batches) and single-turn
// chat with a system instruction (negotiation turns).
package llm

import (
	"context"
	"encoding/json"
	"errors"

	genai "google.golang.org/genai"
)

var (
	ErrInvalidJSON = errors.New("llm: invalid JSON from model")
	ErrEmptyReply  = errors.New("llm: empty reply from model")

	// ErrMissingCredential is returned by the disabled client when no API key
	// was configured. The text doubles as the user-facing remediation hint.
	ErrMissingCredential = errors.New("llm: GEMINI_API_KEY is not set; add it to .env.local or export it before starting the server")
)

// Client is the text-completion surface the rest of the system depends on.
type Client interface {
	Name() string
	// GenerateJSON sends prompt and asks for application/json constrained by
	// schema (nil means unconstrained JSON).
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (json.RawMessage, error)
	// Chat sends one user message under a system instruction and returns the
	// reply text. No prior turns are replayed; callers restate context in the
	// instruction.
	Chat(ctx context.Context, system, message string) (string, error)
	Close() error
}

// Disabled is a Client whose every call fails with ErrMissingCredential.
// Wiring it keeps the screen flow alive when no key is configured: attempts
// surface the remediation error instead of crashing at startup.
type Disabled struct{}

func (Disabled) Name() string { return "disabled" }
func (Disabled) GenerateJSON(context.Context, string, *genai.Schema) (json.RawMessage, error) {
	return nil, ErrMissingCredential
}
func (Disabled) Chat(context.Context, string, string) (string, error) {
	return "", ErrMissingCredential
}
func (Disabled) Close() error { return nil }
