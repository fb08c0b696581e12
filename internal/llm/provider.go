// Package llm abstracts the completion provider behind a small interface
// with a real OpenAI-backed implementation and a deterministic mock.
package llm

import (
	"context"
)

// Role is the message sender role in a completion request.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a completion request.
type Message struct {
	Role    Role
	Content string
}

// Provider generates one completion for an ordered message list.
// Implementations classify failures into the typed errors of this package
// so callers can surface a human-readable cause.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
