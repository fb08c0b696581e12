package domain

import (
	"time"
)

// Role identifies the author of a conversation message.
// Persisted history only ever contains user and assistant turns; system
// directives are assembled at prompt-build time and never stored.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one append-only conversation turn, scoped to a session and
// ordered by creation time.
type Message struct {
	SessionID string    `json:"sessionId"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	// Bloc is the bloc active when the message was produced.
	// 0 marks the pre-interview welcome message.
	Bloc      int       `json:"bloc"`
	Phase     Phase     `json:"phase"`
	CreatedAt time.Time `json:"createdAt"`
}
