package domain

import (
	"time"
)

// EventType enumerates the behavior events the candidate UI can report.
type EventType string

const (
	EventPageView      EventType = "page_view"
	EventScroll        EventType = "scroll"
	EventMessageSent   EventType = "message_sent"
	EventBlocCompleted EventType = "bloc_completed"
	EventPageLeft      EventType = "page_left"
	EventTimeSpent     EventType = "time_spent"
)

// ValidEventType reports whether t is one of the known event types.
func ValidEventType(t EventType) bool {
	switch t {
	case EventPageView, EventScroll, EventMessageSent, EventBlocCompleted, EventPageLeft, EventTimeSpent:
		return true
	}
	return false
}

// BehaviorEvent is a write-only analytics record. The core never reads
// these back; storage failures must not affect the main response path.
type BehaviorEvent struct {
	SessionID string    `json:"sessionId"`
	EventType EventType `json:"eventType"`
	EventData string    `json:"eventData,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
