// Package tracking records candidate behavior events as a fire-and-forget
// side channel. Failures are logged and swallowed; the main response path
// never depends on this package succeeding.
package tracking

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/elga-energy/axiom/internal/domain"
	"github.com/elga-energy/axiom/internal/store"
)

// Tracker writes behavior events to the repository.
type Tracker struct {
	repo store.Repository
}

// New creates a Tracker over repo.
func New(repo store.Repository) *Tracker {
	return &Tracker{repo: repo}
}

// Record persists one behavior event. Unknown event types are dropped.
// Session existence is deliberately not validated: events may arrive for
// sessions this process has never seen.
func (t *Tracker) Record(ctx context.Context, sessionID string, eventType domain.EventType, data map[string]any) {
	if !domain.ValidEventType(eventType) {
		slog.Warn("dropping unknown behavior event type", "event_type", eventType)
		return
	}

	eventData := ""
	if len(data) > 0 {
		encoded, err := json.Marshal(data)
		if err != nil {
			slog.Warn("failed to encode behavior event data", "error", err)
		} else {
			eventData = string(encoded)
		}
	}

	err := t.repo.TrackEvent(ctx, &domain.BehaviorEvent{
		SessionID: sessionID,
		EventType: eventType,
		EventData: eventData,
		Timestamp: time.Now(),
	})
	if err != nil {
		slog.Warn("failed to record behavior event", "session_id", sessionID, "event_type", eventType, "error", err)
	}
}
