package tracking

import (
	"context"
	"testing"

	"github.com/elga-energy/axiom/internal/domain"
	"github.com/elga-energy/axiom/internal/store"
)

func TestRecordEvent(t *testing.T) {
	repo := store.NewMemory()
	tracker := New(repo)

	tracker.Record(context.Background(), "s1", domain.EventMessageSent, map[string]any{"bloc": 3})

	events := repo.Events()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	e := events[0]
	if e.SessionID != "s1" || e.EventType != domain.EventMessageSent {
		t.Errorf("event = %+v", e)
	}
	if e.EventData != `{"bloc":3}` {
		t.Errorf("EventData = %q", e.EventData)
	}
}

func TestRecordDropsUnknownType(t *testing.T) {
	repo := store.NewMemory()
	tracker := New(repo)

	tracker.Record(context.Background(), "s1", domain.EventType("telemetry_dump"), nil)

	if len(repo.Events()) != 0 {
		t.Error("unknown event type should be dropped")
	}
}

func TestRecordWithoutData(t *testing.T) {
	repo := store.NewMemory()
	tracker := New(repo)

	tracker.Record(context.Background(), "s1", domain.EventPageLeft, nil)

	events := repo.Events()
	if len(events) != 1 || events[0].EventData != "" {
		t.Errorf("events = %+v", events)
	}
}
