// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/elga-energy/axiom/internal/domain"
)

// SessionUpdate describes a partial update to a candidate session.
// Nil fields are left untouched.
type SessionUpdate struct {
	Phase          *domain.Phase
	CurrentBloc    *int
	AxiomSynthesis *string
	MatchingResult *string
	Progress       *domain.ScriptProgress
	CompletedAt    *time.Time
}

// Repository defines the interface for persisting candidate sessions,
// conversation history, behavior events and recruiter notifications.
type Repository interface {
	// CreateSession persists a new candidate session.
	CreateSession(ctx context.Context, session *domain.Session) error

	// GetSession retrieves a session by its token.
	// Returns (nil, nil) when no session exists.
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// UpdateSession applies a partial update and returns the updated row.
	// Returns (nil, nil) when no session exists.
	UpdateSession(ctx context.Context, sessionID string, update SessionUpdate) (*domain.Session, error)

	// AppendMessage appends one conversation turn. Messages are never
	// mutated or deleted.
	AppendMessage(ctx context.Context, msg *domain.Message) error

	// GetHistory returns a session's messages in creation order.
	// An empty phase returns the full history.
	GetHistory(ctx context.Context, sessionID string, phase domain.Phase) ([]*domain.Message, error)

	// TrackEvent records a behavior event. Events are write-only.
	TrackEvent(ctx context.Context, event *domain.BehaviorEvent) error

	// CreateNotification records a recruiter notification and returns its id.
	CreateNotification(ctx context.Context, n *domain.RecruiterNotification) (int64, error)

	// UpdateNotificationStatus advances a notification's delivery status.
	UpdateNotificationStatus(ctx context.Context, id int64, status domain.NotificationStatus, errMsg string) error

	// Ping verifies connectivity to the backing store.
	Ping(ctx context.Context) error

	// Close releases store resources.
	Close() error
}
