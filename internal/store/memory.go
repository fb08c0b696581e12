package store

import (
	"context"
	"sync"
	"time"

	"github.com/elga-energy/axiom/internal/domain"
)

// MemoryStore implements Repository with process-lifetime maps.
// It backs local development and tests when no DB_PATH is configured;
// a deployment uses either this or SQLite, never both.
type MemoryStore struct {
	mu            sync.RWMutex
	sessions      map[string]*domain.Session
	messages      map[string][]*domain.Message
	events        []*domain.BehaviorEvent
	notifications []*domain.RecruiterNotification
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
		messages: make(map[string][]*domain.Message),
	}
}

// CreateSession persists a new candidate session.
func (s *MemoryStore) CreateSession(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *session
	s.sessions[session.SessionID] = &cp
	return nil
}

// GetSession retrieves a session by its token.
func (s *MemoryStore) GetSession(_ context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

// UpdateSession applies a partial update and returns the updated row.
func (s *MemoryStore) UpdateSession(_ context.Context, sessionID string, update SessionUpdate) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}

	if update.Phase != nil {
		session.Phase = *update.Phase
	}
	if update.CurrentBloc != nil {
		session.CurrentBloc = *update.CurrentBloc
	}
	if update.AxiomSynthesis != nil {
		session.AxiomSynthesis = *update.AxiomSynthesis
	}
	if update.MatchingResult != nil {
		session.MatchingResult = *update.MatchingResult
	}
	if update.Progress != nil {
		session.Progress = update.Progress
	}
	if update.CompletedAt != nil {
		session.CompletedAt = update.CompletedAt
	}
	session.UpdatedAt = time.Now()

	cp := *session
	return &cp, nil
}

// AppendMessage appends one conversation turn.
func (s *MemoryStore) AppendMessage(_ context.Context, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *msg
	s.messages[msg.SessionID] = append(s.messages[msg.SessionID], &cp)
	return nil
}

// GetHistory returns a session's messages in creation order.
func (s *MemoryStore) GetHistory(_ context.Context, sessionID string, phase domain.Phase) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Message
	for _, msg := range s.messages[sessionID] {
		if phase != "" && msg.Phase != phase {
			continue
		}
		cp := *msg
		result = append(result, &cp)
	}
	return result, nil
}

// TrackEvent records a behavior event.
func (s *MemoryStore) TrackEvent(_ context.Context, event *domain.BehaviorEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *event
	s.events = append(s.events, &cp)
	return nil
}

// Events returns all recorded behavior events. Test helper.
func (s *MemoryStore) Events() []*domain.BehaviorEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.BehaviorEvent, len(s.events))
	copy(result, s.events)
	return result
}

// CreateNotification records a recruiter notification.
func (s *MemoryStore) CreateNotification(_ context.Context, n *domain.RecruiterNotification) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *n
	cp.ID = int64(len(s.notifications) + 1)
	s.notifications = append(s.notifications, &cp)
	return cp.ID, nil
}

// UpdateNotificationStatus advances a notification's delivery status.
func (s *MemoryStore) UpdateNotificationStatus(_ context.Context, id int64, status domain.NotificationStatus, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.ID == id {
			n.Status = status
			n.ErrorMessage = errMsg
			return nil
		}
	}
	return nil
}

// Notifications returns all recorded notifications. Test helper.
func (s *MemoryStore) Notifications() []*domain.RecruiterNotification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.RecruiterNotification, len(s.notifications))
	copy(result, s.notifications)
	return result
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
