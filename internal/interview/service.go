package interview

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/elga-energy/axiom/internal/domain"
	"github.com/elga-energy/axiom/internal/llm"
	"github.com/elga-energy/axiom/internal/notify"
	"github.com/elga-energy/axiom/internal/script"
	"github.com/elga-energy/axiom/internal/store"
	"github.com/elga-energy/axiom/internal/tracking"
)

const (
	defaultLLMTimeout = 60 * time.Second

	// emptyReplyFallback is stored when the provider returns no content.
	emptyReplyFallback = "Je n'ai pas pu générer une réponse."
)

// Service is the phase orchestrator: it owns session and message writes
// for the lifetime of an interview and drives the axiom -> matching ->
// completed progression.
type Service struct {
	repo       store.Repository
	provider   llm.Provider
	tracker    *tracking.Tracker
	notifier   *notify.Notifier
	llmTimeout time.Duration
	locks      *sessionLocks
}

// NewService creates the orchestrator. A zero llmTimeout selects the
// default provider timeout.
func NewService(repo store.Repository, provider llm.Provider, tracker *tracking.Tracker, notifier *notify.Notifier, llmTimeout time.Duration) *Service {
	if llmTimeout <= 0 {
		llmTimeout = defaultLLMTimeout
	}
	return &Service{
		repo:       repo,
		provider:   provider,
		tracker:    tracker,
		notifier:   notifier,
		llmTimeout: llmTimeout,
		locks:      newSessionLocks(),
	}
}

// InitResult is the outcome of session creation.
type InitResult struct {
	SessionID      string `json:"sessionId"`
	InitialMessage string `json:"initialMessage"`
}

// HistoryEntry is one conversation turn as exposed to the caller.
type HistoryEntry struct {
	Role    domain.Role `json:"role"`
	Content string      `json:"content"`
}

// SessionView is a session together with its interview-phase history.
type SessionView struct {
	Session *domain.Session `json:"session"`
	History []HistoryEntry  `json:"history"`
}

// SendResult is the assistant's reply to one user turn.
type SendResult struct {
	Message     string `json:"message"`
	CurrentBloc int    `json:"currentBloc"`
}

// CompletionResult carries the synthesis and matching verdict produced at
// interview completion.
type CompletionResult struct {
	Synthesis      string       `json:"synthesis"`
	MatchingResult string       `json:"matchingResult"`
	Phase          domain.Phase `json:"phase"`
}

// NextBlocResult is the outcome of advancing to the next bloc. When the
// interview overflowed the last bloc, Completion is set instead of the
// bloc fields.
type NextBlocResult struct {
	BlocNum     int               `json:"blocNum,omitempty"`
	BlocMessage string            `json:"blocMessage,omitempty"`
	Completion  *CompletionResult `json:"completion,omitempty"`
}

// InitSession validates the candidate identity, creates the session and
// appends the fixed welcome message.
func (s *Service) InitSession(ctx context.Context, email, name string) (*InitResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, &ValidationError{Field: "email", Reason: "not a valid address"}
	}

	sessionID, err := newSessionToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		SessionID:   sessionID,
		Email:       email,
		Name:        strings.TrimSpace(name),
		Phase:       domain.PhaseAxiom,
		CurrentBloc: 1,
		Progress:    domain.NewScriptProgress(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.appendMessage(ctx, sessionID, domain.RoleAssistant, script.InitialMessage, 0, domain.PhaseAxiom); err != nil {
		return nil, err
	}

	s.tracker.Record(ctx, sessionID, domain.EventPageView, map[string]any{"action": "session_started"})

	slog.Info("session created", "session_id", sessionID, "email", email)

	return &InitResult{
		SessionID:      sessionID,
		InitialMessage: script.InitialMessage,
	}, nil
}

// GetSession returns the session and its interview-phase history.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.GetHistory(ctx, sessionID, domain.PhaseAxiom)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	entries := make([]HistoryEntry, len(history))
	for i, msg := range history {
		entries[i] = HistoryEntry{Role: msg.Role, Content: msg.Content}
	}

	return &SessionView{Session: session, History: entries}, nil
}

// SendMessage appends the user turn, asks the progression engine for the
// reply, and appends it. Provider failures always surface to the caller.
func (s *Service) SendMessage(ctx context.Context, sessionID, message string) (*SendResult, error) {
	release := s.locks.acquire(sessionID)
	defer release()

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.appendMessage(ctx, sessionID, domain.RoleUser, message, session.CurrentBloc, domain.PhaseAxiom); err != nil {
		return nil, err
	}

	s.tracker.Record(ctx, sessionID, domain.EventMessageSent, map[string]any{"bloc": session.CurrentBloc})

	history, err := s.repo.GetHistory(ctx, sessionID, domain.PhaseAxiom)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	decision := Decide(session, history)

	reply := decision.Scripted
	if reply == "" {
		reply, err = s.complete(ctx, decision.Prompt)
		if err != nil {
			return nil, err
		}
	}

	if err := s.appendMessage(ctx, sessionID, domain.RoleAssistant, reply, session.CurrentBloc, domain.PhaseAxiom); err != nil {
		return nil, err
	}

	if decision.Progress != nil {
		if _, err := s.repo.UpdateSession(ctx, sessionID, store.SessionUpdate{Progress: decision.Progress}); err != nil {
			return nil, fmt.Errorf("update script progress: %w", err)
		}
	}

	return &SendResult{Message: reply, CurrentBloc: session.CurrentBloc}, nil
}

// NextBloc advances to the next bloc, or triggers synthesis and matching
// when the last bloc is done.
func (s *Service) NextBloc(ctx context.Context, sessionID string) (*NextBlocResult, error) {
	release := s.locks.acquire(sessionID)
	defer release()

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next := session.CurrentBloc + 1
	if next > domain.TotalBlocs {
		completion, err := s.completeInterview(ctx, session)
		if err != nil {
			return nil, err
		}
		return &NextBlocResult{Completion: completion}, nil
	}

	s.tracker.Record(ctx, sessionID, domain.EventBlocCompleted, map[string]any{"bloc": session.CurrentBloc})

	if _, err := s.repo.UpdateSession(ctx, sessionID, store.SessionUpdate{CurrentBloc: &next}); err != nil {
		return nil, fmt.Errorf("update current bloc: %w", err)
	}

	intro := script.IntroMessage(next)
	if err := s.appendMessage(ctx, sessionID, domain.RoleAssistant, intro, next, domain.PhaseAxiom); err != nil {
		return nil, err
	}

	slog.Info("bloc advanced", "session_id", sessionID, "bloc", next)

	return &NextBlocResult{BlocNum: next, BlocMessage: intro}, nil
}

// GenerateSynthesis unconditionally runs the synthesis and matching
// routine, regenerating and overwriting any previous result.
func (s *Service) GenerateSynthesis(ctx context.Context, sessionID string) (*CompletionResult, error) {
	release := s.locks.acquire(sessionID)
	defer release()

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return s.completeInterview(ctx, session)
}

// GetMatchingResult returns the matching verdict once it exists.
func (s *Service) GetMatchingResult(ctx context.Context, sessionID string) (string, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	if session == nil || session.MatchingResult == "" {
		return "", ErrMatchingNotFound
	}
	return session.MatchingResult, nil
}

// SendFeedback appends a tagged candidate message in the matching phase.
func (s *Service) SendFeedback(ctx context.Context, sessionID, feedback string) error {
	release := s.locks.acquire(sessionID)
	defer release()

	if _, err := s.getSession(ctx, sessionID); err != nil {
		return err
	}

	return s.appendMessage(ctx, sessionID, domain.RoleUser, "[FEEDBACK] "+feedback, 0, domain.PhaseMatching)
}

// completeInterview generates the synthesis, then the matching verdict,
// advancing the phase after each step. The recruiter notification at the
// end is best-effort and never fails the operation.
func (s *Service) completeInterview(ctx context.Context, session *domain.Session) (*CompletionResult, error) {
	history, err := s.repo.GetHistory(ctx, session.SessionID, domain.PhaseAxiom)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	prompt := make([]llm.Message, 0, len(history)+2)
	prompt = append(prompt, llm.Message{Role: llm.RoleSystem, Content: script.SystemPrompt})
	for _, msg := range history {
		role := llm.RoleUser
		if msg.Role == domain.RoleAssistant {
			role = llm.RoleAssistant
		}
		prompt = append(prompt, llm.Message{Role: role, Content: msg.Content})
	}
	prompt = append(prompt, llm.Message{Role: llm.RoleUser, Content: script.SynthesisPrompt})

	synthesis, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	matchingPhase := domain.PhaseMatching
	if _, err := s.repo.UpdateSession(ctx, session.SessionID, store.SessionUpdate{
		AxiomSynthesis: &synthesis,
		Phase:          &matchingPhase,
	}); err != nil {
		return nil, fmt.Errorf("save synthesis: %w", err)
	}

	if err := s.appendMessage(ctx, session.SessionID, domain.RoleAssistant, synthesis, 0, domain.PhaseMatching); err != nil {
		return nil, err
	}

	matchingResult, err := s.complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: script.MatchingSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Voici le profil AXIOM du candidat:\n\n%s\n\n%s", synthesis, script.MatchingPrompt)},
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	completedPhase := domain.PhaseCompleted
	if _, err := s.repo.UpdateSession(ctx, session.SessionID, store.SessionUpdate{
		MatchingResult: &matchingResult,
		Phase:          &completedPhase,
		CompletedAt:    &now,
	}); err != nil {
		return nil, fmt.Errorf("save matching result: %w", err)
	}

	if err := s.appendMessage(ctx, session.SessionID, domain.RoleAssistant, matchingResult, 0, domain.PhaseMatching); err != nil {
		return nil, err
	}

	s.notifier.ProfileCompleted(ctx, session.SessionID, session.Email, session.Name)

	slog.Info("interview completed", "session_id", session.SessionID)

	return &CompletionResult{
		Synthesis:      synthesis,
		MatchingResult: matchingResult,
		Phase:          domain.PhaseCompleted,
	}, nil
}

func (s *Service) complete(ctx context.Context, prompt []llm.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	reply, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate completion: %w", err)
	}
	if reply == "" {
		reply = emptyReplyFallback
	}
	return reply, nil
}

func (s *Service) getSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *Service) appendMessage(ctx context.Context, sessionID string, role domain.Role, content string, bloc int, phase domain.Phase) error {
	err := s.repo.AppendMessage(ctx, &domain.Message{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Bloc:      bloc,
		Phase:     phase,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// newSessionToken generates a 32-character URL-safe session token.
func newSessionToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
