// Package domain contains core domain types for the AXIOM interview server.
package domain

import (
	"time"
)

// Phase is the top-level lifecycle stage of a candidate session.
// It only ever advances: axiom -> matching -> completed.
type Phase string

const (
	PhaseAxiom     Phase = "axiom"
	PhaseMatching  Phase = "matching"
	PhaseCompleted Phase = "completed"
)

// TotalBlocs is the number of thematic interview blocs.
const TotalBlocs = 9

// Session represents one candidate interview run, keyed by an opaque
// URL-safe session token.
type Session struct {
	SessionID      string          `json:"sessionId"`
	Email          string          `json:"email"`
	Name           string          `json:"name,omitempty"`
	Phase          Phase           `json:"phase"`
	CurrentBloc    int             `json:"currentBloc"`
	AxiomSynthesis string          `json:"axiomSynthesis,omitempty"`
	MatchingResult string          `json:"matchingResult,omitempty"`
	Progress       *ScriptProgress `json:"-"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty"`
}

// IsCompleted returns true once the matching verdict has been produced.
func (s *Session) IsCompleted() bool {
	return s.Phase == PhaseCompleted
}

// ScriptProgress records how far each scripted bloc has advanced.
// It is co-written with every appended message so script position survives
// restarts without re-deriving it from message text.
type ScriptProgress struct {
	// AskedCount maps a bloc number to the number of deterministic
	// questions already asked in that bloc.
	AskedCount map[int]int `json:"askedCount,omitempty"`
	// Bloc2BAnnounced is set once the fixed 2A->2B transition message
	// has been emitted.
	Bloc2BAnnounced bool `json:"bloc2bAnnounced,omitempty"`
}

// NewScriptProgress returns an empty progress record.
func NewScriptProgress() *ScriptProgress {
	return &ScriptProgress{AskedCount: make(map[int]int)}
}

// Asked returns the number of deterministic questions asked in bloc.
func (p *ScriptProgress) Asked(bloc int) int {
	if p == nil || p.AskedCount == nil {
		return 0
	}
	return p.AskedCount[bloc]
}

// MarkAsked records that one more deterministic question was asked in bloc.
func (p *ScriptProgress) MarkAsked(bloc int) {
	if p.AskedCount == nil {
		p.AskedCount = make(map[int]int)
	}
	p.AskedCount[bloc]++
}
