// Package interview implements the bloc progression engine and the phase
// orchestrator driving a candidate session from the first welcome message
// through synthesis and matching.
package interview

import (
	"github.com/elga-energy/axiom/internal/domain"
	"github.com/elga-energy/axiom/internal/llm"
	"github.com/elga-energy/axiom/internal/script"
)

// Decision is the engine's verdict for one user turn. Exactly one of
// Scripted or Prompt is set: a non-empty Scripted message is returned
// verbatim without invoking the provider; otherwise Prompt carries the
// fully assembled completion request.
type Decision struct {
	Scripted string
	Prompt   []llm.Message
	// Progress is the script position to persist together with the
	// turn's assistant message.
	Progress *domain.ScriptProgress
}

// Decide applies the bloc progression rules to one incoming user turn.
// history is the session's axiom-phase history including the just-appended
// user message. The engine never mutates the session or its bloc counter.
func Decide(session *domain.Session, history []*domain.Message) Decision {
	progress := effectiveProgress(session, history)
	bloc := session.CurrentBloc

	if script.HasScript(bloc) {
		asked := progress.Asked(bloc)
		total := script.QuestionCount(bloc)

		// While any scripted question remains, emit the next one and
		// nothing else. The provider is not consulted.
		if asked < total {
			choice := script.MediumUnknown
			if bloc == 2 {
				choice = detectMediumChoice(history)
			}
			progress.MarkAsked(bloc)
			return Decision{
				Scripted: script.RenderQuestion(bloc, asked, choice),
				Progress: progress,
			}
		}

		// Bloc 2 inserts a fixed announcement between the collection
		// sub-stage and the model-driven analysis sub-stage, at most once.
		if bloc == 2 && !progress.Bloc2BAnnounced {
			progress.Bloc2BAnnounced = true
			return Decision{
				Scripted: script.Bloc2ATransitionMessage,
				Progress: progress,
			}
		}
	}

	return Decision{
		Prompt:   buildPrompt(bloc, progress, history),
		Progress: progress,
	}
}

// buildPrompt assembles the provider messages: the system prompt (plus the
// one-shot mirror directive when a scripted bloc just ran out of
// questions), the phase history, and the mirror nudge. Directive and nudge
// exist only in the prompt, never in stored history.
func buildPrompt(bloc int, progress *domain.ScriptProgress, history []*domain.Message) []llm.Message {
	directive := ""
	if (bloc == 1 || bloc == 3) && progress.Asked(bloc) >= script.QuestionCount(bloc) {
		directive = script.MirrorDirective(bloc)
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: script.SystemPrompt + directive,
	})

	for _, msg := range history {
		role := llm.RoleUser
		if msg.Role == domain.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Content})
	}

	if directive != "" {
		messages = append(messages, llm.Message{
			Role:    llm.RoleAssistant,
			Content: script.MirrorNudge,
		})
	}

	return messages
}

// effectiveProgress returns the session's persisted script position, or
// reconstructs it from history when the record is absent. Reconstruction
// recognises each scripted question by its canonical text inside
// assistant messages, so a session predating progress tracking still
// resumes exactly where its script left off.
func effectiveProgress(session *domain.Session, history []*domain.Message) *domain.ScriptProgress {
	if session.Progress != nil {
		return session.Progress
	}

	progress := domain.NewScriptProgress()
	for _, bloc := range []int{1, 2, 3} {
		for index := 0; index < script.QuestionCount(bloc); index++ {
			if questionAsked(history, bloc, index) {
				progress.MarkAsked(bloc)
			}
		}
	}

	for _, msg := range history {
		if msg.Role == domain.RoleAssistant && script.IsBloc2ATransition(msg.Content) {
			progress.Bloc2BAnnounced = true
			break
		}
	}

	return progress
}

func questionAsked(history []*domain.Message, bloc, index int) bool {
	for _, msg := range history {
		if msg.Role == domain.RoleAssistant && script.MessageAsksQuestion(msg.Content, bloc, index) {
			return true
		}
	}
	return false
}

// detectMediumChoice finds the candidate's answer to the series-or-films
// question: the first classifiable user reply after that question was
// asked.
func detectMediumChoice(history []*domain.Message) script.Medium {
	askedAt := -1
	for i, msg := range history {
		if msg.Role == domain.RoleAssistant && script.MessageAsksQuestion(msg.Content, 2, 0) {
			askedAt = i
			break
		}
	}
	if askedAt == -1 {
		return script.MediumUnknown
	}

	for _, msg := range history[askedAt+1:] {
		if msg.Role != domain.RoleUser {
			continue
		}
		if choice := script.MediumFromAnswer(msg.Content); choice != script.MediumUnknown {
			return choice
		}
	}
	return script.MediumUnknown
}
