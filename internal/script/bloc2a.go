package script

import (
	"strings"
)

// Medium is the candidate's answer to the series-or-films question,
// used to word the follow-up preference question.
type Medium string

const (
	MediumUnknown Medium = ""
	MediumSeries  Medium = "series"
	MediumFilms   Medium = "films"
)

const bloc2AHeader = "🔷 BLOC 2A — PROJECTIONS NARRATIVES"

// Bloc 2A collects narrative preferences without interpretation; analysis
// only starts in bloc 2B, after the fixed transition announcement.
var (
	bloc2AQ1 = Question{
		Key:  "q1_medium",
		Text: "Tu préfères regarder des séries ou des films ?",
		Options: []Option{
			{"A", "Séries"},
			{"B", "Films"},
		},
	}

	bloc2AQ2TextSeries = "Cite-moi tes 3 séries préférées, celles que tu pourrais revoir encore et encore."
	bloc2AQ2TextFilms  = "Cite-moi tes 3 films préférés, ceux que tu pourrais revoir encore et encore."

	bloc2AQ3Text = "Parmi toutes les œuvres que tu viens de citer, laquelle te ressemble le plus ?"
)

// Bloc2AQuestionCount is the number of deterministic questions in bloc 2A.
const Bloc2AQuestionCount = 3

// Bloc2ATransitionMessage is the one-shot announcement separating the
// collection sub-stage from the projective analysis sub-stage. Its
// "BLOC 2B" and "ANALYSE PROJECTIVE" markers are how a resumed session
// recognises the transition already happened.
var Bloc2ATransitionMessage = strings.Join([]string{
	"🧠 FIN DU BLOC 2A — PROJECTIONS NARRATIVES",
	"",
	"Les préférences sont collectées.",
	"Aucune analyse n'a été produite.",
	"",
	"On passe maintenant au BLOC 2B — Analyse projective des œuvres retenues.",
	"",
	"🔷 BLOC 2B — ANALYSE PROJECTIVE DES 3 ŒUVRES",
	"",
	"Je vais maintenant analyser les œuvres que tu as choisies pour comprendre ce qui t'attire vraiment.",
}, "\n")

// IsBloc2ATransition reports whether an assistant message is the 2A->2B
// transition announcement.
func IsBloc2ATransition(content string) bool {
	return strings.Contains(content, "BLOC 2B") && strings.Contains(content, "ANALYSE PROJECTIVE")
}

// Bloc2AQuestionTexts returns the canonical text variants of the bloc 2A
// question at index. The preference question has two wordings.
func Bloc2AQuestionTexts(index int) []string {
	switch index {
	case 0:
		return []string{bloc2AQ1.Text}
	case 1:
		return []string{bloc2AQ2TextSeries, bloc2AQ2TextFilms}
	case 2:
		return []string{bloc2AQ3Text}
	}
	return nil
}

// RenderBloc2AQuestion formats the bloc 2A question at index. The medium
// choice selects the wording of the preference question; films wording is
// the fallback when the choice could not be classified.
func RenderBloc2AQuestion(index int, choice Medium) string {
	switch index {
	case 0:
		lines := []string{
			bloc2AHeader,
			"",
			"⚠️ Bloc NON interprétatif",
			"⚠️ Aucune analyse avant le Bloc 2B",
			"⚠️ Collecte uniquement",
			"",
			bloc2AQ1.Text,
			"",
		}
		for _, opt := range bloc2AQ1.Options {
			lines = append(lines, opt.Letter+". "+opt.Label)
		}
		lines = append(lines, "", "👉 Réponds en choisissant UNE seule lettre (A ou B).")
		return strings.Join(lines, "\n")

	case 1:
		text := bloc2AQ2TextFilms
		if choice == MediumSeries {
			text = bloc2AQ2TextSeries
		}
		return strings.Join([]string{
			bloc2AHeader,
			"",
			text,
			"",
			"Règles :",
			"• réponse libre",
			"• 3 maximum",
			"• orthographe approximative acceptée",
		}, "\n")

	case 2:
		return strings.Join([]string{
			bloc2AHeader,
			"",
			bloc2AQ3Text,
			"",
			"Règles :",
			"• 1 seule œuvre",
			"• film OU série",
			"• réponse libre",
		}, "\n")
	}
	return ""
}

// MediumFromAnswer classifies a free-text answer to the medium question.
func MediumFromAnswer(answer string) Medium {
	content := strings.ToUpper(strings.TrimSpace(answer))
	if content == "A" || strings.Contains(content, "SÉRIE") || strings.Contains(content, "SERIE") {
		return MediumSeries
	}
	if content == "B" || strings.Contains(content, "FILM") {
		return MediumFilms
	}
	return MediumUnknown
}
