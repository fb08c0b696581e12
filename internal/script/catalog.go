package script

import (
	"fmt"
	"strings"
)

// HasScript reports whether bloc has a deterministic question script.
func HasScript(bloc int) bool {
	switch bloc {
	case 1, 2, 3:
		return true
	}
	return false
}

// QuestionCount returns the number of deterministic questions in bloc.
func QuestionCount(bloc int) int {
	switch bloc {
	case 1:
		return len(Bloc1Questions)
	case 2:
		return Bloc2AQuestionCount
	case 3:
		return len(Bloc3Questions)
	}
	return 0
}

// QuestionTexts returns the canonical text variants of the question at
// index in bloc. Used to recognise already-asked questions in history.
func QuestionTexts(bloc, index int) []string {
	switch bloc {
	case 1:
		return []string{Bloc1Questions[index].Text}
	case 2:
		return Bloc2AQuestionTexts(index)
	case 3:
		return []string{Bloc3Questions[index].Text}
	}
	return nil
}

// MessageAsksQuestion reports whether an assistant message contains the
// canonical text of the question at index in bloc.
func MessageAsksQuestion(content string, bloc, index int) bool {
	for _, text := range QuestionTexts(bloc, index) {
		if strings.Contains(content, text) {
			return true
		}
	}
	return false
}

// RenderQuestion formats the scripted question at index in bloc. The
// medium choice only matters for bloc 2A's preference question.
func RenderQuestion(bloc, index int, choice Medium) string {
	switch bloc {
	case 1:
		return RenderBloc1Question(index)
	case 2:
		return RenderBloc2AQuestion(index, choice)
	case 3:
		return RenderBloc3Question(index)
	}
	return ""
}

// MirrorNudge is the assistant-side reminder appended to the prompt, never
// to history, once a bloc's deterministic questions are all answered.
const MirrorNudge = "✅ Toutes les questions de ce bloc ont été posées et répondues. Je dois maintenant générer le miroir interprétatif."

// MirrorDirective builds the one-shot system directive forcing the model
// to produce the interpretive mirror of bloc and hand over to the next
// bloc. Only blocs 1 and 3 end with a scripted mirror; bloc 2's analysis
// sub-stage is free-form.
func MirrorDirective(bloc int) string {
	next := bloc + 1
	nextLabel := fmt.Sprintf("BLOC %d", next)
	firstQuestion := fmt.Sprintf("la première question du %s", nextLabel)
	if next == 2 {
		firstQuestion = "la première question du BLOC 2A"
	}

	return fmt.Sprintf(`

⚠️ CONTEXTE CRITIQUE - BLOC %d TERMINÉ
Toutes les questions déterministes du BLOC %d ont été posées et le candidat y a répondu.

TU DOIS MAINTENANT :
1. Générer UNIQUEMENT le MIROIR INTERPRÉTATIF du BLOC %d (format : Lecture implicite + Déduction personnalisée + Validation ouverte)
2. Annoncer explicitement la fin du BLOC %d
3. Annoncer le %s et son nom
4. Poser %s

TU NE DOIS PAS :
- Poser d'autres questions du BLOC %d
- Faire une lecture globale
- Passer à un autre bloc sans miroir interprétatif`,
		bloc, bloc, bloc, bloc, nextLabel, firstQuestion, bloc)
}
