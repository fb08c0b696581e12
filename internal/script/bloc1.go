package script

import (
	"strings"
)

// Option is one multiple-choice answer, rendered as "Letter. Label".
// Order is significant.
type Option struct {
	Letter string
	Label  string
}

// Question is one deterministic scripted question. Options is nil for
// open questions. Text is the canonical string used to recognise the
// question inside an already-sent assistant message.
type Question struct {
	Key     string
	Text    string
	Options []Option
}

const bloc1Header = "🔷 BLOC 1 — ÉNERGIE & MOTEURS INTERNES"

// Bloc1Questions are the five deterministic questions of bloc 1, in the
// exact order they must be asked.
var Bloc1Questions = []Question{
	{
		Key:  "q1",
		Text: "Quand tu repenses à tes journées de travail les plus intenses, qu'est-ce qui te donnait le plus d'énergie ?",
		Options: []Option{
			{"A", "Atteindre un objectif chiffré, mesurable"},
			{"B", "Résoudre un problème complexe que personne ne comprenait"},
			{"C", "Convaincre ou embarquer quelqu'un avec moi"},
			{"D", "Construire quelque chose de durable, étape par étape"},
		},
	},
	{
		Key:  "q2",
		Text: "Qu'est-ce qui te vide le plus vite de ton énergie au travail ?",
		Options: []Option{
			{"A", "La routine, refaire la même chose chaque jour"},
			{"B", "L'incertitude, ne pas savoir où je vais"},
			{"C", "Les tensions ou conflits avec les autres"},
			{"D", "Le manque de reconnaissance de mes efforts"},
		},
	},
	{
		Key:  "q3",
		Text: "Quand tu termines une grosse tâche, qu'est-ce qui compte le plus pour toi ?",
		Options: []Option{
			{"A", "Le résultat concret, ce qui est produit"},
			{"B", "Ce que j'ai appris en chemin"},
			{"C", "La reconnaissance de ceux qui comptent pour moi"},
			{"D", "Pouvoir passer à la suite, en plus grand"},
		},
	},
	{
		Key:  "q4",
		Text: "Tu démarres une semaine très chargée. Quelle pensée te met en mouvement ?",
		Options: []Option{
			{"A", "Ce que je vais gagner si je tiens le rythme"},
			{"B", "Le défi lui-même, voir si j'en suis capable"},
			{"C", "Les personnes qui comptent sur moi"},
			{"D", "L'avancement vers mon projet à long terme"},
		},
	},
	{
		Key:  "q5_open",
		Text: "Décris-moi une journée de travail idéale, du matin au soir. Qu'est-ce qui la rendrait vraiment bonne pour toi ?",
	},
}

// RenderBloc1Question formats the bloc 1 question at index for sending.
func RenderBloc1Question(index int) string {
	q := Bloc1Questions[index]

	if q.Options == nil {
		return bloc1Header + "\n\n" + q.Text + "\n\nRéponds librement, avec tes mots."
	}

	lines := []string{bloc1Header, "", q.Text, ""}
	for _, opt := range q.Options {
		lines = append(lines, opt.Letter+". "+opt.Label)
	}
	lines = append(lines, "", "👉 Réponds en choisissant UNE seule lettre (A, B, C, D...).")
	return strings.Join(lines, "\n")
}
