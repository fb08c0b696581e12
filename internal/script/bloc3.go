package script

import (
	"strings"
)

const bloc3Header = "🔷 BLOC 3 — VALEURS PROFONDES & FONCTIONNEMENT COGNITIF"

// Bloc3Questions are the three deterministic questions of bloc 3, in the
// exact order they must be asked.
var Bloc3Questions = []Question{
	{
		Key:  "q1",
		Text: "Quand tu dois prendre une décision difficile, tu te fies d'abord à quoi ?",
		Options: []Option{
			{"A", "Aux faits et aux chiffres"},
			{"B", "À mon intuition, à ce que je sens"},
			{"C", "À l'avis des personnes de confiance"},
			{"D", "Aux principes que je me suis fixés"},
		},
	},
	{
		Key:  "q2",
		Text: "Qu'est-ce qui est le plus insupportable pour toi dans un environnement de travail ?",
		Options: []Option{
			{"A", "L'injustice, les règles à géométrie variable"},
			{"B", "La médiocrité acceptée"},
			{"C", "Le contrôle permanent, l'absence de liberté"},
			{"D", "Le chacun pour soi"},
		},
	},
	{
		Key:  "q3_open",
		Text: "Complète cette phrase : « Je ne pourrais jamais travailler longtemps dans un endroit où... »",
	},
}

// RenderBloc3Question formats the bloc 3 question at index for sending.
func RenderBloc3Question(index int) string {
	q := Bloc3Questions[index]

	if q.Options == nil {
		return strings.Join([]string{
			bloc3Header,
			"",
			q.Text,
			"",
			"⚠️ 1 phrase. Pas d'exemple. Pas d'explication.",
		}, "\n")
	}

	lines := []string{bloc3Header, "", q.Text, ""}
	for _, opt := range q.Options {
		lines = append(lines, opt.Letter+". "+opt.Label)
	}
	lines = append(lines, "", "👉 Réponds en choisissant UNE seule lettre (A, B, C, D...).")
	return strings.Join(lines, "\n")
}
