package script

import (
	"fmt"
)

// Bloc is one of the nine fixed interview themes.
type Bloc struct {
	Num    int
	Title  string
	Prompt string
}

// Blocs lists the nine interview blocs in order.
var Blocs = []Bloc{
	{1, "Fondamentaux Professionnels", "Raconte-moi : Quel a été ton premier vrai job, et qu'est-ce qui t'a marqué chez toi pendant cette période ?"},
	{2, "Moteurs & Valeurs", "Pense à un moment où tu t'es senti(e) vraiment vivant(e) au travail — pas forcément heureux, mais vivant. Qu'est-ce qui se passait ?"},
	{3, "Rapport à l'Autonomie", "Décris-moi une situation où tu as dû prendre une décision importante sans avoir d'instructions claires. Comment tu as géré ça ?"},
	{4, "Rapport à l'Échec & l'Erreur", "Raconte-moi un moment où tu as échoué ou fait une grosse erreur. Comment tu l'as vécu ?"},
	{5, "Rapport à l'Autorité & la Hiérarchie", "Décris-moi un manager que tu as respecté (ou non). Qu'est-ce qu'il faisait qui changeait quelque chose pour toi ?"},
	{6, "Rapport à la Vente & la Prospection", "Comment tu te sens face à l'idée de convaincre quelqu'un, de vendre une idée, un produit, ou toi-même ?"},
	{7, "Rapport à la Stabilité & au Risque", "Qu'est-ce qui te fait peur professionnellement ? Qu'est-ce que tu cherches à sécuriser ?"},
	{8, "Projection & Ambition", "Où tu te vois dans 5 ans ? Pas en termes de titre ou de salaire, mais en termes de ce que tu fais vraiment."},
	{9, "Cohérence Globale", "Si tu devais résumer en une phrase ce qui te pousse vraiment au travail — pas ce que tu crois devoir dire, mais ce qui est vrai pour toi — qu'est-ce que ce serait ?"},
}

// IntroMessage renders the fixed introduction for bloc num (1..9).
func IntroMessage(num int) string {
	b := Blocs[num-1]
	return fmt.Sprintf("**BLOC %d : %s**\n\n%s", b.Num, b.Title, b.Prompt)
}
