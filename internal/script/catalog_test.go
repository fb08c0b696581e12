package script

import (
	"strings"
	"testing"
)

func TestHasScript(t *testing.T) {
	for bloc := 1; bloc <= 9; bloc++ {
		want := bloc <= 3
		if got := HasScript(bloc); got != want {
			t.Errorf("HasScript(%d) = %v, want %v", bloc, got, want)
		}
	}
}

func TestQuestionCount(t *testing.T) {
	tests := []struct {
		bloc int
		want int
	}{
		{1, 5},
		{2, 3},
		{3, 3},
		{4, 0},
		{9, 0},
	}
	for _, tt := range tests {
		if got := QuestionCount(tt.bloc); got != tt.want {
			t.Errorf("QuestionCount(%d) = %d, want %d", tt.bloc, got, tt.want)
		}
	}
}

func TestRenderQuestionContainsCanonicalText(t *testing.T) {
	for _, bloc := range []int{1, 2, 3} {
		for index := 0; index < QuestionCount(bloc); index++ {
			rendered := RenderQuestion(bloc, index, MediumFilms)
			if rendered == "" {
				t.Fatalf("RenderQuestion(%d, %d) returned empty string", bloc, index)
			}
			if !MessageAsksQuestion(rendered, bloc, index) {
				t.Errorf("rendered question bloc %d index %d not recognised by MessageAsksQuestion", bloc, index)
			}
		}
	}
}

func TestRenderBloc2APreferenceWording(t *testing.T) {
	series := RenderQuestion(2, 1, MediumSeries)
	if !strings.Contains(series, "séries préférées") {
		t.Errorf("series wording missing from %q", series)
	}

	films := RenderQuestion(2, 1, MediumFilms)
	if !strings.Contains(films, "films préférés") {
		t.Errorf("films wording missing from %q", films)
	}

	// Unknown choice falls back to the films wording.
	unknown := RenderQuestion(2, 1, MediumUnknown)
	if !strings.Contains(unknown, "films préférés") {
		t.Errorf("unknown choice should fall back to films wording, got %q", unknown)
	}
}

func TestMediumFromAnswer(t *testing.T) {
	tests := []struct {
		answer string
		want   Medium
	}{
		{"A", MediumSeries},
		{"a", MediumSeries},
		{"  A  ", MediumSeries},
		{"Les séries", MediumSeries},
		{"je préfère les series", MediumSeries},
		{"B", MediumFilms},
		{"plutôt les films", MediumFilms},
		{"les deux", MediumUnknown},
		{"", MediumUnknown},
	}
	for _, tt := range tests {
		if got := MediumFromAnswer(tt.answer); got != tt.want {
			t.Errorf("MediumFromAnswer(%q) = %q, want %q", tt.answer, got, tt.want)
		}
	}
}

func TestIsBloc2ATransition(t *testing.T) {
	if !IsBloc2ATransition(Bloc2ATransitionMessage) {
		t.Error("transition message not recognised by its own markers")
	}
	if IsBloc2ATransition("On passe au BLOC 2B") {
		t.Error("partial marker should not match")
	}
	if IsBloc2ATransition(RenderQuestion(2, 0, MediumUnknown)) {
		t.Error("bloc 2A question should not match the transition markers")
	}
}

func TestMirrorDirective(t *testing.T) {
	d1 := MirrorDirective(1)
	if !strings.Contains(d1, "BLOC 1 TERMINÉ") {
		t.Errorf("bloc 1 directive missing terminated marker: %q", d1)
	}
	if !strings.Contains(d1, "BLOC 2A") {
		t.Errorf("bloc 1 directive should hand over to BLOC 2A: %q", d1)
	}

	d3 := MirrorDirective(3)
	if !strings.Contains(d3, "BLOC 3 TERMINÉ") {
		t.Errorf("bloc 3 directive missing terminated marker: %q", d3)
	}
	if !strings.Contains(d3, "BLOC 4") {
		t.Errorf("bloc 3 directive should hand over to BLOC 4: %q", d3)
	}
}

func TestIntroMessage(t *testing.T) {
	if len(Blocs) != 9 {
		t.Fatalf("expected 9 blocs, got %d", len(Blocs))
	}
	for _, b := range Blocs {
		intro := IntroMessage(b.Num)
		if !strings.Contains(intro, b.Title) {
			t.Errorf("intro for bloc %d missing title %q", b.Num, b.Title)
		}
		if !strings.Contains(intro, b.Prompt) {
			t.Errorf("intro for bloc %d missing prompt", b.Num)
		}
	}
}

func TestQuestionTextsDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, bloc := range []int{1, 2, 3} {
		for index := 0; index < QuestionCount(bloc); index++ {
			for _, text := range QuestionTexts(bloc, index) {
				if seen[text] {
					t.Errorf("duplicate canonical question text %q", text)
				}
				seen[text] = true
			}
		}
	}
}
