package commentary

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"pitchside/internal/services"
)

const englishMatch = "23' GOAL! Messi scores a brilliant goal after a perfect assist from Neymar\n45' Yellow card for Sergio Ramos"

func newAnalyzer(t *testing.T, code string, opts ...Option) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(mustProfile(t, code), opts...)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	return a
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := newAnalyzer(t, "en")
	for _, text := range []string{"", "   ", "\n\t"} {
		rows, err := a.Analyze(text)
		if err != nil {
			t.Fatalf("Analyze(%q) error: %v", text, err)
		}
		if len(rows) != 0 {
			t.Fatalf("Analyze(%q) = %v, want empty", text, rows)
		}
	}
}

func TestAnalyzeEnglishScenario(t *testing.T) {
	a := newAnalyzer(t, "en")
	entries, err := a.Timeline(englishMatch)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(entries))
	}

	first, second := entries[0], entries[1]
	if first.Label() != "23'" || second.Label() != "45'" {
		t.Fatalf("labels = %q, %q", first.Label(), second.Label())
	}
	if !reflect.DeepEqual(first.EventTags, []string{TagGoal}) {
		t.Fatalf("first tags = %q", first.EventTags)
	}
	if !reflect.DeepEqual(first.Players, []string{"Messi"}) {
		t.Fatalf("first players = %q", first.Players)
	}
	// The assist sits 56 characters after the first mark, so it belongs to 45'.
	if want := []string{TagGoal, TagAssist, TagYellowCard}; !reflect.DeepEqual(second.EventTags, want) {
		t.Fatalf("second tags = %q, want %q", second.EventTags, want)
	}
	if want := []string{"Neymar", "Ramos", "Yellow", "Sergio Ramos"}; !reflect.DeepEqual(second.Players, want) {
		t.Fatalf("second players = %q, want %q", second.Players, want)
	}

	rows, err := a.Analyze(englishMatch)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rows[0].Tags != "goal, Messi" {
		t.Fatalf("first row tags = %q", rows[0].Tags)
	}
	if rows[0].Context != "23' GOAL! Messi scores a brilliant goal after a perfe" {
		t.Fatalf("first row context = %q", rows[0].Context)
	}
	if rows[1].Tags != "goal, assist, yellow_card, Neymar, Ramos, Yellow, Sergio Ramos" {
		t.Fatalf("second row tags = %q", rows[1].Tags)
	}
}

func TestAnalyzeSpanishScenario(t *testing.T) {
	text := "23' ¡GOL! Messi anota un gol brillante"

	rows, err := newAnalyzer(t, "es").Analyze(text)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := []DisplayRow{{Time: "23'", Tags: "goal, Messi", Context: text}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %+v, want %+v", rows, want)
	}

	rows, err = newAnalyzer(t, "en").Analyze(text)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if strings.Contains(rows[0].Tags, TagGoal) {
		t.Fatalf("English profile should not classify Spanish keywords, got %q", rows[0].Tags)
	}
}

func TestAnalyzeGeneralMention(t *testing.T) {
	rows, err := newAnalyzer(t, "en").Analyze("12:00 quiet spell in midfield")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(rows) != 1 || rows[0].Tags != GeneralMention {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a := newAnalyzer(t, "en")
	first, err := a.Analyze(englishMatch)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, err := a.Analyze(englishMatch)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("analysis not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestAnalyzeReportsProgress(t *testing.T) {
	var percents []int
	var stages []string
	a := newAnalyzer(t, "en", WithProgress(func(percent int, stage string) {
		percents = append(percents, percent)
		stages = append(stages, stage)
	}))
	if _, err := a.Analyze(englishMatch); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if want := []int{0, 25, 50, 75, 90, 100}; !reflect.DeepEqual(percents, want) {
		t.Fatalf("progress = %v, want %v", percents, want)
	}
	if stages[len(stages)-1] != StageDone {
		t.Fatalf("last stage = %q", stages[len(stages)-1])
	}
}

func TestAnalyzeRecoversFaults(t *testing.T) {
	a := newAnalyzer(t, "en", WithProgress(func(_ int, stage string) {
		if stage == StageEvents {
			panic("matcher exploded")
		}
	}))
	rows, err := a.Analyze(englishMatch)
	if err == nil {
		t.Fatal("expected error")
	}
	if rows != nil {
		t.Fatalf("expected no partial rows, got %v", rows)
	}
	if !errors.Is(err, ErrExtractionFault) || !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction fault markers, got %v", err)
	}
	if !strings.Contains(err.Error(), "matcher exploded") {
		t.Fatalf("expected panic detail in %q", err)
	}
}

func TestAnalyzerWindowOption(t *testing.T) {
	a := newAnalyzer(t, "en", WithWindow(5))
	if a.Window() != 5 {
		t.Fatalf("Window = %d", a.Window())
	}
	rows, err := a.Analyze("10:00 a long way before the goal")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rows[0].Tags != GeneralMention {
		t.Fatalf("expected narrow window to drop the goal, got %q", rows[0].Tags)
	}
	if newAnalyzer(t, "en", WithWindow(-1)).Window() != DefaultWindow {
		t.Fatal("expected negative window to be ignored")
	}
}

func TestNewAnalyzerRequiresProfile(t *testing.T) {
	if _, err := NewAnalyzer(nil); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
