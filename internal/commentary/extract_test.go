package commentary

import (
	"fmt"
	"reflect"
	"testing"
	"unicode/utf8"
)

func mustProfile(t *testing.T, code string) *Profile {
	t.Helper()
	p, err := ProfileFor(code)
	if err != nil {
		t.Fatalf("ProfileFor(%q): %v", code, err)
	}
	return p
}

func texts(occs []Occurrence) []string {
	out := make([]string, len(occs))
	for i, o := range occs {
		out[i] = o.Text
	}
	return out
}

func payloads(occs []Occurrence) []string {
	out := make([]string, len(occs))
	for i, o := range occs {
		out[i] = o.Payload
	}
	return out
}

func TestExtractTimestampsClockForms(t *testing.T) {
	for minutes := 0; minutes <= 99; minutes += 7 {
		for seconds := 0; seconds <= 59; seconds += 13 {
			label := fmt.Sprintf("%d:%02d", minutes, seconds)
			text := "kick at " + label + " sharp"
			got := ExtractTimestamps(text)
			if len(got) != 1 || got[0].Text != label {
				t.Fatalf("ExtractTimestamps(%q) = %q, want [%s]", text, texts(got), label)
			}
			if got[0].Category != CategoryTimestamp || got[0].Payload != label {
				t.Fatalf("unexpected occurrence %+v", got[0])
			}
		}
	}
}

func TestExtractTimestampsDeclarationOrder(t *testing.T) {
	text := "45' half time, restart at 47 min, clock 1:23:45 and 12:30"
	got := texts(ExtractTimestamps(text))
	want := []string{"1:23", "12:30", "1:23:45", "45'", "47 min"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractTimestamps = %q, want %q", got, want)
	}
}

func TestExtractTimestampsForms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"minute mark", "90' final whistle", []string{"90'"}},
		{"typographic apostrophe", "90’ final whistle", []string{"90’"}},
		{"minute unit uppercase", "at 45 MIN the break", []string{"45 MIN"}},
		{"minute unit no space", "at 45min the break", []string{"45min"}},
		{"minutes word rejected", "after 45 minutes", nil},
		{"four digit minute rejected", "1234' odd", nil},
		{"stoppage time", "90+3' late goal", []string{"3'"}},
		{"three digit seconds rejected", "12:345", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(ExtractTimestamps(tt.text))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExtractTimestamps(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractTimestampsCharacterOffsets(t *testing.T) {
	text := "¡Gol! 23' de Mbappé"
	got := ExtractTimestamps(text)
	if len(got) != 1 {
		t.Fatalf("expected one timestamp, got %q", texts(got))
	}
	if got[0].Start != 6 || got[0].End != 9 {
		t.Fatalf("offsets = %d..%d, want 6..9", got[0].Start, got[0].End)
	}
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"0:30", 30, true},
		{"12:05", 725, true},
		{"1:02:03", 3723, true},
		{"23'", 1380, true},
		{"45 min", 2700, true},
		{"45MIN", 2700, true},
		{"half time", 0, false},
	}
	for _, tt := range tests {
		got, ok := Seconds(tt.label)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Seconds(%q) = %d, %v; want %d, %v", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExtractEventsEnglish(t *testing.T) {
	p := mustProfile(t, "en")
	text := "Shot from distance, saved by the keeper. Corner kick taken, header over."
	got := ExtractEvents(text, p)
	want := []string{TagCorner, TagSave, TagShot, TagHeader}
	if !reflect.DeepEqual(payloads(got), want) {
		t.Fatalf("event tags = %q, want %q", payloads(got), want)
	}
	if got[0].Text != "Corner" {
		t.Fatalf("corner alternation matched %q, want Corner", got[0].Text)
	}
}

func TestExtractEventsOverlappingRules(t *testing.T) {
	p := mustProfile(t, "es")
	text := "Falta de Ramos"
	got := ExtractEvents(text, p)
	want := []string{TagFreeKick, TagFoul}
	if !reflect.DeepEqual(payloads(got), want) {
		t.Fatalf("event tags = %q, want %q", payloads(got), want)
	}
	if got[0].Start != got[1].Start || got[0].End != got[1].End {
		t.Fatalf("expected both rules on the same span, got %+v", got)
	}
}

func TestExtractEventsSpanishAccents(t *testing.T) {
	p := mustProfile(t, "es")
	text := "Mbappé anotó y luego la expulsión de Ramos"
	got := ExtractEvents(text, p)
	want := []string{TagGoal, TagRedCard}
	if !reflect.DeepEqual(payloads(got), want) {
		t.Fatalf("event tags = %q (%q), want %q", payloads(got), texts(got), want)
	}
	if got[0].Text != "anotó" {
		t.Fatalf("goal text = %q, want anotó", got[0].Text)
	}
	if got[0].Start != 7 || got[0].End != 12 {
		t.Fatalf("goal offsets = %d..%d, want 7..12", got[0].Start, got[0].End)
	}
}

func TestExtractEventsEmpty(t *testing.T) {
	if got := ExtractEvents("", mustProfile(t, "en")); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := ExtractEvents("goal", nil); got != nil {
		t.Fatalf("expected nil for nil profile, got %v", got)
	}
}

func TestExtractEntitiesRepeatedKnownPlayer(t *testing.T) {
	p := mustProfile(t, "en")
	text := "Messi scores. Later, Messi scores again."
	got := ExtractEntities(text, p)

	var messi []Occurrence
	for _, o := range got {
		if o.Text == "Messi" {
			messi = append(messi, o)
		}
	}
	if len(messi) != 2 {
		t.Fatalf("expected two Messi occurrences, got %d in %q", len(messi), texts(got))
	}
	if messi[0].Start == messi[1].Start {
		t.Fatalf("expected distinct offsets, got %+v", messi)
	}
	for _, o := range messi {
		if o.Category != CategoryPersonEntity {
			t.Fatalf("expected person category, got %v", o.Category)
		}
	}
	if want := []string{"Messi", "Messi", "Later"}; !reflect.DeepEqual(texts(got), want) {
		t.Fatalf("entities = %q, want %q", texts(got), want)
	}
}

func TestExtractEntitiesTiers(t *testing.T) {
	p := mustProfile(t, "en")
	text := "The match: Real Madrid against Liverpool. After the break Sergio Ramos and Penalty Taker Jones"
	got := ExtractEntities(text, p)

	var people, orgs []string
	for _, o := range got {
		switch o.Category {
		case CategoryPersonEntity:
			people = append(people, o.Text)
		case CategoryOrgEntity:
			orgs = append(orgs, o.Text)
		}
	}
	if want := []string{"Real Madrid", "Liverpool"}; !reflect.DeepEqual(orgs, want) {
		t.Fatalf("orgs = %q, want %q", orgs, want)
	}
	// "Ramos" is known; "Sergio Ramos" is a different text so the heuristic keeps it.
	if want := []string{"Ramos", "Sergio Ramos", "Penalty Taker", "Jones"}; !reflect.DeepEqual(people, want) {
		t.Fatalf("people = %q, want %q", people, want)
	}
}

func TestExtractEntitiesSkipsSpanClaimedByPlayerTier(t *testing.T) {
	p, err := NewProfile("xx", nil, []string{"Real"}, []string{"real"})
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}
	got := ExtractEntities("Real again", p)
	if len(got) != 1 || got[0].Category != CategoryPersonEntity {
		t.Fatalf("expected a single person occurrence, got %+v", got)
	}
}

func TestExtractEntitiesSpanishNames(t *testing.T) {
	p := mustProfile(t, "es")
	text := "Pase de Luka Modrić para Mbappé"
	got := ExtractEntities(text, p)
	// The ASCII-only heuristic cannot span "Modrić", so it stops at "Luka".
	want := []string{"Mbappé", "Modrić", "Luka Modrić", "Pase", "Luka"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Fatalf("entities = %q, want %q", texts(got), want)
	}
}

func TestOccurrenceBounds(t *testing.T) {
	p := mustProfile(t, "es")
	inputs := []string{
		"23' ¡GOL! Messi anota un gol brillante",
		"12:00 Tarjeta amarilla para Piqué, 13:10 córner para el Atlético Madrid",
		"Pase, remate, ¡parada! 88’ cabezazo de Vinicius",
	}
	for _, text := range inputs {
		n := utf8.RuneCountInString(text)
		all := append(ExtractTimestamps(text), ExtractEvents(text, p)...)
		all = append(all, ExtractEntities(text, p)...)
		for _, o := range all {
			if o.Start < 0 || o.Start > o.End || o.End > n {
				t.Fatalf("occurrence %+v out of bounds for %q (len %d)", o, text, n)
			}
			if got := string([]rune(text)[o.Start:o.End]); got != o.Text {
				t.Fatalf("offsets %d..%d select %q, want %q", o.Start, o.End, got, o.Text)
			}
		}
	}
}
