package commentary

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeOverrides(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write overrides: %v", err)
	}
	return path
}

func TestLoadOverridesNormalizesCodes(t *testing.T) {
	path := writeOverrides(t, `
spanish:
  players: [Lamine Yamal]
es-MX:
  teams: [Girona]
en:
  players: [Pulisic]
`)
	got, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}
	want := Overrides{
		"es": {Players: []string{"Lamine Yamal"}, Teams: []string{"Girona"}},
		"en": {Players: []string{"Pulisic"}},
	}
	if len(got) != 2 || !reflect.DeepEqual(got["en"], want["en"]) {
		t.Fatalf("overrides = %+v", got)
	}
	es := got["es"]
	if !reflect.DeepEqual(es.Players, want["es"].Players) || !reflect.DeepEqual(es.Teams, want["es"].Teams) {
		t.Fatalf("es overrides = %+v", es)
	}
}

func TestLoadOverridesMissingFile(t *testing.T) {
	got, err := LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil || got != nil {
		t.Fatalf("expected nil overrides, got %v, %v", got, err)
	}
}

func TestLoadOverridesRejectsUnknownLanguage(t *testing.T) {
	path := writeOverrides(t, "fr:\n  players: [Mbappé]\n")
	if _, err := LoadOverrides(path); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("expected unsupported language error, got %v", err)
	}
}

func TestRegistryAppliesOverrides(t *testing.T) {
	reg, err := NewRegistry(Overrides{"es": {Players: []string{"Lamine Yamal", "messi"}}})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if got := reg.Languages(); !reflect.DeepEqual(got, []string{"en", "es"}) {
		t.Fatalf("Languages = %v", got)
	}

	es, err := reg.Profile("español")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	players := es.Players()
	if players[len(players)-1] != "Lamine Yamal" {
		t.Fatalf("expected override appended, got %q", players[len(players)-1])
	}
	base, _ := ProfileFor("es")
	if len(players) != len(base.Players())+1 {
		t.Fatalf("expected duplicate override to be skipped, got %d players", len(players))
	}

	rows := ExtractEntities("Gol de Lamine Yamal", es)
	if len(rows) == 0 || rows[0].Text != "Lamine Yamal" {
		t.Fatalf("expected override to be recognized, got %+v", rows)
	}

	if _, err := reg.Profile("de"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("expected unsupported language, got %v", err)
	}
}

func TestProfileForResolvesAliases(t *testing.T) {
	for _, code := range []string{"es", "ES", "spa", "es-AR", "castellano"} {
		p, err := ProfileFor(code)
		if err != nil {
			t.Fatalf("ProfileFor(%q): %v", code, err)
		}
		if p.Code() != "es" {
			t.Fatalf("ProfileFor(%q).Code() = %q", code, p.Code())
		}
	}
	if _, err := ProfileFor("klingon"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("expected unsupported language, got %v", err)
	}
	if got := len(mustProfile(t, "en").EventTags()); got != 14 {
		t.Fatalf("expected 14 event rules, got %d", got)
	}
}

func TestNewProfileValidation(t *testing.T) {
	if _, err := NewProfile("", nil, nil, nil); err == nil {
		t.Fatal("expected error for empty code")
	}
	if _, err := NewProfile("xx", []EventRule{{Tag: "goal", Pattern: "gol"}, {Tag: "goal", Pattern: "goal"}}, nil, nil); err == nil {
		t.Fatal("expected duplicate tag error")
	}
	if _, err := NewProfile("xx", []EventRule{{Tag: "goal", Pattern: "(gol"}}, nil, nil); err == nil {
		t.Fatal("expected compile error")
	}
}
