package commentary

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"pitchside/internal/language"
)

// NameOverrides lists extra known names for one language.
type NameOverrides struct {
	Players []string `yaml:"players"`
	Teams   []string `yaml:"teams"`
}

// Overrides maps a language code to the extra names it should recognize.
type Overrides map[string]NameOverrides

// LoadOverrides reads a YAML document of the form
//
//	es:
//	  players: [Lamine Yamal]
//	  teams: [Girona]
//
// A missing file yields empty overrides.
func LoadOverrides(path string) (Overrides, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read profile overrides: %w", err)
	}
	var raw Overrides
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse profile overrides %s: %w", path, err)
	}
	out := make(Overrides, len(raw))
	for code, names := range raw {
		iso := language.ToISO2(code)
		if iso == "" {
			return nil, fmt.Errorf("profile overrides %s: %w: %q", path, ErrUnsupportedLanguage, code)
		}
		merged := out[iso]
		merged.Players = append(merged.Players, names.Players...)
		merged.Teams = append(merged.Teams, names.Teams...)
		out[iso] = merged
	}
	return out, nil
}

// Registry resolves language codes to profiles, applying overrides on top of
// the built-in name lists.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry builds a registry from the built-in profiles plus overrides.
func NewRegistry(overrides Overrides) (*Registry, error) {
	r := &Registry{profiles: make(map[string]*Profile)}
	for _, code := range Languages() {
		base, err := ProfileFor(code)
		if err != nil {
			return nil, err
		}
		extra := overrides[code]
		p, err := base.Extend(extra.Players, extra.Teams)
		if err != nil {
			return nil, err
		}
		r.profiles[code] = p
	}
	return r, nil
}

// Profile returns the profile for a language code.
func (r *Registry) Profile(code string) (*Profile, error) {
	if p, ok := r.profiles[language.ToISO2(code)]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
}

// Languages returns the registered codes in sorted order.
func (r *Registry) Languages() []string {
	out := make([]string, 0, len(r.profiles))
	for code := range r.profiles {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
