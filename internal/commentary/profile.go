package commentary

import (
	"errors"
	"fmt"
	"strings"

	"pitchside/internal/textutil"
)

// ErrUnsupportedLanguage is returned when no profile exists for a language code.
var ErrUnsupportedLanguage = errors.New("unsupported commentary language")

// EventRule maps an event tag to the keyword pattern that detects it. Patterns
// use Go regexp syntax without word boundaries; boundaries are applied with
// Unicode word semantics when the profile is built.
type EventRule struct {
	Tag     string
	Pattern string
}

type eventMatcher struct {
	tag  string
	rule *rule
}

type nameMatcher struct {
	name string
	rule *rule
}

// Profile is the immutable rule set for one commentary language: ordered event
// rules plus the known player and team names. A Profile is safe for concurrent
// use and is never modified after construction.
type Profile struct {
	code    string
	events  []eventMatcher
	players []nameMatcher
	teams   []nameMatcher
}

// NewProfile compiles a profile. Event rule order is significant: it is the
// order occurrences are reported in and the priority used when a timeline
// entry is projected to a single highlight type.
func NewProfile(code string, events []EventRule, players, teams []string) (*Profile, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.New("profile code is required")
	}
	p := &Profile{code: code}
	seenTags := make(map[string]struct{}, len(events))
	for _, ev := range events {
		tag := strings.TrimSpace(ev.Tag)
		if tag == "" {
			return nil, fmt.Errorf("profile %s: event rule missing tag", code)
		}
		if _, dup := seenTags[tag]; dup {
			return nil, fmt.Errorf("profile %s: duplicate event tag %q", code, tag)
		}
		seenTags[tag] = struct{}{}
		r, err := compileRule(ev.Pattern, wordBounded)
		if err != nil {
			return nil, fmt.Errorf("profile %s: event %s: %w", code, tag, err)
		}
		p.events = append(p.events, eventMatcher{tag: tag, rule: r})
	}
	var err error
	if p.players, err = compileNames(nil, players); err != nil {
		return nil, fmt.Errorf("profile %s: players: %w", code, err)
	}
	if p.teams, err = compileNames(nil, teams); err != nil {
		return nil, fmt.Errorf("profile %s: teams: %w", code, err)
	}
	return p, nil
}

func compileNames(existing []nameMatcher, names []string) ([]nameMatcher, error) {
	out := make([]nameMatcher, len(existing), len(existing)+len(names))
	copy(out, existing)
	seen := make(map[string]struct{}, len(out)+len(names))
	for _, m := range out {
		seen[textutil.FoldKey(m.name)] = struct{}{}
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := textutil.FoldKey(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		r, err := compileRule(literalPattern(name), wordBounded)
		if err != nil {
			return nil, err
		}
		out = append(out, nameMatcher{name: name, rule: r})
	}
	return out, nil
}

// Extend returns a copy of the profile with extra player and team names
// appended after the built-in ones. Names already present (ignoring case) are
// skipped. The receiver is left unchanged.
func (p *Profile) Extend(players, teams []string) (*Profile, error) {
	if len(players) == 0 && len(teams) == 0 {
		return p, nil
	}
	clone := &Profile{code: p.code, events: p.events}
	var err error
	if clone.players, err = compileNames(p.players, players); err != nil {
		return nil, fmt.Errorf("profile %s: players: %w", p.code, err)
	}
	if clone.teams, err = compileNames(p.teams, teams); err != nil {
		return nil, fmt.Errorf("profile %s: teams: %w", p.code, err)
	}
	return clone, nil
}

// Code returns the ISO 639-1 code the profile was registered under.
func (p *Profile) Code() string { return p.code }

// EventTags returns the event tags in rule order.
func (p *Profile) EventTags() []string {
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.tag
	}
	return out
}

// Players returns the known player names.
func (p *Profile) Players() []string { return names(p.players) }

// Teams returns the known team names.
func (p *Profile) Teams() []string { return names(p.teams) }

func names(matchers []nameMatcher) []string {
	out := make([]string, len(matchers))
	for i, m := range matchers {
		out[i] = m.name
	}
	return out
}
