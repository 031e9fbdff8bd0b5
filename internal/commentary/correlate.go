package commentary

import (
	"strings"

	"pitchside/internal/textutil"
)

// DefaultWindow is the proximity window, in characters, used to associate
// events and entities with a timestamp.
const DefaultWindow = 50

// TimelineEntry aggregates everything mentioned near one timestamp occurrence.
// Entries are keyed by the timestamp's offsets, so the same label written twice
// yields two entries.
type TimelineEntry struct {
	Timestamp Occurrence
	// EventTags holds unique tags in order of first appearance.
	EventTags []string
	Players   []string
	Teams     []string
	Context   string
}

// Label returns the timestamp text as written in the commentary.
func (e TimelineEntry) Label() string { return e.Timestamp.Text }

// Tags returns event tags, then player names, then team names.
func (e TimelineEntry) Tags() []string {
	out := make([]string, 0, len(e.EventTags)+len(e.Players)+len(e.Teams))
	out = append(out, e.EventTags...)
	out = append(out, e.Players...)
	out = append(out, e.Teams...)
	return out
}

// Correlate builds one entry per timestamp, in the order timestamps were
// extracted. An event or entity belongs to a timestamp when its start is
// within window characters of the timestamp's start, or its end is within
// window of the timestamp's end.
func Correlate(timestamps, events, entities []Occurrence, text string, window int) []TimelineEntry {
	if len(timestamps) == 0 {
		return nil
	}
	if window < 0 {
		window = 0
	}
	runes := []rune(text)
	entries := make([]TimelineEntry, 0, len(timestamps))
	for _, ts := range timestamps {
		entry := TimelineEntry{Timestamp: ts}

		seen := make(map[string]struct{})
		for _, ev := range events {
			if !ev.near(ts, window) {
				continue
			}
			if _, dup := seen[ev.Payload]; dup {
				continue
			}
			seen[ev.Payload] = struct{}{}
			entry.EventTags = append(entry.EventTags, ev.Payload)
		}

		for _, ent := range entities {
			if !ent.near(ts, window) {
				continue
			}
			switch ent.Category {
			case CategoryPersonEntity:
				entry.Players = append(entry.Players, ent.Text)
			case CategoryOrgEntity:
				entry.Teams = append(entry.Teams, ent.Text)
			}
		}

		entry.Context = strings.TrimSpace(textutil.SliceRunes(runes, ts.Start-window, ts.End+window))
		entries = append(entries, entry)
	}
	return entries
}
