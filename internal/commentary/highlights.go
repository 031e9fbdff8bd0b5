package commentary

import "strings"

// Highlight is the simplified projection of a timeline entry consumed by
// advertisement targeting.
type Highlight struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// Highlights projects every entry that carries at least one event tag. The
// type is the entry's first tag; since events are gathered in rule order this
// is the highest-priority event near the timestamp.
func Highlights(entries []TimelineEntry) []Highlight {
	var out []Highlight
	for _, entry := range entries {
		if len(entry.EventTags) == 0 {
			continue
		}
		out = append(out, Highlight{
			Type:        entry.EventTags[0],
			Description: entry.Context,
			Timestamp:   entry.Label(),
		})
	}
	return out
}

var (
	// GoalKeywords select scoring moments.
	GoalKeywords = []string{"goal", "score"}
	// HighlightKeywords select moments worth an advertisement slot.
	HighlightKeywords = []string{"goal", "score", "card", "assist"}
)

// FilterHighlights keeps highlights whose type contains any keyword,
// compared case-insensitively.
func FilterHighlights(highlights []Highlight, keywords ...string) []Highlight {
	var out []Highlight
	for _, h := range highlights {
		if h.Matches(keywords...) {
			out = append(out, h)
		}
	}
	return out
}

// Matches reports whether the highlight type contains any keyword.
func (h Highlight) Matches(keywords ...string) bool {
	kind := strings.ToLower(h.Type)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(kind, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
