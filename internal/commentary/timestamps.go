package commentary

import (
	"regexp"
	"strconv"

	"pitchside/internal/textutil"
)

// Timestamp forms in declaration order. Results are concatenated per form, not
// sorted by position, so an "N'" mark always follows every "MM:SS" mark.
var timestampRules = []*rule{
	mustRule(`\d{1,2}:\d{2}`, wordBounded),
	mustRule(`\d{1,2}:\d{2}:\d{2}`, wordBounded),
	mustRule(`\d{1,3}['’]`, ruleOptions{foldCase: true, leading: true}),
	mustRule(`\d{1,3}\s*min`, wordBounded),
}

// ExtractTimestamps returns every timestamp mark in text. Each form is scanned
// independently, so one span may be reported by more than one form.
func ExtractTimestamps(text string) []Occurrence {
	if text == "" {
		return nil
	}
	idx := textutil.NewRuneOffsets(text)
	var out []Occurrence
	for _, r := range timestampRules {
		for _, sp := range r.findAll(text) {
			raw := text[sp.start:sp.end]
			out = append(out, Occurrence{
				Text:     raw,
				Category: CategoryTimestamp,
				Start:    idx.At(sp.start),
				End:      idx.At(sp.end),
				Payload:  raw,
			})
		}
	}
	return out
}

var (
	clockPattern  = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	minutePattern = regexp.MustCompile(`(?i)^(\d{1,3})(?:['’]|\s*min)$`)
)

// Seconds converts a timestamp label into an offset in seconds. "M:SS" and
// "H:MM:SS" are read as clock positions; "N'" and "N min" as match minutes.
func Seconds(label string) (int, bool) {
	if m := clockPattern.FindStringSubmatch(label); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		if m[3] == "" {
			return a*60 + b, true
		}
		c, _ := strconv.Atoi(m[3])
		return a*3600 + b*60 + c, true
	}
	if m := minutePattern.FindStringSubmatch(label); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n * 60, true
	}
	return 0, false
}
