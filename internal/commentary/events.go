package commentary

import "pitchside/internal/textutil"

// ExtractEvents scans text with every event rule of the profile, in rule
// order. Rules are independent: a span matched by one rule may also be matched
// by another and both occurrences are kept.
func ExtractEvents(text string, profile *Profile) []Occurrence {
	if text == "" || profile == nil {
		return nil
	}
	idx := textutil.NewRuneOffsets(text)
	var out []Occurrence
	for _, ev := range profile.events {
		for _, sp := range ev.rule.findAll(text) {
			out = append(out, Occurrence{
				Text:     text[sp.start:sp.end],
				Category: CategoryEventType,
				Start:    idx.At(sp.start),
				End:      idx.At(sp.end),
				Payload:  ev.tag,
			})
		}
	}
	return out
}
