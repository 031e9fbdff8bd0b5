package whisperx

import (
	"fmt"
	"strings"
)

// FormatCommentary renders segments as "M:SS text" lines so the commentary
// engine sees a timestamp at the start of each utterance.
func FormatCommentary(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.Join(strings.Fields(seg.Text), " ")
		if text == "" {
			continue
		}
		lines = append(lines, FormatClock(seg.Start)+" "+text)
	}
	return strings.Join(lines, "\n")
}

// FormatClock renders seconds as minutes and zero-padded seconds.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// SegmentCoverage returns the share of duration covered by segments with
// text, clamped to [0,1]. Overlapping segments are merged.
func SegmentCoverage(segments []Segment, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	covered := 0.0
	reach := 0.0
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) == "" || seg.End <= seg.Start {
			continue
		}
		start := max(seg.Start, reach)
		if seg.End > start {
			covered += seg.End - start
		}
		reach = max(reach, seg.End)
	}
	return min(covered/duration, 1)
}
