package commentary

import (
	"strings"

	"pitchside/internal/textutil"
)

const (
	// GeneralMention is shown for timestamps with nothing recognized nearby.
	GeneralMention = "General mention"
	// ContextLimit is the number of context characters kept in a display row.
	ContextLimit = 100

	ellipsis = "..."
)

// DisplayRow is the presentation form of a TimelineEntry.
type DisplayRow struct {
	Time    string `json:"time"`
	Tags    string `json:"tags"`
	Context string `json:"context"`
}

// FormatRows renders entries for display, preserving their order.
func FormatRows(entries []TimelineEntry) []DisplayRow {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]DisplayRow, len(entries))
	for i, entry := range entries {
		rows[i] = FormatRow(entry)
	}
	return rows
}

// FormatRow renders a single entry.
func FormatRow(entry TimelineEntry) DisplayRow {
	tags := GeneralMention
	if all := entry.Tags(); len(all) > 0 {
		tags = strings.Join(all, ", ")
	}
	return DisplayRow{
		Time:    entry.Label(),
		Tags:    tags,
		Context: textutil.Truncate(entry.Context, ContextLimit, ellipsis),
	}
}
