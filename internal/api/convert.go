package api

import (
	"slices"
	"strings"

	"pitchside/internal/commentary"
	"pitchside/internal/deps"
	"pitchside/internal/language"
)

// FromProfile converts a commentary profile to its API representation.
func FromProfile(profile *commentary.Profile) ProfileInfo {
	if profile == nil {
		return ProfileInfo{}
	}
	return ProfileInfo{
		Code:      profile.Code(),
		Name:      language.DisplayName(profile.Code()),
		EventTags: profile.EventTags(),
		Players:   profile.Players(),
		Teams:     profile.Teams(),
	}
}

// FromDependencyStatuses converts dependency checks into API DTOs.
func FromDependencyStatuses(statuses []deps.Status) []DependencyStatus {
	if len(statuses) == 0 {
		return nil
	}
	out := make([]DependencyStatus, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, DependencyStatus{
			Name:        status.Name,
			Command:     status.Command,
			Description: status.Description,
			Optional:    status.Optional,
			Available:   status.Available,
			Detail:      status.Detail,
		})
	}
	return out
}

// Summarize counts timestamps, highlights, goals, and general mentions.
func Summarize(rows []commentary.DisplayRow, highlights []commentary.Highlight) AnalysisSummary {
	summary := AnalysisSummary{
		Timestamps: len(rows),
		Highlights: len(highlights),
		Goals:      len(commentary.FilterHighlights(highlights, commentary.GoalKeywords...)),
	}
	for _, row := range rows {
		if row.Tags == commentary.GeneralMention {
			summary.Mentions++
		}
	}
	return summary
}

// SortedLanguages returns language codes in stable display order.
func SortedLanguages(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if code = strings.TrimSpace(code); code != "" {
			out = append(out, code)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
