package api

import (
	"pitchside/internal/adtarget"
	"pitchside/internal/commentary"
)

// AnalyzeRequest carries commentary text to analyze.
type AnalyzeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
	// Window overrides the correlation window when set.
	Window *int `json:"window,omitempty"`
	// Source names where the text came from (file path, "stdin", "http").
	Source string `json:"source,omitempty"`
}

// AnalyzeResponse holds the analysis of one commentary text.
type AnalyzeResponse struct {
	AnalysisID string                  `json:"analysisId"`
	Language   string                  `json:"language"`
	Window     int                     `json:"window"`
	Rows       []commentary.DisplayRow `json:"rows"`
	Highlights []commentary.Highlight  `json:"highlights"`
	Summary    AnalysisSummary         `json:"summary"`
}

// AnalysisSummary counts what the analysis found.
type AnalysisSummary struct {
	Timestamps int `json:"timestamps"`
	Highlights int `json:"highlights"`
	Goals      int `json:"goals"`
	Mentions   int `json:"generalMentions"`
}

// HighlightsResponse lists highlights and the ad placements planned for goals.
type HighlightsResponse struct {
	AnalysisID string                 `json:"analysisId"`
	Language   string                 `json:"language"`
	Highlights []commentary.Highlight `json:"highlights"`
	Goals      []commentary.Highlight `json:"goals"`
	Placements []adtarget.Placement   `json:"placements"`
}

// ProfileInfo describes the vocabulary of one language profile.
type ProfileInfo struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	EventTags []string `json:"eventTags"`
	Players   []string `json:"players"`
	Teams     []string `json:"teams"`
}

// ProfilesResponse wraps the registered profiles.
type ProfilesResponse struct {
	Profiles []ProfileInfo `json:"profiles"`
}

// DependencyStatus captures availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// StatusResponse summarizes what the installation can do.
type StatusResponse struct {
	Languages         []string           `json:"languages"`
	DefaultLanguage   string             `json:"defaultLanguage"`
	EntityRecognition bool               `json:"entityRecognition"`
	EntityCheck       string             `json:"entityCheck,omitempty"`
	Dependencies      []DependencyStatus `json:"dependencies"`
}

// ErrorResponse is the body of every non-2xx HTTP reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Status    int    `json:"status"`
	RequestID string `json:"requestId,omitempty"`
}
