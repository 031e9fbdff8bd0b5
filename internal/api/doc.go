// Package api defines the transport DTOs and the AnalysisService shared by the
// CLI and the HTTP server.
//
// # Key Types
//
// AnalyzeRequest/AnalyzeResponse: commentary text in, display rows and
// highlights out.
//
// HighlightsResponse: highlights plus the merchandise placements planned for
// goals.
//
// ProfileInfo: the vocabulary of one language profile after overrides.
//
// StatusResponse: dependency availability and optional collaborator state.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Rows and highlights reuse the commentary
// package's JSON form so CLI --json output and HTTP responses match.
//
// Every analysis is stamped with a correlation ID that is attached to the
// request context and echoed in the response.
package api
