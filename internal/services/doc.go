// Package services defines shared utilities consumed by the analysis pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers, the commentary
//     language, and the commentary source for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into HTTP statuses and recoverable (fallback) versus fatal outcomes.
//
// Use these helpers when wiring new collaborators so operational behaviour
// (error handling, observability, fallbacks) stays uniform.
package services
