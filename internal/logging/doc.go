// Package logging assembles structured slog loggers and formatting helpers used
// across pitchside.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so analysis and transcription
// code can tag log lines with the commentary language, source, and correlation
// ID. The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
