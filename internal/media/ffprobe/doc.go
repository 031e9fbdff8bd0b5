// Package ffprobe wraps the ffprobe CLI and decodes its JSON stream and
// format report.
//
// Transcription uses it to find the audio streams of a match video before
// extracting one of them for WhisperX.
package ffprobe
