// Package whisperx turns match video into timestamped commentary text.
//
// TranscribeMedia inspects the container with ffprobe, picks the commentary
// audio stream, extracts it to mono 16 kHz WAV, reports audio diagnostics,
// runs WhisperX through uvx, and renders the segments as "M:SS text" lines
// for the commentary engine. Finished transcripts are cached by content hash;
// a per-entry file lock keeps concurrent runs from transcribing the same
// media twice.
//
// Configuration options (model, CUDA, VAD method, timeout) are passed via Config.
package whisperx
