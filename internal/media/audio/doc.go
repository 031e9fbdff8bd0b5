// Package audio chooses the commentary stream of a match video and reports
// quality diagnostics for the extracted WAV.
//
// SelectCommentary ranks ffprobe audio streams by language tag, commentary
// title, and channel layout. AnalyzeWAVFile measures overall loudness in
// dBFS, flags quiet audio (below -30 dB by default), and estimates the share
// of non-silent seconds so callers can warn before spending minutes on a
// transcription that will come back empty.
package audio
