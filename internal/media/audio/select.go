package audio

import (
	"strconv"
	"strings"

	"pitchside/internal/language"
	"pitchside/internal/media/ffprobe"
)

// Selection describes the audio stream chosen for transcription.
type Selection struct {
	Stream ffprobe.Stream
	// Index is the container stream index, or -1 when no audio exists.
	Index int
	// LanguageMatch reports whether the stream is tagged with the requested language.
	LanguageMatch bool
}

// Found reports whether any audio stream was selected.
func (s Selection) Found() bool {
	return s.Index >= 0
}

// Label returns a human-readable summary of the selected stream.
func (s Selection) Label() string {
	if !s.Found() {
		return ""
	}
	return formatStreamSummary(s.Stream)
}

// SelectCommentary picks the stream most likely to carry spoken match
// commentary in the requested language. Streams tagged with that language
// win, then streams titled as commentary, then speech-friendly channel
// layouts, then the default disposition. Earlier streams win ties.
func SelectCommentary(streams []ffprobe.Stream, lang string) Selection {
	want := language.ToISO2(lang)
	best := Selection{Index: -1}
	bestScore := 0.0
	order := 0
	for _, stream := range streams {
		if !stream.IsAudio() {
			continue
		}
		cand := newCandidate(stream, order, want)
		order++
		if score := cand.score(); !best.Found() || score > bestScore {
			best = Selection{Stream: stream, Index: stream.Index, LanguageMatch: cand.languageMatch}
			bestScore = score
		}
	}
	return best
}

type candidate struct {
	order          int
	languageMatch  bool
	commentary     bool
	channels       int
	defaultFlagged bool
}

func newCandidate(stream ffprobe.Stream, order int, want string) candidate {
	tagged := language.ToISO2(stream.Tag("language", "LANGUAGE", "language_ietf"))
	title := strings.ToLower(stream.Tag("title", "TITLE", "handler_name"))
	return candidate{
		order:          order,
		languageMatch:  want != "" && tagged == want,
		commentary:     strings.Contains(title, "comment") || strings.Contains(title, "comentar"),
		channels:       channelCount(stream),
		defaultFlagged: stream.Disposition["default"] == 1,
	}
}

func (c candidate) score() float64 {
	score := 0.0
	if c.languageMatch {
		score += 1000
	}
	if c.commentary {
		score += 100
	}
	// Surround mixes bury the commentator under crowd noise.
	if c.channels > 0 && c.channels <= 2 {
		score += 20
	}
	if c.defaultFlagged {
		score += 5
	}
	score -= float64(c.order) * 0.1
	return score
}

func channelCount(stream ffprobe.Stream) int {
	if stream.Channels > 0 {
		return stream.Channels
	}
	layout := strings.ToLower(strings.TrimSpace(stream.ChannelLayout))
	switch {
	case layout == "mono":
		return 1
	case layout == "stereo":
		return 2
	case strings.HasPrefix(layout, "7.1"):
		return 8
	case strings.HasPrefix(layout, "5.1"):
		return 6
	}
	return 0
}

func formatStreamSummary(stream ffprobe.Stream) string {
	parts := make([]string, 0, 4)
	if lang := stream.Tag("language", "LANGUAGE"); lang != "" {
		parts = append(parts, strings.ToLower(lang))
	}
	codec := stream.CodecLong
	if codec == "" {
		codec = stream.CodecName
	}
	if codec != "" {
		parts = append(parts, codec)
	}
	if stream.Channels > 0 {
		parts = append(parts, strconv.Itoa(stream.Channels)+"ch")
	}
	if title := stream.Tag("title"); title != "" {
		parts = append(parts, title)
	}
	if len(parts) == 0 {
		return "audio"
	}
	return strings.Join(parts, " | ")
}
