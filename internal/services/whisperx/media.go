package whisperx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pitchside/internal/logging"
	"pitchside/internal/media/audio"
	"pitchside/internal/services"
)

// Transcript is the result of turning a match video into commentary text.
type Transcript struct {
	// Text holds "M:SS text" lines ready for commentary analysis.
	Text        string            `json:"text"`
	Language    string            `json:"language"`
	Model       string            `json:"model"`
	Stream      string            `json:"stream"`
	Segments    []Segment         `json:"segments"`
	Diagnostics audio.Diagnostics `json:"diagnostics"`
	// Coverage is the share of audio covered by transcribed speech.
	Coverage float64 `json:"coverage"`
	Cached   bool    `json:"cached"`
}

// TranscribeMedia extracts the commentary stream of a video, transcribes it,
// and formats the result with per-segment timestamps. Finished transcripts
// are cached by content when a cache directory is configured.
func (s *Service) TranscribeMedia(ctx context.Context, mediaPath, language string) (Transcript, error) {
	if _, err := os.Stat(mediaPath); err != nil {
		return Transcript{}, services.Wrap(services.ErrValidation, "transcription", "open media", mediaPath, err)
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	logger := s.logger.With(logging.String(logging.FieldSource, filepath.Base(mediaPath)), logging.String(logging.FieldLanguage, language))

	if s.cache == nil {
		transcript, err := s.transcribeMedia(ctx, mediaPath, language)
		return transcript, classifyTranscriptionError(ctx, err)
	}

	key, err := s.cache.Key(mediaPath, language, s.Model())
	if err != nil {
		return Transcript{}, services.Wrap(services.ErrExternalTool, "transcription", "cache key", "", err)
	}
	unlock, err := s.cache.Lock(ctx, key)
	if err != nil {
		return Transcript{}, classifyTranscriptionError(ctx, err)
	}
	defer unlock()

	if cached, ok, err := s.cache.Load(key); err != nil {
		logging.WarnWithContext(logger, "transcript cache read failed", "transcript_cache_read_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "transcribing again"),
		)
	} else if ok {
		logger.Info("transcript cache hit", logging.String("key", key))
		return cached, nil
	}

	transcript, err := s.transcribeMedia(ctx, mediaPath, language)
	if err != nil {
		return Transcript{}, classifyTranscriptionError(ctx, err)
	}
	if err := s.cache.Store(key, transcript); err != nil {
		logging.WarnWithContext(logger, "transcript cache write failed", "transcript_cache_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "next run transcribes again"),
		)
	}
	return transcript, nil
}

func (s *Service) transcribeMedia(ctx context.Context, mediaPath, language string) (Transcript, error) {
	start := time.Now()
	logger := s.logger.With(logging.String(logging.FieldSource, filepath.Base(mediaPath)))

	probe, err := s.inspect(ctx, mediaPath)
	if err != nil {
		return Transcript{}, services.Wrap(services.ErrExternalTool, "transcription", "inspect media", "", err)
	}
	selection := audio.SelectCommentary(probe.Streams, language)
	if !selection.Found() {
		return Transcript{}, services.Wrap(services.ErrValidation, "transcription", "select audio", "media has no audio stream", nil)
	}
	logger.Debug("selected audio stream",
		logging.Int("index", selection.Index),
		logging.String("stream", selection.Label()),
		logging.Bool("language_match", selection.LanguageMatch),
		logging.Int("sample_rate_hz", selection.Stream.SampleRateHz()),
		logging.Int("audio_streams", probe.AudioStreamCount()),
	)

	workDir := filepath.Join(s.workRoot(), "transcribe-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return Transcript{}, services.Wrap(services.ErrConfiguration, "transcription", "work dir", "", err)
	}
	defer os.RemoveAll(workDir)

	wavPath := filepath.Join(workDir, "commentary.wav")
	if err := s.extractAudio(ctx, mediaPath, selection.Index, wavPath); err != nil {
		return Transcript{}, services.Wrap(services.ErrExternalTool, "transcription", "extract audio", "", err)
	}

	threshold := s.cfg.QuietThresholdDB
	if threshold == 0 {
		threshold = audio.DefaultQuietThresholdDB
	}
	diag, err := audio.AnalyzeWAVFile(wavPath, threshold)
	if err != nil {
		logging.WarnWithContext(logger, "audio diagnostics unavailable", "audio_diagnostics_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "quality report omitted"),
		)
	} else if !diag.HasPotentialSpeech {
		logging.WarnWithContext(logger, "audio may not contain commentary", "audio_low_speech",
			logging.Float64("volume_db", diag.VolumeDB),
			logging.Float64("speech_ratio", diag.SpeechRatio),
			logging.Bool("quiet", diag.IsQuiet),
			logging.String(logging.FieldImpact, "transcript may be empty"),
		)
	}

	result, err := s.TranscribeFile(ctx, wavPath, workDir, language)
	if err != nil {
		return Transcript{}, err
	}
	text := FormatCommentary(result.Segments)
	if text == "" {
		return Transcript{}, services.Wrap(services.ErrNotFound, "transcription", "transcribe", "no speech detected", nil)
	}

	transcript := Transcript{
		Text:        text,
		Language:    language,
		Model:       s.Model(),
		Stream:      selection.Label(),
		Segments:    result.Segments,
		Diagnostics: diag,
		Coverage:    SegmentCoverage(result.Segments, diag.DurationSeconds),
	}
	logger.Info("transcription complete",
		logging.Int("segments", len(result.Segments)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return transcript, nil
}

func (s *Service) workRoot() string {
	if s.cfg.WorkDir != "" {
		return s.cfg.WorkDir
	}
	return os.TempDir()
}

func classifyTranscriptionError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, "transcription", "transcribe media", "timed out", err)
	}
	for _, marker := range []error{services.ErrValidation, services.ErrNotFound, services.ErrExternalTool, services.ErrConfiguration, services.ErrTimeout} {
		if errors.Is(err, marker) {
			return err
		}
	}
	return services.Wrap(services.ErrExternalTool, "transcription", "transcribe media", "", err)
}
