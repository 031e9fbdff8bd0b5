package api

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"pitchside/internal/config"
	"pitchside/internal/deps"
	"pitchside/internal/services"
	"pitchside/internal/services/whisperx"
)

// Transcriber turns a match video into commentary text.
type Transcriber interface {
	TranscribeMedia(ctx context.Context, mediaPath, language string) (whisperx.Transcript, error)
}

// TranscribeRequest describes a video to transcribe.
type TranscribeRequest struct {
	MediaPath string
	Language  string
	// Analyze runs commentary analysis over the transcript.
	Analyze bool
	Window  *int
}

// TranscribeResult pairs a transcript with its optional analysis.
type TranscribeResult struct {
	Transcript whisperx.Transcript `json:"transcript"`
	Analysis   *AnalyzeResponse    `json:"analysis,omitempty"`
}

// NewTranscriber builds the WhisperX service described by cfg.
func NewTranscriber(cfg *config.Config, logger *slog.Logger) *whisperx.Service {
	cacheDir := ""
	if cfg.Transcription.CacheEnabled {
		cacheDir = cfg.Paths.TranscriptCacheDir
	}
	return whisperx.NewService(whisperx.Config{
		Model:            cfg.Transcription.WhisperXModel,
		CUDAEnabled:      cfg.Transcription.WhisperXCUDAEnabled,
		VADMethod:        cfg.Transcription.WhisperXVADMethod,
		HFToken:          cfg.Transcription.WhisperXHuggingFace,
		WorkDir:          cfg.Paths.WorkDir,
		CacheDir:         cacheDir,
		Timeout:          cfg.TranscriptionTimeout(),
		QuietThresholdDB: cfg.Transcription.QuietThresholdDB,
	}, cfg.FFmpegBinary(), cfg.FFprobeBinary(), logger)
}

// CheckTranscriptionDependencies reports which transcription binaries are missing.
func CheckTranscriptionDependencies(cfg *config.Config) error {
	statuses := deps.CheckBinaries(deps.TranscriptionRequirements(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
	if missing := deps.Missing(statuses); len(missing) > 0 {
		return services.Wrap(services.ErrConfiguration, "transcription", "check dependencies", "", deps.MissingError(missing))
	}
	return nil
}

// TranscribeAndAnalyze transcribes a video and, when requested, analyzes the
// transcript in the same language.
func (s *AnalysisService) TranscribeAndAnalyze(ctx context.Context, transcriber Transcriber, req TranscribeRequest) (TranscribeResult, error) {
	path := strings.TrimSpace(req.MediaPath)
	if path == "" {
		return TranscribeResult{}, services.Wrap(services.ErrValidation, "transcription", "validate", "media path required", nil)
	}
	code := s.resolveLanguage(req.Language)
	ctx = services.WithSource(services.WithLanguage(ctx, code), filepath.Base(path))

	transcript, err := transcriber.TranscribeMedia(ctx, path, code)
	if err != nil {
		return TranscribeResult{}, err
	}
	result := TranscribeResult{Transcript: transcript}
	if !req.Analyze {
		return result, nil
	}
	analysis, err := s.Analyze(ctx, AnalyzeRequest{
		Text:     transcript.Text,
		Language: code,
		Window:   req.Window,
		Source:   filepath.Base(path),
	})
	if err != nil {
		return TranscribeResult{}, err
	}
	result.Analysis = &analysis
	return result, nil
}

// DependencyReport checks every external binary the installation may use.
func DependencyReport(cfg *config.Config) []DependencyStatus {
	return FromDependencyStatuses(deps.CheckBinaries(deps.TranscriptionRequirements(cfg.FFmpegBinary(), cfg.FFprobeBinary())))
}

// Status summarizes languages, collaborators, and dependencies.
func (s *AnalysisService) Status(cfg *config.Config) StatusResponse {
	return StatusResponse{
		Languages:         SortedLanguages(s.Languages()),
		DefaultLanguage:   s.defaultLanguage,
		EntityRecognition: s.entityEnabled,
		Dependencies:      DependencyReport(cfg),
	}
}
