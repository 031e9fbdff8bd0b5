package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"pitchside/internal/adtarget"
	"pitchside/internal/commentary"
	"pitchside/internal/config"
	"pitchside/internal/language"
	"pitchside/internal/logging"
	"pitchside/internal/services"
	"pitchside/internal/services/llm"
	"pitchside/internal/services/nlp"
)

// Observer receives the outcome of each analysis, typically for metrics.
type Observer interface {
	ObserveAnalysis(operation, language string, rows, highlights int, elapsed time.Duration, err error)
}

// AnalysisService runs commentary analysis for the CLI and the HTTP server.
type AnalysisService struct {
	registry        *commentary.Registry
	targeter        *adtarget.Targeter
	defaultLanguage string
	window          int
	entityEnabled   bool
	recognizer      *nlp.Recognizer
	logger          *slog.Logger
	observer        Observer
}

// ServiceOption customizes an AnalysisService.
type ServiceOption func(*AnalysisService)

// WithObserver reports every analysis to o.
func WithObserver(o Observer) ServiceOption {
	return func(s *AnalysisService) { s.observer = o }
}

// WithTargeter replaces the advertisement targeter built from config.
func WithTargeter(t *adtarget.Targeter) ServiceOption {
	return func(s *AnalysisService) {
		if t != nil {
			s.targeter = t
		}
	}
}

// NewAnalysisService builds the service from configuration: profile overrides
// are loaded into the registry and, when enabled, cloud entity recognition is
// attached to the advertisement targeter.
func NewAnalysisService(cfg *config.Config, logger *slog.Logger, opts ...ServiceOption) (*AnalysisService, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "analysis", "init", "config required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	overrides, err := commentary.LoadOverrides(cfg.Paths.ProfileOverrides)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "analysis", "load profile overrides", "", err)
	}
	registry, err := commentary.NewRegistry(overrides)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "analysis", "build profiles", "", err)
	}

	targetOpts := []adtarget.Option{
		adtarget.WithDisplaySeconds(cfg.Advertising.DisplaySeconds),
		adtarget.WithFeaturedPlayer(cfg.Advertising.FeaturedPlayer),
		adtarget.WithLogger(logger),
	}
	entityEnabled := false
	var recognizer *nlp.Recognizer
	if cfg.EntityRecognition.Enabled {
		recognizer = nlp.NewFromLLMConfig(llm.Config(cfg.EntityRecognitionLLM()), cfg.EntityRecognition.RequestsPerMinute, nlp.WithLogger(logger))
		targetOpts = append(targetOpts, adtarget.WithRecognizer(recognizer, cfg.EntityRecognition.MinConfidence))
		entityEnabled = recognizer.Available()
	}

	s := &AnalysisService{
		registry:        registry,
		targeter:        adtarget.NewTargeter(targetOpts...),
		defaultLanguage: cfg.Analysis.Language,
		window:          cfg.Analysis.Window,
		entityEnabled:   entityEnabled,
		recognizer:      recognizer,
		logger:          logging.NewComponentLogger(logger, "analysis"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DefaultLanguage returns the language used when a request names none.
func (s *AnalysisService) DefaultLanguage() string { return s.defaultLanguage }

// EntityRecognitionEnabled reports whether cloud entity recognition is wired.
func (s *AnalysisService) EntityRecognitionEnabled() bool { return s.entityEnabled }

// CheckEntityRecognition asks the configured model to answer a trivial prompt.
func (s *AnalysisService) CheckEntityRecognition(ctx context.Context) error {
	if s.recognizer == nil {
		return services.Wrap(services.ErrUnavailable, "analysis", "check entity recognition", "entity recognition disabled", nil)
	}
	return s.recognizer.Ping(ctx)
}

// Languages returns the codes of every registered profile.
func (s *AnalysisService) Languages() []string { return s.registry.Languages() }

// Profiles describes every registered profile.
func (s *AnalysisService) Profiles() []ProfileInfo {
	codes := s.registry.Languages()
	out := make([]ProfileInfo, 0, len(codes))
	for _, code := range codes {
		profile, err := s.registry.Profile(code)
		if err != nil {
			continue
		}
		out = append(out, FromProfile(profile))
	}
	return out
}

// Analyze extracts the commentary timeline and its highlights.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (resp AnalyzeResponse, err error) {
	start := time.Now()
	code := s.resolveLanguage(req.Language)
	defer func() {
		s.observe("analyze", code, len(resp.Rows), len(resp.Highlights), time.Since(start), err)
	}()

	ctx, analysisID := s.annotate(ctx, code, req.Source)
	entries, window, err := s.timeline(ctx, code, req)
	if err != nil {
		return AnalyzeResponse{}, err
	}
	rows := commentary.FormatRows(entries)
	highlights := commentary.Highlights(entries)
	resp = AnalyzeResponse{
		AnalysisID: analysisID,
		Language:   code,
		Window:     window,
		Rows:       emptyIfNil(rows),
		Highlights: emptyIfNil(highlights),
		Summary:    Summarize(rows, highlights),
	}
	logging.WithContext(ctx, s.logger).Info("commentary analyzed",
		logging.Int("rows", len(resp.Rows)),
		logging.Int("highlights", len(resp.Highlights)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

// Highlights extracts highlights and plans merchandise placements for goals.
func (s *AnalysisService) Highlights(ctx context.Context, req AnalyzeRequest) (resp HighlightsResponse, err error) {
	start := time.Now()
	code := s.resolveLanguage(req.Language)
	defer func() {
		s.observe("highlights", code, 0, len(resp.Highlights), time.Since(start), err)
	}()

	ctx, analysisID := s.annotate(ctx, code, req.Source)
	entries, _, err := s.timeline(ctx, code, req)
	if err != nil {
		return HighlightsResponse{}, err
	}
	highlights := commentary.Highlights(entries)
	resp = HighlightsResponse{
		AnalysisID: analysisID,
		Language:   code,
		Highlights: emptyIfNil(highlights),
		Goals:      emptyIfNil(commentary.FilterHighlights(highlights, commentary.GoalKeywords...)),
		Placements: s.targeter.Plan(ctx, highlights),
	}
	logging.WithContext(ctx, s.logger).Info("highlights planned",
		logging.Int("highlights", len(resp.Highlights)),
		logging.Int("placements", len(resp.Placements)),
	)
	return resp, nil
}

func (s *AnalysisService) timeline(ctx context.Context, code string, req AnalyzeRequest) ([]commentary.TimelineEntry, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, services.Wrap(services.ErrTimeout, "analysis", "start", "request cancelled", err)
	}
	profile, err := s.registry.Profile(code)
	if err != nil {
		return nil, 0, services.Wrap(services.ErrValidation, "analysis", "resolve profile", "", err)
	}
	window := s.window
	if req.Window != nil {
		if *req.Window < 0 {
			return nil, 0, services.Wrap(services.ErrValidation, "analysis", "window", fmt.Sprintf("window must be >= 0, got %d", *req.Window), nil)
		}
		window = *req.Window
	}
	logger := logging.WithContext(ctx, s.logger)
	analyzer, err := commentary.NewAnalyzer(profile,
		commentary.WithWindow(window),
		commentary.WithLogger(logger),
		commentary.WithProgress(logging.ProgressLogger(logger, logging.NewProgressSampler(25))),
	)
	if err != nil {
		return nil, 0, services.Wrap(services.ErrConfiguration, "analysis", "build analyzer", "", err)
	}
	entries, err := analyzer.Timeline(req.Text)
	if err != nil {
		return nil, 0, err
	}
	return entries, analyzer.Window(), nil
}

func (s *AnalysisService) resolveLanguage(requested string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return s.defaultLanguage
	}
	if code := language.ToISO2(requested); code != "" {
		return code
	}
	return requested
}

func (s *AnalysisService) annotate(ctx context.Context, code, source string) (context.Context, string) {
	id, ok := services.RequestIDFromContext(ctx)
	if !ok {
		id = uuid.NewString()
		ctx = services.WithRequestID(ctx, id)
	}
	ctx = services.WithLanguage(ctx, code)
	ctx = services.WithSource(ctx, source)
	return ctx, id
}

func (s *AnalysisService) observe(operation, code string, rows, highlights int, elapsed time.Duration, err error) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveAnalysis(operation, code, rows, highlights, elapsed, err)
}

func emptyIfNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
