package commentary

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pitchside/internal/logging"
	"pitchside/internal/services"
)

// ErrExtractionFault reports an internal failure while running the matchers.
// No partial output accompanies it.
var ErrExtractionFault = errors.New("commentary extraction fault")

// ProgressFunc receives completion percentages at fixed checkpoints.
type ProgressFunc func(percent int, stage string)

// Analysis stages reported through ProgressFunc.
const (
	StageStart      = "start"
	StageTimestamps = "timestamps"
	StageEvents     = "events"
	StageEntities   = "entities"
	StageCorrelate  = "correlate"
	StageDone       = "done"
)

// Analyzer runs the full annotation pipeline for one language profile.
// It holds no per-call state and may be shared between goroutines.
type Analyzer struct {
	profile  *Profile
	window   int
	progress ProgressFunc
	logger   *slog.Logger
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithWindow overrides the proximity window.
func WithWindow(window int) Option {
	return func(a *Analyzer) {
		if window >= 0 {
			a.window = window
		}
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(a *Analyzer) { a.progress = fn }
}

// WithLogger attaches a logger for debug summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// NewAnalyzer builds an analyzer bound to profile.
func NewAnalyzer(profile *Profile, opts ...Option) (*Analyzer, error) {
	if profile == nil {
		return nil, services.Wrap(services.ErrValidation, "analysis", "init", "language profile is required", nil)
	}
	a := &Analyzer{profile: profile, window: DefaultWindow}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logging.NewComponentLogger(a.logger, "commentary")
	return a, nil
}

// Profile returns the language profile the analyzer is bound to.
func (a *Analyzer) Profile() *Profile { return a.profile }

// Window returns the proximity window in characters.
func (a *Analyzer) Window() int { return a.window }

// Analyze returns display rows for text. Blank text yields no rows and no error.
func (a *Analyzer) Analyze(text string) ([]DisplayRow, error) {
	entries, err := a.Timeline(text)
	if err != nil {
		return nil, err
	}
	return FormatRows(entries), nil
}

// Timeline returns the correlated entries behind Analyze. Faults raised by the
// matchers are recovered and reported as ErrExtractionFault.
func (a *Analyzer) Timeline(text string) (entries []TimelineEntry, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	stage := StageStart
	defer func() {
		if r := recover(); r != nil {
			entries = nil
			err = services.Wrap(services.ErrExtraction, "analysis", stage, "matcher fault",
				fmt.Errorf("%w: %v", ErrExtractionFault, r))
			logging.ErrorWithContext(a.logger, "commentary analysis failed", "analysis_fault",
				logging.String(logging.FieldStage, stage),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "report the commentary text that triggered the fault"),
			)
		}
	}()

	a.report(0, stage)

	stage = StageTimestamps
	timestamps := ExtractTimestamps(text)
	a.report(25, stage)

	stage = StageEvents
	events := ExtractEvents(text, a.profile)
	a.report(50, stage)

	stage = StageEntities
	entities := ExtractEntities(text, a.profile)
	a.report(75, stage)

	stage = StageCorrelate
	entries = Correlate(timestamps, events, entities, text, a.window)
	a.report(90, stage)

	a.logger.Debug("commentary analyzed",
		logging.String(logging.FieldLanguage, a.profile.Code()),
		logging.Int("timestamps", len(timestamps)),
		logging.Int("events", len(events)),
		logging.Int("entities", len(entities)),
		logging.Int("entries", len(entries)),
	)
	stage = StageDone
	a.report(100, stage)
	return entries, nil
}

func (a *Analyzer) report(percent int, stage string) {
	if a.progress != nil {
		a.progress(percent, stage)
	}
}
