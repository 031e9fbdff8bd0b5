package nlp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"pitchside/internal/logging"
	"pitchside/internal/services"
	"pitchside/internal/services/llm"
)

// Entity labels returned by the recognizer.
const (
	LabelPerson       = "PERSON"
	LabelOrganization = "ORGANIZATION"
	LabelLocation     = "LOCATION"
	LabelOther        = "OTHER"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultPerMinute     = 60
	maxInputRunes        = 5000
	recognitionOperation = "recognize entities"
)

// Entity is a single named entity detected by the cloud model.
type Entity struct {
	Text  string  `json:"text"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Completer issues JSON-only chat completions.
type Completer interface {
	Configured() bool
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Recognizer asks an LLM for person and organization entities in short
// commentary snippets.
type Recognizer struct {
	client  Completer
	limiter *rate.Limiter
	timeout time.Duration
	logger  *slog.Logger
}

// Option customizes a Recognizer.
type Option func(*Recognizer)

// WithTimeout bounds a single recognition call.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Recognizer) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithRequestsPerMinute paces outgoing requests.
func WithRequestsPerMinute(perMinute int) Option {
	return func(r *Recognizer) {
		if perMinute > 0 {
			r.limiter = newLimiter(perMinute)
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recognizer) {
		if logger != nil {
			r.logger = logging.NewComponentLogger(logger, "nlp")
		}
	}
}

// NewRecognizer wraps a completion client. A nil client yields a recognizer
// that always reports services.ErrUnavailable.
func NewRecognizer(client Completer, opts ...Option) *Recognizer {
	r := &Recognizer{
		client:  client,
		limiter: newLimiter(defaultPerMinute),
		timeout: defaultTimeout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFromLLMConfig builds a recognizer backed by an llm.Client.
func NewFromLLMConfig(cfg llm.Config, perMinute int, opts ...Option) *Recognizer {
	client := llm.NewClient(cfg)
	opts = append([]Option{WithRequestsPerMinute(perMinute)}, opts...)
	if cfg.TimeoutSeconds > 0 {
		opts = append([]Option{WithTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)}, opts...)
	}
	return NewRecognizer(client, opts...)
}

func newLimiter(perMinute int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// Available reports whether recognition requests can be issued.
func (r *Recognizer) Available() bool {
	return r != nil && r.client != nil && r.client.Configured()
}

// Ping verifies the backing model answers. Clients without a health check
// are treated as healthy once configured.
func (r *Recognizer) Ping(ctx context.Context) error {
	if !r.Available() {
		return services.Wrap(services.ErrUnavailable, "nlp", "health check", "entity recognition not configured", nil)
	}
	checker, ok := r.client.(healthChecker)
	if !ok {
		return nil
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	if err := checker.HealthCheck(ctx); err != nil {
		return services.Wrap(services.ErrExternalTool, "nlp", "health check", "", err)
	}
	return nil
}

// RecognizeEntities returns the entities found in text. Scores are clamped to
// [0,1] and unknown labels are reported as OTHER.
func (r *Recognizer) RecognizeEntities(ctx context.Context, text string) ([]Entity, error) {
	if !r.Available() {
		return nil, services.Wrap(services.ErrUnavailable, "nlp", recognitionOperation, "entity recognition not configured", nil)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, services.Wrap(services.ErrTimeout, "nlp", recognitionOperation, "rate limit wait", err)
	}

	content, err := r.client.CompleteJSON(ctx, systemPrompt, truncateInput(text))
	if err != nil {
		logging.WarnWithContext(r.logger, "entity recognition failed", "nlp_request_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "falling back to local player patterns"),
		)
		return nil, err
	}

	var payload struct {
		Entities []Entity `json:"entities"`
	}
	if err := llm.DecodeLLMJSON(content, &payload); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "nlp", recognitionOperation, "parse payload", err)
	}
	entities := make([]Entity, 0, len(payload.Entities))
	for _, entity := range payload.Entities {
		entity.Text = strings.TrimSpace(entity.Text)
		if entity.Text == "" {
			continue
		}
		entity.Label = normalizeLabel(entity.Label)
		entity.Score = clamp(entity.Score)
		entities = append(entities, entity)
	}
	r.logger.Debug("entities recognized", logging.Int("count", len(entities)))
	return entities, nil
}

// People returns the PERSON entities scoring strictly above minScore.
func People(entities []Entity, minScore float64) []Entity {
	var out []Entity
	for _, entity := range entities {
		if entity.Label == LabelPerson && entity.Score > minScore {
			out = append(out, entity)
		}
	}
	return out
}

func normalizeLabel(label string) string {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "PERSON", "PER", "PLAYER":
		return LabelPerson
	case "ORGANIZATION", "ORG", "TEAM", "CLUB":
		return LabelOrganization
	case "LOCATION", "LOC", "PLACE", "STADIUM":
		return LabelLocation
	default:
		return LabelOther
	}
}

func clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}

func truncateInput(text string) string {
	runes := []rune(text)
	if len(runes) <= maxInputRunes {
		return text
	}
	return string(runes[:maxInputRunes])
}

var systemPrompt = fmt.Sprintf(`You extract named entities from soccer match commentary.
Respond with JSON only, shaped as {"entities":[{"text":"...","label":"...","score":0.0}]}.
Use label %s for people (players, coaches, referees), %s for teams and clubs,
%s for places, %s otherwise. score is your confidence between 0 and 1.
Copy entity text exactly as it appears in the input. Return {"entities":[]} when none are present.`,
	LabelPerson, LabelOrganization, LabelLocation, LabelOther)
