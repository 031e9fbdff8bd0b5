package adtarget

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"pitchside/internal/commentary"
	"pitchside/internal/logging"
	"pitchside/internal/services/nlp"
)

const (
	defaultMinConfidence  = 0.8
	defaultDisplaySeconds = 6
	defaultFeaturedPlayer = "messi"
)

// Name phrases tried in order when cloud recognition is unavailable or finds
// no catalog player. Matching is case-insensitive.
var playerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:goal by|scored by|assist by)\s+(\pL+(?:\s+\pL+)?)`),
	regexp.MustCompile(`(?i)(\pL+(?:\s+\pL+)?)\s+(?:scores|goal|assist)`),
	regexp.MustCompile(`(?i)(\pL+)\s+(?:with the goal|finds the net)`),
	regexp.MustCompile(`(?i)(\pL+)\s+(?:strikes|nets|converts)`),
	regexp.MustCompile(`(?i)(?:brilliant|amazing|incredible)\s+(?:goal|strike|finish)\s+(?:by|from)\s+(\pL+)`),
}

// EntityRecognizer finds named entities in free text.
type EntityRecognizer interface {
	Available() bool
	RecognizeEntities(ctx context.Context, text string) ([]nlp.Entity, error)
}

// Placement is a timed merchandise overlay for a goal.
type Placement struct {
	TimeSeconds     int     `json:"time"`
	DurationSeconds int     `json:"duration"`
	Timestamp       string  `json:"timestamp"`
	Player          string  `json:"player"`
	Team            string  `json:"team"`
	Price           float64 `json:"price"`
	Description     string  `json:"description"`
	GoalDescription string  `json:"goal_description"`
	Resolved        bool    `json:"resolved"`
}

// Targeter chooses merchandise for highlights.
type Targeter struct {
	catalog        *Catalog
	recognizer     EntityRecognizer
	minConfidence  float64
	displaySeconds int
	featured       string
	logger         *slog.Logger
}

// Option customizes a Targeter.
type Option func(*Targeter)

// WithRecognizer enables cloud entity recognition. Only PERSON entities
// scoring above minConfidence are considered.
func WithRecognizer(recognizer EntityRecognizer, minConfidence float64) Option {
	return func(t *Targeter) {
		t.recognizer = recognizer
		if minConfidence > 0 {
			t.minConfidence = minConfidence
		}
	}
}

// WithDisplaySeconds sets how long each placement stays on screen.
func WithDisplaySeconds(seconds int) Option {
	return func(t *Targeter) {
		if seconds > 0 {
			t.displaySeconds = seconds
		}
	}
}

// WithFeaturedPlayer sets the jersey advertised when a goal names no known player.
func WithFeaturedPlayer(key string) Option {
	return func(t *Targeter) {
		if key = strings.ToLower(strings.TrimSpace(key)); key != "" {
			t.featured = key
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Targeter) {
		if logger != nil {
			t.logger = logging.NewComponentLogger(logger, "adtarget")
		}
	}
}

// NewTargeter builds a Targeter over the default catalog.
func NewTargeter(opts ...Option) *Targeter {
	t := &Targeter{
		catalog:        DefaultCatalog(),
		minConfidence:  defaultMinConfidence,
		displaySeconds: defaultDisplaySeconds,
		featured:       defaultFeaturedPlayer,
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Catalog exposes the catalog in use.
func (t *Targeter) Catalog() *Catalog { return t.catalog }

// ResolvePlayer returns the catalog key of the player named in description.
// Recognition failures are logged and fall through to the local patterns.
func (t *Targeter) ResolvePlayer(ctx context.Context, description string) (string, bool) {
	if strings.TrimSpace(description) == "" {
		return "", false
	}
	if key, ok := t.resolveRemote(ctx, description); ok {
		return key, true
	}
	for _, pattern := range playerPatterns {
		m := pattern.FindStringSubmatch(description)
		if m == nil {
			continue
		}
		if key, ok := t.catalog.MatchPlayer(m[1]); ok {
			return key, true
		}
	}
	return "", false
}

func (t *Targeter) resolveRemote(ctx context.Context, description string) (string, bool) {
	if t.recognizer == nil || !t.recognizer.Available() {
		return "", false
	}
	entities, err := t.recognizer.RecognizeEntities(ctx, description)
	if err != nil {
		logging.WarnWithContext(t.logger, "entity recognition failed", "entity_recognition_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "using local name patterns"),
		)
		return "", false
	}
	for _, person := range nlp.People(entities, t.minConfidence) {
		if key, ok := t.catalog.MatchPlayer(person.Text); ok {
			return key, true
		}
	}
	return "", false
}

// SelectMerchandise picks the product for a highlight: the resolved player's
// jersey, else a ball for goals, a scarf for cards, and cleats otherwise.
func (t *Targeter) SelectMerchandise(ctx context.Context, description, eventType string) Merchandise {
	if key, ok := t.ResolvePlayer(ctx, description); ok {
		if m, ok := t.catalog.Player(key); ok {
			return m
		}
	}
	kind := strings.ToLower(eventType)
	item := ItemCleats
	switch {
	case strings.Contains(kind, "goal") || strings.Contains(kind, "score"):
		item = ItemBall
	case strings.Contains(kind, "card"):
		item = ItemScarf
	}
	m, _ := t.catalog.Generic(item)
	return m
}

// Plan schedules a jersey placement for every goal highlight. Timestamps that
// cannot be read fall back to one minute per goal index.
func (t *Targeter) Plan(ctx context.Context, highlights []commentary.Highlight) []Placement {
	goals := commentary.FilterHighlights(highlights, commentary.GoalKeywords...)
	placements := make([]Placement, 0, len(goals))
	for i, goal := range goals {
		seconds, ok := commentary.Seconds(goal.Timestamp)
		if !ok {
			seconds = i * 60
		}
		key, resolved := t.ResolvePlayer(ctx, goal.Description)
		jersey, found := t.catalog.Player(key)
		if !resolved || !found {
			jersey, found = t.catalog.Player(t.featured)
			resolved = false
		}
		if !found {
			continue
		}
		placements = append(placements, Placement{
			TimeSeconds:     seconds,
			DurationSeconds: t.displaySeconds,
			Timestamp:       goal.Timestamp,
			Player:          jersey.Name,
			Team:            jersey.Team,
			Price:           jersey.Price,
			Description:     jersey.Description,
			GoalDescription: goal.Description,
			Resolved:        resolved,
		})
	}
	return placements
}
