package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"pitchside/internal/services"
)

func TestObserveAnalysis(t *testing.T) {
	m := New()
	m.ObserveAnalysis("analyze", "en", 2, 1, 5*time.Millisecond, nil)
	m.ObserveAnalysis("analyze", "en", 0, 0, time.Millisecond, services.Wrap(services.ErrValidation, "analysis", "window", "", nil))
	m.ObserveAnalysis("highlights", "", 0, 3, time.Millisecond, nil)

	if got := testutil.ToFloat64(m.analyses.WithLabelValues("analyze", "en", OutcomeOK)); got != 1 {
		t.Fatalf("ok analyses = %v", got)
	}
	if got := testutil.ToFloat64(m.analyses.WithLabelValues("analyze", "en", OutcomeValidation)); got != 1 {
		t.Fatalf("validation analyses = %v", got)
	}
	if got := testutil.ToFloat64(m.rows.WithLabelValues("en")); got != 2 {
		t.Fatalf("rows = %v", got)
	}
	if got := testutil.ToFloat64(m.highlights.WithLabelValues("unknown")); got != 3 {
		t.Fatalf("highlights = %v", got)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{services.Wrap(services.ErrValidation, "", "", "", nil), OutcomeValidation},
		{services.Wrap(services.ErrTimeout, "", "", "", nil), OutcomeTimeout},
		{errors.New("boom"), OutcomeError},
	}
	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.want {
			t.Fatalf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodPost, "/api/v1/analyze", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`pitchside_http_requests_total{method="POST",route="/api/v1/analyze",status="200"} 1`,
		`pitchside_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
