package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"pitchside/internal/services"
)

func writeContent(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	payload := map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{"content": content},
			},
		},
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func fastClient(url string, opts ...Option) *Client {
	opts = append([]Option{WithRetryBackoff(time.Millisecond, 2*time.Millisecond)}, opts...)
	return NewClient(Config{APIKey: "test", BaseURL: url, Model: "demo-model", Title: "Pitchside"}, opts...)
}

func TestClientHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("X-Title"); got != "Pitchside" {
			t.Errorf("unexpected title header %q", got)
		}
		writeContent(t, w, `{"ok":true}`)
	}))
	defer server.Close()

	if err := fastClient(server.URL).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
}

func TestClientHealthCheckCodeFence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeContent(t, w, "```json\n{\"ok\":true}\n```")
	}))
	defer server.Close()

	if err := fastClient(server.URL).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
}

func TestClientRejectsUnauthorizedWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer server.Close()

	err := fastClient(server.URL).HealthCheck(context.Background())
	if err == nil {
		t.Fatal("expected health check to fail")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeContent(t, w, `{"entities":[]}`)
	}))
	defer server.Close()

	content, err := fastClient(server.URL).CompleteJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("CompleteJSON returned error: %v", err)
	}
	if content != `{"entities":[]}` {
		t.Fatalf("unexpected content %q", content)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestClientGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := fastClient(server.URL, WithRetryMaxAttempts(2)).CompleteJSON(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected unavailable marker, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestClientToolCallArguments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"finish_reason": "tool_calls",
					"message": map[string]any{
						"content": "",
						"tool_calls": []any{
							map[string]any{
								"type":     "function",
								"id":       "call_1",
								"function": map[string]any{"name": "entities", "arguments": `{"entities":[{"text":"Messi"}]}`},
							},
						},
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	content, err := fastClient(server.URL).CompleteJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("CompleteJSON returned error: %v", err)
	}
	if !strings.Contains(content, "Messi") {
		t.Fatalf("expected tool call arguments, got %q", content)
	}
}

func TestClientEmptyContentHasSnippet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"finish_reason":"length","message":{"content":""}}]}`))
	}))
	defer server.Close()

	_, err := fastClient(server.URL, WithRetryMaxAttempts(1)).CompleteJSON(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `finish_reason="length"`) || !strings.Contains(err.Error(), "response_snippet=") {
		t.Fatalf("expected diagnostic detail, got %v", err)
	}
}

func TestCompleteJSONRequiresConfiguration(t *testing.T) {
	client := NewClient(Config{})
	if client.Configured() {
		t.Fatal("expected unconfigured client")
	}
	_, err := client.CompleteJSON(context.Background(), "system", "user")
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected unavailable marker, got %v", err)
	}
	_, err = fastClient("http://127.0.0.1").CompleteJSON(context.Background(), "", "user")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}

func TestDecodeLLMJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}
	if err := DecodeLLMJSON("Sure! Here you go: {\"name\":\"Messi\"} hope that helps", &target); err != nil {
		t.Fatalf("DecodeLLMJSON: %v", err)
	}
	if target.Name != "Messi" {
		t.Fatalf("unexpected name %q", target.Name)
	}
	if err := DecodeLLMJSON("   ", &target); err == nil {
		t.Fatal("expected empty payload error")
	}
	err := DecodeLLMJSON("not json", &target)
	if err == nil || !strings.Contains(err.Error(), "payload snippet: not json") {
		t.Fatalf("expected snippet in error, got %v", err)
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{&httpStatusError{StatusCode: 500}, true},
		{&httpStatusError{StatusCode: 429}, true},
		{&httpStatusError{StatusCode: 400}, false},
		{&emptyContentError{Op: "x"}, true},
		{errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := retryable(tc.err); got != tc.want {
			t.Fatalf("retryable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
