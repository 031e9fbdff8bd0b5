// Package llm provides an OpenRouter-compatible chat client that returns
// JSON-only completions.
//
// The cloud entity recognizer in services/nlp is the main consumer: it sends
// a system prompt describing the expected entity schema and decodes the
// reply with DecodeLLMJSON, which tolerates code fences and leading prose.
//
// # Retry Behaviour
//
// Attempts are driven by a failsafe-go retry policy. HTTP 408/429/5xx,
// network timeouts, and empty completions are retried with exponential
// backoff (base 1s, max 10s, 4 attempts by default). Context cancellation
// aborts retries immediately. Final failures are wrapped with the services
// error markers so callers can map them to HTTP statuses or fall back.
package llm
