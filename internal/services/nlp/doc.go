// Package nlp wraps an LLM completion client as a named-entity recognizer.
//
// Ad targeting uses it to resolve player names in highlight descriptions
// before falling back to local phrase patterns. Requests are paced with a
// token-bucket limiter and bounded by a per-call timeout; an unconfigured
// recognizer reports services.ErrUnavailable so callers can degrade quietly.
package nlp
