// Package server exposes the analysis service over HTTP.
//
// Routes:
//
//	POST /api/v1/analyze     commentary text -> timeline rows and highlights
//	POST /api/v1/highlights  commentary text -> highlights and ad placements
//	GET  /api/v1/profiles    registered language profiles
//	GET  /api/v1/status      dependency and collaborator availability
//	GET  /healthz            liveness
//	GET  /metrics            Prometheus exposition (when enabled)
//
// The /api/v1 group requires "Authorization: Bearer <token>" when api.token
// is configured. Every response carries an X-Request-ID header.
package server
