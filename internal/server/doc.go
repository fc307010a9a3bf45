// Package server exposes the studio HTTP API.
//
// # Surface
//
// Public (no authentication, never behind the gateway):
//
//	GET  /api/           greeting
//	GET  /api/health     liveness
//	GET  /api/projects   full portfolio listing
//	POST /api/contact    inquiry submission
//
// Admin (bearer token required, every call passes auth.Middleware):
//
//	POST   /api/admin/login            issues the session token
//	POST   /api/admin/projects         create
//	PUT    /api/admin/projects/{id}    full replacement update
//	DELETE /api/admin/projects/{id}
//	GET    /api/admin/inquiries        oldest first
//	DELETE /api/admin/inquiries/{id}
//
// Category filtering of the public listing is a client-side projection;
// the server always returns the full list, which keeps the read path
// cache-friendly.
//
// # Failure Mapping
//
//   - login mismatch            -> 401, uniform body
//   - gateway rejection         -> 401, uniform body (see package auth)
//   - validation failure        -> 400 with the failing field
//   - unknown record            -> 404
//   - storage failure on writes -> 503 "operation failed", detail logged
//   - storage failure on the public listing -> 200 with an empty list
//
// # Serving
//
// Run listens on a plain TCP address or, when tailscale.enabled is set,
// on a tsnet node, and shuts down gracefully on context cancellation.
// Prometheus request metrics are served at the configured metrics path.
package server
