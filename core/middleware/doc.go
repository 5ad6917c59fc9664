// Package middleware contains HTTP middleware for the Fiber control plane.
//
// # Components
//
//   - auth: API key validation (X-API-Key or Bearer token), with public path prefixes.
//   - rayid: a unique Request ID (RayID) per request, stored in the locals used by
//     logger.WithRayID and echoed in the X-Ray-ID response header.
//   - RequestLogger: one zap entry per request with status and latency.
package middleware
