// Package server holds the HTTP server configuration and the supervised service
// that runs the Fiber control plane.
//
// Service implements suture.Service: Serve blocks in Listen until the supervisor
// cancels its context, then shuts the app down within ShutdownTimeout.
package server
