// Package scheduler triggers sync runs on a fixed interval.
//
// Service is a suture service added next to the HTTP server under the root
// supervisor from NewSupervisor. Runs are not serialized against manual triggers.
package scheduler
