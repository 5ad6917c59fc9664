// Package settings manages the service connection settings.
//
// Values live in the settings table under dotted keys such as "radarr.url" and are
// edited through the control plane. A key with no row falls back to the environment
// default loaded into Config. Provider.Snapshot reads everything once and returns an
// immutable Snapshot, so a run never observes a half-applied edit.
package settings
