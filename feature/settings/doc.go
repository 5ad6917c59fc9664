// Package settings serves the runtime configuration API.
//
//   - GET  /api/config         effective settings (stored values over defaults)
//   - PUT  /api/config         replace stored settings
//   - POST /api/services/test  probe radarr, sonarr or plex
package settings
