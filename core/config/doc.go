// Package config provides configuration management for media-sync.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults come from `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: control plane bind address, API key, shutdown timeout
//   - Database: SQLite path or MySQL connection details
//   - Storage: MinIO/S3 report archive
//   - Log: Logging level and format
//   - Scheduler: periodic run interval
//   - Sync: metadata cache TTL and discovery endpoint overrides
//   - Plex, Radarr, Sonarr: defaults for settings not stored in the database
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Scheduler.Interval)
package config
