package scheduler

import "time"

// Config holds configuration for periodic sync runs.
type Config struct {
	// Enabled turns the periodic trigger on.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Interval is the time between two scheduled runs.
	Interval time.Duration `mapstructure:"interval" default:"1h"`
	// RunOnStart triggers one run as soon as the service starts.
	RunOnStart bool `mapstructure:"run_on_start" default:"false"`
}
