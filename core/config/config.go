package config

import (
	"reflect"
	"strings"

	"media-sync/core/database"
	"media-sync/core/logger"
	"media-sync/core/runner"
	"media-sync/core/scheduler"
	"media-sync/core/server"
	"media-sync/core/settings"
	"media-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP control plane.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the run report archive.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Scheduler holds configuration for periodic sync runs.
	Scheduler scheduler.Config `mapstructure:"scheduler"`
	// Sync holds run tuning.
	Sync runner.Config `mapstructure:"sync"`
	// Plex, Radarr and Sonarr are defaults for keys missing from the settings table.
	Plex   settings.PlexConfig   `mapstructure:"plex"`
	Radarr settings.RadarrConfig `mapstructure:"radarr"`
	Sonarr settings.SonarrConfig `mapstructure:"sonarr"`
}

// Defaults returns the settings defaults carried by the environment.
func (c *Config) Defaults() settings.Defaults {
	return settings.Defaults{Radarr: c.Radarr, Sonarr: c.Sonarr, Plex: c.Plex}
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
