package settings

// RadarrConfig holds the movie catalog defaults.
type RadarrConfig struct {
	URL            string `mapstructure:"url" default:"http://radarr:7878"`
	APIKey         string `mapstructure:"api_key" default:""`
	QualityProfile int    `mapstructure:"quality_profile" default:"1"`
	RootFolder     string `mapstructure:"root_folder" default:"/movies"`
}

// SonarrConfig holds the show catalog defaults.
type SonarrConfig struct {
	URL            string `mapstructure:"url" default:"http://sonarr:8989"`
	APIKey         string `mapstructure:"api_key" default:""`
	QualityProfile int    `mapstructure:"quality_profile" default:"1"`
	RootFolder     string `mapstructure:"root_folder" default:"/tv"`
}

// PlexConfig holds the discovery service defaults.
type PlexConfig struct {
	URL           string `mapstructure:"url" default:"http://localhost:32400"`
	Token         string `mapstructure:"token" default:""`
	RSSURL        string `mapstructure:"rss_url" default:""`
	FriendsRSSURL string `mapstructure:"friends_rss_url" default:""`
	// RequestsPerSecond paces discovery requests. It is not stored in the settings table.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"5"`
}

// Defaults are the environment-level values used for keys without a stored row.
type Defaults struct {
	Radarr RadarrConfig
	Sonarr SonarrConfig
	Plex   PlexConfig
}
