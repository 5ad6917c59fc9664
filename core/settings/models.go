package settings

// Setting value types.
const (
	TypeString = "str"
	TypeInt    = "int"
)

// Setting keys.
const (
	KeyRadarrURL            = "radarr.url"
	KeyRadarrAPIKey         = "radarr.api_key"
	KeyRadarrQualityProfile = "radarr.quality_profile"
	KeyRadarrRootFolder     = "radarr.root_folder"
	KeySonarrURL            = "sonarr.url"
	KeySonarrAPIKey         = "sonarr.api_key"
	KeySonarrQualityProfile = "sonarr.quality_profile"
	KeySonarrRootFolder     = "sonarr.root_folder"
	KeyPlexURL              = "plex.url"
	KeyPlexToken            = "plex.token"
	KeyPlexRSSURL           = "plex.rss_url"
	KeyPlexFriendsRSSURL    = "plex.friends_rss_url"
)

// Setting is one stored key/value pair.
type Setting struct {
	Key   string `gorm:"column:key;primaryKey;size:191" json:"key"`
	Value string `gorm:"column:value;type:text" json:"value"`
	Type  string `gorm:"column:type;size:16;default:str" json:"type"`
}

// TableName overrides the table name used by Setting to `settings`.
func (Setting) TableName() string {
	return "settings"
}
