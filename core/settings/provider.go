package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"media-sync/core/catalog"
	"media-sync/core/plex"
	"media-sync/core/reconcile"
	"media-sync/core/utils"

	"github.com/goccy/go-json"
)

// ArrSettings are the effective settings of one *arr catalog.
type ArrSettings struct {
	URL            string `json:"url"`
	APIKey         string `json:"api_key"`
	QualityProfile int    `json:"quality_profile_id"`
	RootFolder     string `json:"root_folder_path"`
}

// UnmarshalJSON merges the fields present in data over a, so omitted fields
// keep their current values. The short names quality_profile and root_folder
// are accepted as aliases.
func (a *ArrSettings) UnmarshalJSON(data []byte) error {
	var in struct {
		URL              *string `json:"url"`
		APIKey           *string `json:"api_key"`
		QualityProfileID *int    `json:"quality_profile_id"`
		QualityProfile   *int    `json:"quality_profile"`
		RootFolderPath   *string `json:"root_folder_path"`
		RootFolder       *string `json:"root_folder"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	if in.URL != nil {
		a.URL = *in.URL
	}
	if in.APIKey != nil {
		a.APIKey = *in.APIKey
	}
	if in.QualityProfile != nil {
		a.QualityProfile = *in.QualityProfile
	}
	if in.QualityProfileID != nil {
		a.QualityProfile = *in.QualityProfileID
	}
	if in.RootFolder != nil {
		a.RootFolder = *in.RootFolder
	}
	if in.RootFolderPath != nil {
		a.RootFolder = *in.RootFolderPath
	}
	return nil
}

// Connected reports whether the catalog has both a URL and an API key.
func (a ArrSettings) Connected() bool {
	return a.Catalog().Enabled()
}

// Enabled reports whether titles can be added: the catalog is connected and
// has a destination root folder and quality profile.
func (a ArrSettings) Enabled() bool {
	return a.Connected() && strings.TrimSpace(a.RootFolder) != "" && a.QualityProfile > 0
}

// Validate rejects a connected catalog without a usable destination.
func (a ArrSettings) Validate(name string) error {
	if a.QualityProfile < 0 {
		return fmt.Errorf("%s quality profile must not be negative", name)
	}
	if !a.Connected() {
		return nil
	}
	if strings.TrimSpace(a.RootFolder) == "" {
		return fmt.Errorf("%s root folder is required", name)
	}
	if a.QualityProfile == 0 {
		return fmt.Errorf("%s quality profile is required", name)
	}
	return nil
}

// Catalog returns the gateway connection config.
func (a ArrSettings) Catalog() catalog.Config {
	return catalog.Config{URL: a.URL, APIKey: a.APIKey}
}

// Destination returns where new titles are added.
func (a ArrSettings) Destination() reconcile.Destination {
	return reconcile.Destination{RootFolder: a.RootFolder, QualityProfileID: a.QualityProfile}
}

// PlexSettings are the effective discovery service settings.
type PlexSettings struct {
	URL           string `json:"url"`
	Token         string `json:"token"`
	RSSURL        string `json:"rss_url"`
	FriendsRSSURL string `json:"friends_rss_url"`

	requestsPerSecond float64
}

// Client returns the discovery client config.
func (p PlexSettings) Client() plex.Config {
	return plex.Config{
		Token:             p.Token,
		RSSURL:            p.RSSURL,
		FriendsRSSURL:     p.FriendsRSSURL,
		RequestsPerSecond: p.requestsPerSecond,
	}
}

// Snapshot is an immutable view of all settings taken at one point in time.
type Snapshot struct {
	Radarr ArrSettings  `json:"radarr"`
	Sonarr ArrSettings  `json:"sonarr"`
	Plex   PlexSettings `json:"plex"`
}

// Provider resolves stored settings over environment defaults.
type Provider struct {
	store    *Store
	defaults Defaults
}

// NewProvider creates a provider.
func NewProvider(store *Store, defaults Defaults) *Provider {
	return &Provider{store: store, defaults: defaults}
}

// Snapshot reads the current settings.
func (p *Provider) Snapshot(ctx context.Context) (*Snapshot, error) {
	stored, err := p.store.All(ctx)
	if err != nil {
		return nil, err
	}

	str := func(key, def string) string {
		if v, ok := stored[key]; ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(def)
	}
	num := func(key string, def int) int {
		if v, ok := stored[key]; ok {
			if n := utils.ToInt(strings.TrimSpace(v)); n > 0 {
				return n
			}
		}
		return def
	}

	d := p.defaults
	return &Snapshot{
		Radarr: ArrSettings{
			URL:            str(KeyRadarrURL, d.Radarr.URL),
			APIKey:         str(KeyRadarrAPIKey, d.Radarr.APIKey),
			QualityProfile: num(KeyRadarrQualityProfile, d.Radarr.QualityProfile),
			RootFolder:     str(KeyRadarrRootFolder, d.Radarr.RootFolder),
		},
		Sonarr: ArrSettings{
			URL:            str(KeySonarrURL, d.Sonarr.URL),
			APIKey:         str(KeySonarrAPIKey, d.Sonarr.APIKey),
			QualityProfile: num(KeySonarrQualityProfile, d.Sonarr.QualityProfile),
			RootFolder:     str(KeySonarrRootFolder, d.Sonarr.RootFolder),
		},
		Plex: PlexSettings{
			URL:           str(KeyPlexURL, d.Plex.URL),
			Token:         str(KeyPlexToken, d.Plex.Token),
			RSSURL:        str(KeyPlexRSSURL, d.Plex.RSSURL),
			FriendsRSSURL: str(KeyPlexFriendsRSSURL, d.Plex.FriendsRSSURL),

			requestsPerSecond: d.Plex.RequestsPerSecond,
		},
	}, nil
}

// Save stores every field of snap, replacing previous values.
func (p *Provider) Save(ctx context.Context, snap Snapshot) error {
	return p.store.SetMany(ctx, snap.rows())
}

func (s Snapshot) rows() []Setting {
	str := func(key, value string) Setting {
		return Setting{Key: key, Value: strings.TrimSpace(value), Type: TypeString}
	}
	num := func(key string, value int) Setting {
		return Setting{Key: key, Value: strconv.Itoa(value), Type: TypeInt}
	}
	return []Setting{
		str(KeyRadarrURL, s.Radarr.URL),
		str(KeyRadarrAPIKey, s.Radarr.APIKey),
		num(KeyRadarrQualityProfile, s.Radarr.QualityProfile),
		str(KeyRadarrRootFolder, s.Radarr.RootFolder),
		str(KeySonarrURL, s.Sonarr.URL),
		str(KeySonarrAPIKey, s.Sonarr.APIKey),
		num(KeySonarrQualityProfile, s.Sonarr.QualityProfile),
		str(KeySonarrRootFolder, s.Sonarr.RootFolder),
		str(KeyPlexURL, s.Plex.URL),
		str(KeyPlexToken, s.Plex.Token),
		str(KeyPlexRSSURL, s.Plex.RSSURL),
		str(KeyPlexFriendsRSSURL, s.Plex.FriendsRSSURL),
	}
}
