package identity

import (
	"testing"

	"media-sync/core/media"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantID  string
		hint    media.Type
		plexKey string
	}{
		{"TMDB", "tmdb://603", "tmdb:603", media.TypeMovie, ""},
		{"TVDB", "tvdb://81189", "tvdb:81189", media.TypeShow, ""},
		{"IMDB", "imdb://tt0133093", "imdb:tt0133093", media.TypeUnknown, ""},
		{"MovieDatabaseAlias", "movie-database://603", "tmdb:603", media.TypeMovie, ""},
		{"TVDatabaseAlias", "tv-database://81189", "tvdb:81189", media.TypeShow, ""},
		{"InternetMovieDatabaseAlias", "internet-movie-database://tt0133093?lang=en", "imdb:tt0133093", media.TypeUnknown, ""},
		{"LegacyMovieAgent", "com.plexapp.agents.themoviedb://603?lang=en", "tmdb:603", media.TypeMovie, ""},
		{"LegacyTVAgentWithPath", "com.plexapp.agents.thetvdb://81189/1/3?lang=en", "tvdb:81189", media.TypeShow, ""},
		{"PathSegmentOverridesScheme", "tmdb://show/1399", "tmdb:1399", media.TypeShow, ""},
		{"PlexMovie", "plex://movie/5d7768ba96b655001fdc0408", "", media.TypeMovie, "5d7768ba96b655001fdc0408"},
		{"PlexShow", "plex://show/5d9c086c46115600200aa2fe", "", media.TypeShow, "5d9c086c46115600200aa2fe"},
		{"Unrecognized", "foo://xyz", "", media.TypeUnknown, ""},
		{"NoScheme", "603", "", media.TypeUnknown, ""},
		{"Empty", "", "", media.TypeUnknown, ""},
		{"NonNumericTMDB", "tmdb://abc", "", media.TypeMovie, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.in)
			if tt.wantID == "" {
				assert.Nil(t, c.ExternalID)
			} else if assert.NotNil(t, c.ExternalID) {
				assert.Equal(t, tt.wantID, c.ExternalID.Term())
			}
			assert.Equal(t, tt.hint, c.Hint)
			assert.Equal(t, tt.plexKey, c.PlexKey)
		})
	}
}

func TestKeywordHint(t *testing.T) {
	assert.Equal(t, media.TypeShow, KeywordHint("", "https://watch.plex.tv/show/severance"))
	assert.Equal(t, media.TypeShow, KeywordHint("TV Series"))
	assert.Equal(t, media.TypeMovie, KeywordHint("movie"))
	assert.Equal(t, media.TypeMovie, KeywordHint("", "https://watch.plex.tv/movie/inception"), "host is ignored")
	assert.Equal(t, media.TypeMovie, KeywordHint("", "https://example.com/films/heat"))
	assert.Equal(t, media.TypeUnknown, KeywordHint("documentary", "https://example.com/item/1"))
	// the category is consulted before the link
	assert.Equal(t, media.TypeMovie, KeywordHint("movie", "https://watch.plex.tv/show/x"))
}

func TestYearFromTitle(t *testing.T) {
	assert.Equal(t, 2010, YearFromTitle("Inception (2010)"))
	assert.Equal(t, 2017, YearFromTitle("Blade Runner 2049 (2017)"))
	assert.Equal(t, 1999, YearFromTitle("The Matrix 1999"))
	assert.Equal(t, 0, YearFromTitle("Heat"))
	assert.Equal(t, 0, YearFromTitle("Room 0042"))
}

func TestSplitTitleYear(t *testing.T) {
	title, year := splitTitleYear("Inception (2010)")
	assert.Equal(t, "Inception", title)
	assert.Equal(t, 2010, year)

	title, year = splitTitleYear("Blade Runner 2049")
	assert.Equal(t, "Blade Runner 2049", title)
	assert.Equal(t, 0, year)
}
