package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"media-sync/core/media"
	"media-sync/core/reconcile"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "secret"

// newArrServer starts a fake *arr server. Requests without the API key get 401.
func newArrServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handler, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestConfig_Enabled(t *testing.T) {
	assert.True(t, Config{URL: "http://radarr:7878", APIKey: "k"}.Enabled())
	assert.False(t, Config{URL: "http://radarr:7878", APIKey: "  "}.Enabled())
	assert.False(t, Config{APIKey: "k"}.Enabled())
}

func TestRadarr_LookupFirstResult(t *testing.T) {
	var gotTerm string
	server := newArrServer(t, map[string]http.HandlerFunc{
		"GET /api/v3/movie/lookup": func(w http.ResponseWriter, r *http.Request) {
			gotTerm = r.URL.Query().Get("term")
			writeJSON(w, http.StatusOK, `[
				{"title":"Inception","year":2010,"tmdbId":27205,"titleSlug":"inception-27205"},
				{"title":"Inception: The Cobol Job","year":2010,"tmdbId":64956}
			]`)
		},
	})

	radarr := NewRadarr(Config{URL: server.URL + "/", APIKey: testAPIKey}, nil)
	result, err := radarr.Lookup(context.Background(), "Inception 2010")
	require.NoError(t, err)

	assert.Equal(t, "Inception 2010", gotTerm)
	assert.Equal(t, "Inception", result.Title)
	assert.Equal(t, 2010, result.Year)
	assert.False(t, result.Tracked())
	require.NotNil(t, result.ExternalID)
	assert.Equal(t, "tmdb:27205", result.ExternalID.Term())
	assert.Equal(t, "inception-27205", result.Payload["titleSlug"])
}

func TestRadarr_LookupTracked(t *testing.T) {
	server := newArrServer(t, map[string]http.HandlerFunc{
		"GET /api/v3/movie/lookup": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[{"id":42,"title":"Inception","year":2010,"tmdbId":27205}]`)
		},
	})

	result, err := NewRadarr(Config{URL: server.URL, APIKey: testAPIKey}, nil).Lookup(context.Background(), "tmdb:27205")
	require.NoError(t, err)
	require.True(t, result.Tracked())
	assert.Equal(t, 42, *result.CatalogID)
}

func TestLookup_Failures(t *testing.T) {
	server := newArrServer(t, map[string]http.HandlerFunc{
		"GET /api/v3/movie/lookup": func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Query().Get("term") {
			case "empty":
				writeJSON(w, http.StatusOK, `[]`)
			case "broken":
				writeJSON(w, http.StatusOK, `{not json`)
			default:
				writeJSON(w, http.StatusInternalServerError, `{"message":"database locked"}`)
			}
		},
	})
	radarr := NewRadarr(Config{URL: server.URL, APIKey: testAPIKey}, nil)
	ctx := context.Background()

	_, err := radarr.Lookup(ctx, "empty")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = radarr.Lookup(ctx, "broken")
	assert.True(t, errors.Is(err, ErrTransport))

	_, err = radarr.Lookup(ctx, "boom")
	assert.True(t, errors.Is(err, ErrTransport))
	assert.Contains(t, err.Error(), "database locked")

	wrongKey := NewRadarr(Config{URL: server.URL, APIKey: "nope"}, nil)
	_, err = wrongKey.Lookup(ctx, "empty")
	assert.True(t, errors.Is(err, ErrTransport))
	assert.Contains(t, err.Error(), "401")
}

func TestRadarr_Create(t *testing.T) {
	var posted map[string]any
	server := newArrServer(t, map[string]http.HandlerFunc{
		"POST /api/v3/movie": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
			writeJSON(w, http.StatusCreated, `{"id":42,"title":"Inception"}`)
		},
	})

	radarr := NewRadarr(Config{URL: server.URL, APIKey: testAPIKey}, nil)
	result := reconcile.LookupResult{
		Title:   "Inception",
		Payload: map[string]any{"title": "Inception", "tmdbId": float64(27205)},
	}
	id, err := radarr.Create(context.Background(), result, reconcile.Destination{RootFolder: "/movies", QualityProfileID: 4})
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	assert.Equal(t, "Inception", posted["title"])
	assert.Equal(t, float64(27205), posted["tmdbId"])
	assert.Equal(t, "/movies", posted["rootFolderPath"])
	assert.Equal(t, float64(4), posted["qualityProfileId"])
	assert.Equal(t, true, posted["monitored"])
	assert.Equal(t, map[string]any{"searchForMovie": true}, posted["addOptions"])

	_, mutated := result.Payload["rootFolderPath"]
	assert.False(t, mutated, "lookup payload must not be modified")
}

func TestCreate_Rejected(t *testing.T) {
	server := newArrServer(t, map[string]http.HandlerFunc{
		"POST /api/v3/series": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, `[
				{"propertyName":"RootFolderPath","errorMessage":"Root folder '/tv' does not exist"},
				{"propertyName":"QualityProfileId","errorMessage":"Quality profile does not exist"}
			]`)
		},
	})

	sonarr := NewSonarr(Config{URL: server.URL, APIKey: testAPIKey}, nil)
	_, err := sonarr.Create(context.Background(), reconcile.LookupResult{Title: "Severance"}, reconcile.Destination{RootFolder: "/tv", QualityProfileID: 9})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
	assert.Contains(t, err.Error(), "Root folder '/tv' does not exist; Quality profile does not exist")
}

func TestCreate_MissingID(t *testing.T) {
	server := newArrServer(t, map[string]http.HandlerFunc{
		"POST /api/v3/movie": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{}`)
		},
	})

	_, err := NewRadarr(Config{URL: server.URL, APIKey: testAPIKey}, nil).Create(context.Background(), reconcile.LookupResult{}, reconcile.Destination{})
	assert.True(t, errors.Is(err, ErrRejected))
}

func TestRadarr_IsFulfilled(t *testing.T) {
	server := newArrServer(t, map[string]http.HandlerFunc{
		"GET /api/v3/movie/1": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"id":1,"hasFile":true}`)
		},
		"GET /api/v3/movie/2": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"id":2,"hasFile":false}`)
		},
	})
	radarr := NewRadarr(Config{URL: server.URL, APIKey: testAPIKey}, nil)
	ctx := context.Background()

	assert.True(t, radarr.IsFulfilled(ctx, 1))
	assert.False(t, radarr.IsFulfilled(ctx, 2))
	assert.False(t, radarr.IsFulfilled(ctx, 3), "fetch failure reads as not fulfilled")
}

func TestSonarr_IsFulfilled(t *testing.T) {
	server := newArrServer(t, map[string]http.HandlerFunc{
		"GET /api/v3/series/1": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"statistics":{"episodeFileCount":3}}`)
		},
		"GET /api/v3/series/2": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"seasons":[{"statistics":{"episodeFileCount":0}},{"statistics":{"episodeFileCount":1}}]}`)
		},
		"GET /api/v3/series/3": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"statistics":{"episodeFileCount":0},"seasons":[{"seasonNumber":1}]}`)
		},
	})
	sonarr := NewSonarr(Config{URL: server.URL, APIKey: testAPIKey}, nil)
	ctx := context.Background()

	assert.True(t, sonarr.IsFulfilled(ctx, 1))
	assert.True(t, sonarr.IsFulfilled(ctx, 2))
	assert.False(t, sonarr.IsFulfilled(ctx, 3))
	assert.False(t, sonarr.IsFulfilled(ctx, 4))
}

func TestAccepts(t *testing.T) {
	radarr := NewRadarr(Config{}, nil)
	sonarr := NewSonarr(Config{}, nil)

	assert.True(t, radarr.Accepts(media.ExternalID{Provider: media.ProviderTMDB}))
	assert.True(t, radarr.Accepts(media.ExternalID{Provider: media.ProviderIMDB}))
	assert.False(t, radarr.Accepts(media.ExternalID{Provider: media.ProviderTVDB}))

	assert.True(t, sonarr.Accepts(media.ExternalID{Provider: media.ProviderTVDB}))
	assert.False(t, sonarr.Accepts(media.ExternalID{Provider: media.ProviderTMDB}))

	assert.Equal(t, media.TypeMovie, radarr.MediaType())
	assert.Equal(t, media.TypeShow, sonarr.MediaType())
}

func TestSonarr_LookupUsesTVDB(t *testing.T) {
	server := newArrServer(t, map[string]http.HandlerFunc{
		"GET /api/v3/series/lookup": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[{"title":"Severance","year":2022,"tvdbId":371980}]`)
		},
	})

	result, err := NewSonarr(Config{URL: server.URL, APIKey: testAPIKey}, nil).Lookup(context.Background(), "tvdb:371980")
	require.NoError(t, err)
	require.NotNil(t, result.ExternalID)
	assert.Equal(t, media.ProviderTVDB, result.ExternalID.Provider)
	assert.Equal(t, "371980", result.ExternalID.Value)
}

func TestTestConnection(t *testing.T) {
	server := newArrServer(t, map[string]http.HandlerFunc{
		"GET /api/v3/system/status": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"appName":"Radarr","version":"5.14.0.9383"}`)
		},
	})

	ok := NewRadarr(Config{URL: server.URL, APIKey: testAPIKey}, nil).TestConnection(context.Background())
	assert.True(t, ok.OK)
	assert.Equal(t, "5.14.0.9383", ok.Version)

	bad := NewRadarr(Config{URL: server.URL, APIKey: "wrong"}, nil).TestConnection(context.Background())
	assert.False(t, bad.OK)
	assert.Contains(t, bad.Detail, "401")
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	server := newArrServer(t, map[string]http.HandlerFunc{
		"GET /api/v3/movie/lookup": func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		},
	})
	radarr := NewRadarr(Config{URL: server.URL, APIKey: testAPIKey}, nil)

	for i := 0; i < 5; i++ {
		_, err := radarr.Lookup(context.Background(), "x")
		require.True(t, errors.Is(err, ErrTransport))
	}
	_, err := radarr.Lookup(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrTransport))
	assert.Contains(t, err.Error(), "open")
	assert.Equal(t, int32(5), hits.Load())
}

func TestBreaker_RejectionsDoNotTrip(t *testing.T) {
	var hits atomic.Int32
	server := newArrServer(t, map[string]http.HandlerFunc{
		"POST /api/v3/movie": func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			writeJSON(w, http.StatusBadRequest, `[{"errorMessage":"This movie has already been added"}]`)
		},
	})
	radarr := NewRadarr(Config{URL: server.URL, APIKey: testAPIKey}, nil)

	for i := 0; i < 7; i++ {
		_, err := radarr.Create(context.Background(), reconcile.LookupResult{}, reconcile.Destination{})
		require.True(t, errors.Is(err, ErrRejected))
	}
	assert.Equal(t, int32(7), hits.Load())
}

func TestUpstreamMessage(t *testing.T) {
	assert.Equal(t, "a; b", upstreamMessage([]byte(`[{"errorMessage":"a"},{"errorMessage":"b"}]`)))
	assert.Equal(t, "Unauthorized", upstreamMessage([]byte(`{"message":"Unauthorized"}`)))
	assert.Equal(t, "plain text", upstreamMessage([]byte("  plain text\n")))
	assert.Len(t, upstreamMessage([]byte(string(make([]byte, 1000)))), maxMessageLen)
}
