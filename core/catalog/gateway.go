package catalog

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strconv"

	"media-sync/core/media"
	"media-sync/core/reconcile"
	"media-sync/core/utils"

	"go.uber.org/zap"
)

// resource describes the per-catalog differences of the *arr API.
type resource struct {
	mediaType  media.Type
	path       string // "/api/v3/movie"
	idField    string // provider id field in lookup results, e.g. "tmdbId"
	idProvider media.Provider
	accepts    []media.Provider
	addOptions map[string]any
}

// arrGateway holds the behaviour Radarr and Sonarr share.
type arrGateway struct {
	client *arrClient
	res    resource
}

func (g *arrGateway) Name() string          { return g.client.name }
func (g *arrGateway) MediaType() media.Type { return g.res.mediaType }

func (g *arrGateway) Accepts(id media.ExternalID) bool {
	for _, p := range g.res.accepts {
		if p == id.Provider {
			return true
		}
	}
	return false
}

// Lookup searches the catalog's lookup endpoint and keeps the first result.
func (g *arrGateway) Lookup(ctx context.Context, term string) (*reconcile.LookupResult, error) {
	var results []map[string]any
	err := g.client.do(ctx, requestConfig{
		method:  http.MethodGet,
		path:    g.res.path + "/lookup",
		query:   url.Values{"term": {term}},
		timeout: lookupTimeout,
	}, &results)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%s lookup %q: %w", g.client.name, term, ErrNotFound)
	}

	first := results[0]
	result := &reconcile.LookupResult{
		Title:   utils.StringField(first, "title"),
		Year:    utils.IntField(first, "year"),
		Payload: first,
	}
	if id := utils.IntField(first, "id"); id > 0 {
		result.CatalogID = &id
	}
	if v := utils.IntField(first, g.res.idField); v > 0 {
		result.ExternalID = media.NewExternalID(g.res.idProvider, strconv.Itoa(v))
	}
	return result, nil
}

// fetch loads the catalog entry with the given id into result.
func (g *arrGateway) fetch(ctx context.Context, catalogID int, result any) error {
	return g.client.do(ctx, requestConfig{
		method:  http.MethodGet,
		path:    fmt.Sprintf("%s/%d", g.res.path, catalogID),
		timeout: fetchTimeout,
	}, result)
}

// Create posts the lookup payload with the destination settings and returns the new id.
func (g *arrGateway) Create(ctx context.Context, result reconcile.LookupResult, dest reconcile.Destination) (int, error) {
	payload := make(map[string]any, len(result.Payload)+4)
	maps.Copy(payload, result.Payload)
	payload["rootFolderPath"] = dest.RootFolder
	payload["qualityProfileId"] = dest.QualityProfileID
	payload["monitored"] = true
	payload["addOptions"] = g.res.addOptions

	var created struct {
		ID int `json:"id"`
	}
	err := g.client.do(ctx, requestConfig{
		method:  http.MethodPost,
		path:    g.res.path,
		body:    payload,
		timeout: createTimeout,
	}, &created)
	if err != nil {
		return 0, err
	}
	if created.ID <= 0 {
		return 0, fmt.Errorf("%s create %q: %w: response carried no id", g.client.name, result.Title, ErrRejected)
	}

	g.client.logger.Debug("Created catalog entry",
		zap.String("title", result.Title),
		zap.Int("catalog_id", created.ID))
	return created.ID, nil
}

// TestConnection probes the system status endpoint.
func (g *arrGateway) TestConnection(ctx context.Context) reconcile.ConnectionStatus {
	status, err := g.client.status(ctx)
	if err != nil {
		return reconcile.ConnectionStatus{Detail: err.Error()}
	}
	return reconcile.ConnectionStatus{
		OK:      true,
		Version: status.Version,
		Detail:  fmt.Sprintf("Connected to %s v%s", g.client.name, status.Version),
	}
}
