package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"media-sync/core/database"
	"media-sync/core/media"
	"media-sync/core/reconcile"
	"media-sync/core/syncmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeGateway is an in-memory catalog keyed by search term.
type fakeGateway struct {
	mediaType media.Type
	accepts   media.Provider
	titles    map[string]reconcile.LookupResult
	tracked   map[string]int
	files     map[int]bool
	nextID    int
	createErr error

	lookups []string
	creates int
}

func newFakeGateway(mediaType media.Type, firstID int) *fakeGateway {
	return &fakeGateway{
		mediaType: mediaType,
		titles:    map[string]reconcile.LookupResult{},
		tracked:   map[string]int{},
		files:     map[int]bool{},
		nextID:    firstID,
	}
}

func (g *fakeGateway) Name() string          { return "fake-" + string(g.mediaType) }
func (g *fakeGateway) MediaType() media.Type { return g.mediaType }

func (g *fakeGateway) Accepts(id media.ExternalID) bool {
	return id.Provider == g.accepts
}

func (g *fakeGateway) Lookup(_ context.Context, term string) (*reconcile.LookupResult, error) {
	g.lookups = append(g.lookups, term)
	result, ok := g.titles[term]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", term, reconcile.ErrNotFound)
	}
	if id, ok := g.tracked[result.Title]; ok {
		result.CatalogID = &id
	}
	return &result, nil
}

func (g *fakeGateway) IsFulfilled(_ context.Context, catalogID int) bool {
	return g.files[catalogID]
}

func (g *fakeGateway) Create(_ context.Context, result reconcile.LookupResult, _ reconcile.Destination) (int, error) {
	if g.createErr != nil {
		return 0, g.createErr
	}
	g.creates++
	id := g.nextID
	g.nextID++
	g.tracked[result.Title] = id
	return id, nil
}

func (g *fakeGateway) TestConnection(context.Context) reconcile.ConnectionStatus {
	return reconcile.ConnectionStatus{OK: true}
}

func newStore(t *testing.T) *syncmap.Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	store := syncmap.NewStore(db)
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func moviesOnly(gw reconcile.Gateway) *reconcile.Spec {
	return &reconcile.Spec{
		Targets: map[media.Type]reconcile.Target{
			media.TypeMovie: {Gateway: gw, Destination: reconcile.Destination{RootFolder: "/movies", QualityProfileID: 1}},
		},
		Trigger: "test",
	}
}

var inception = media.WatchlistItem{SourceKey: "Inception", Title: "Inception", Year: 2010, Type: media.TypeMovie}

func TestRun_RequestThenLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	engine := reconcile.NewEngine(store, nil)

	radarr := newFakeGateway(media.TypeMovie, 42)
	radarr.titles["Inception 2010"] = reconcile.LookupResult{Title: "Inception", Year: 2010}
	spec := moviesOnly(radarr)

	// First run: untracked title is created and recorded as requested
	out, err := engine.Run(ctx, spec, []media.WatchlistItem{inception})
	require.NoError(t, err)
	require.Len(t, out.Movies.Added, 1)
	assert.Equal(t, 42, out.Movies.Added[0].CatalogID)
	assert.Empty(t, out.Movies.Skipped)
	assert.Empty(t, out.Movies.Errors)
	assert.NotEmpty(t, out.RunID)

	entry, err := store.Get(ctx, "Inception")
	require.NoError(t, err)
	assert.Equal(t, 42, entry.CatalogID)
	assert.Equal(t, syncmap.StatusRequested, entry.Status)

	// Second run: tracked without a file
	out, err = engine.Run(ctx, spec, []media.WatchlistItem{inception})
	require.NoError(t, err)
	assert.Empty(t, out.Movies.Added)
	require.Len(t, out.Movies.Skipped, 1)
	assert.Equal(t, reconcile.ReasonAlreadyMonitored, out.Movies.Skipped[0].Reason)
	assert.Equal(t, 1, radarr.creates)

	// Third run: file landed
	radarr.files[42] = true
	out, err = engine.Run(ctx, spec, []media.WatchlistItem{inception})
	require.NoError(t, err)
	require.Len(t, out.Movies.Skipped, 1)
	assert.Equal(t, reconcile.ReasonAlreadyInLibrary, out.Movies.Skipped[0].Reason)
	assert.Equal(t, 42, out.Movies.Skipped[0].CatalogID)

	entry, err = store.Get(ctx, "Inception")
	require.NoError(t, err)
	assert.Equal(t, syncmap.StatusFulfilled, entry.Status)

	// File removed later: status does not regress
	radarr.files[42] = false
	_, err = engine.Run(ctx, spec, []media.WatchlistItem{inception})
	require.NoError(t, err)
	entry, err = store.Get(ctx, "Inception")
	require.NoError(t, err)
	assert.Equal(t, syncmap.StatusFulfilled, entry.Status)
}

func TestRun_SweepAdvancesRequested(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	engine := reconcile.NewEngine(store, nil)

	radarr := newFakeGateway(media.TypeMovie, 42)
	radarr.titles["Inception 2010"] = reconcile.LookupResult{Title: "Inception", Year: 2010}
	spec := moviesOnly(radarr)

	_, err := engine.Run(ctx, spec, []media.WatchlistItem{inception})
	require.NoError(t, err)

	radarr.files[42] = true
	out, err := engine.Run(ctx, spec, nil)
	require.NoError(t, err)
	assert.Equal(t, reconcile.SweepSummary{Checked: 1, Advanced: 1}, out.Sweep)

	entry, err := store.Get(ctx, "Inception")
	require.NoError(t, err)
	assert.Equal(t, syncmap.StatusFulfilled, entry.Status)

	// Nothing left to sweep
	out, err = engine.Run(ctx, spec, nil)
	require.NoError(t, err)
	assert.Equal(t, reconcile.SweepSummary{}, out.Sweep)
}

func TestRun_SweepCountsStaleEntries(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	_, err := store.Upsert(ctx, syncmap.Entry{SourceKey: "Severance", CatalogID: 9, MediaType: media.TypeShow})
	require.NoError(t, err)

	engine := reconcile.NewEngine(store, nil)
	out, err := engine.Run(ctx, moviesOnly(newFakeGateway(media.TypeMovie, 1)), nil)
	require.NoError(t, err)
	assert.Equal(t, reconcile.SweepSummary{Stale: 1}, out.Sweep)

	entry, err := store.Get(ctx, "Severance")
	require.NoError(t, err)
	assert.Equal(t, syncmap.StatusRequested, entry.Status)
}

func TestRun_DisabledTypeIsIgnored(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	engine := reconcile.NewEngine(store, nil)

	radarr := newFakeGateway(media.TypeMovie, 1)
	show := media.WatchlistItem{SourceKey: "Severance", Title: "Severance", Year: 2022, Type: media.TypeShow}

	out, err := engine.Run(ctx, moviesOnly(radarr), []media.WatchlistItem{show})
	require.NoError(t, err)
	assert.True(t, out.Movies.Enabled)
	assert.False(t, out.Shows.Enabled)
	assert.Empty(t, out.Shows.Added)
	assert.Empty(t, out.Shows.Skipped)
	assert.Empty(t, out.Shows.Errors)
	assert.Empty(t, radarr.lookups)

	all, err := store.List(ctx, syncmap.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRun_CreateFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	engine := reconcile.NewEngine(store, nil)

	radarr := newFakeGateway(media.TypeMovie, 1)
	radarr.titles["Inception 2010"] = reconcile.LookupResult{Title: "Inception", Year: 2010}
	radarr.createErr = fmt.Errorf("create: %w: Root folder does not exist", reconcile.ErrRejected)

	out, err := engine.Run(ctx, moviesOnly(radarr), []media.WatchlistItem{inception})
	require.NoError(t, err)
	require.Len(t, out.Movies.Errors, 1)
	assert.Equal(t, "Inception", out.Movies.Errors[0].SourceKey)
	assert.Contains(t, out.Movies.Errors[0].Error, "Root folder does not exist")
	assert.Empty(t, out.Movies.Added)

	_, err = store.Get(ctx, "Inception")
	assert.True(t, errors.Is(err, syncmap.ErrNotFound))
}

func TestRun_NotFoundIsSkipped(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	engine := reconcile.NewEngine(store, nil)

	out, err := engine.Run(ctx, moviesOnly(newFakeGateway(media.TypeMovie, 1)), []media.WatchlistItem{inception})
	require.NoError(t, err)
	require.Len(t, out.Movies.Skipped, 1)
	assert.Equal(t, reconcile.ReasonNotFound, out.Movies.Skipped[0].Reason)

	all, err := store.List(ctx, syncmap.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRun_SearchTermSelection(t *testing.T) {
	tests := []struct {
		name    string
		accepts media.Provider
		item    media.WatchlistItem
		want    string
	}{
		{
			name:    "accepted provider id",
			accepts: media.ProviderTMDB,
			item:    media.WatchlistItem{Title: "Inception", Year: 2010, ExternalID: media.NewExternalID(media.ProviderTMDB, "27205")},
			want:    "tmdb:27205",
		},
		{
			name:    "unaccepted provider falls back to title",
			accepts: media.ProviderTVDB,
			item:    media.WatchlistItem{Title: "Inception", Year: 2010, ExternalID: media.NewExternalID(media.ProviderTMDB, "27205")},
			want:    "Inception 2010",
		},
		{
			name:    "no year",
			accepts: media.ProviderTMDB,
			item:    media.WatchlistItem{Title: "Inception"},
			want:    "Inception",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newFakeGateway(media.TypeMovie, 1)
			gw.accepts = tt.accepts
			engine := reconcile.NewEngine(newStore(t), nil)

			_, err := engine.Run(context.Background(), moviesOnly(gw), []media.WatchlistItem{tt.item})
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, gw.lookups)
		})
	}
}

func TestRun_UnknownTypeGoesToMovies(t *testing.T) {
	ctx := context.Background()
	engine := reconcile.NewEngine(newStore(t), nil)

	radarr := newFakeGateway(media.TypeMovie, 5)
	radarr.titles["Arrival"] = reconcile.LookupResult{Title: "Arrival"}
	sonarr := newFakeGateway(media.TypeShow, 1)

	spec := &reconcile.Spec{Targets: map[media.Type]reconcile.Target{
		media.TypeMovie: {Gateway: radarr},
		media.TypeShow:  {Gateway: sonarr},
	}}
	out, err := engine.Run(ctx, spec, []media.WatchlistItem{{SourceKey: "Arrival", Title: "Arrival", Type: media.TypeUnknown}})
	require.NoError(t, err)
	require.Len(t, out.Movies.Added, 1)
	assert.Empty(t, sonarr.lookups)
}

func TestRun_MoviesBeforeShows(t *testing.T) {
	ctx := context.Background()
	engine := reconcile.NewEngine(newStore(t), nil)

	var order []string
	radarr := &orderedGateway{fakeGateway: newFakeGateway(media.TypeMovie, 1), order: &order}
	sonarr := &orderedGateway{fakeGateway: newFakeGateway(media.TypeShow, 1), order: &order}

	spec := &reconcile.Spec{Targets: map[media.Type]reconcile.Target{
		media.TypeMovie: {Gateway: radarr},
		media.TypeShow:  {Gateway: sonarr},
	}}
	items := []media.WatchlistItem{
		{SourceKey: "s1", Title: "Severance", Type: media.TypeShow},
		{SourceKey: "m1", Title: "Arrival", Type: media.TypeMovie},
		{SourceKey: "s2", Title: "Andor", Type: media.TypeShow},
	}
	_, err := engine.Run(ctx, spec, items)
	require.NoError(t, err)
	assert.Equal(t, []string{"movie:Arrival", "show:Severance", "show:Andor"}, order)
}

type orderedGateway struct {
	*fakeGateway
	order *[]string
}

func (g *orderedGateway) Lookup(ctx context.Context, term string) (*reconcile.LookupResult, error) {
	*g.order = append(*g.order, string(g.mediaType)+":"+term)
	return g.fakeGateway.Lookup(ctx, term)
}

// mockStore is a testify mock of reconcile.Store.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Upsert(ctx context.Context, entry syncmap.Entry) (syncmap.Entry, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(syncmap.Entry), args.Error(1)
}

func (m *mockStore) ListPending(ctx context.Context) ([]syncmap.Entry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]syncmap.Entry)
	return entries, args.Error(1)
}

func (m *mockStore) MarkFulfilled(ctx context.Context, sourceKey string) (bool, error) {
	args := m.Called(ctx, sourceKey)
	return args.Bool(0), args.Error(1)
}

func TestRun_StoreFailureAbortsRun(t *testing.T) {
	store := new(mockStore)
	store.On("Upsert", mock.Anything, mock.Anything).Return(syncmap.Entry{}, errors.New("database is locked"))

	radarr := newFakeGateway(media.TypeMovie, 1)
	radarr.titles["Inception 2010"] = reconcile.LookupResult{Title: "Inception", Year: 2010}

	out, err := reconcile.NewEngine(store, nil).Run(context.Background(), moviesOnly(radarr), []media.WatchlistItem{inception})
	assert.Nil(t, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	store.AssertNotCalled(t, "ListPending", mock.Anything)
}

func TestRun_SweepStoreFailure(t *testing.T) {
	store := new(mockStore)
	store.On("ListPending", mock.Anything).Return(nil, errors.New("no such table: sync_map"))

	out, err := reconcile.NewEngine(store, nil).Run(context.Background(), moviesOnly(newFakeGateway(media.TypeMovie, 1)), nil)
	assert.Nil(t, out)
	assert.Error(t, err)
	store.AssertExpectations(t)
}

func TestOutcome_EmptyListsAndTotals(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	out := reconcile.NewEmptyOutcome("run-1", "manual", at)

	added, skipped, errs := out.Totals()
	assert.Zero(t, added+skipped+errs)
	assert.NotNil(t, out.Movies.Added)
	assert.NotNil(t, out.Shows.Errors)

	out.For(media.TypeShow).Added = append(out.Shows.Added, reconcile.AddedItem{SourceKey: "s"})
	out.For(media.TypeUnknown).Skipped = append(out.Movies.Skipped, reconcile.SkippedItem{SourceKey: "m"})
	added, skipped, _ = out.Totals()
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, skipped)
	assert.Len(t, out.Movies.Skipped, 1)
}
