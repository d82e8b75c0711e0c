package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return zap.New(core), logs
}

const regionsJSON = `[
  {"slug":"kilimanjaro","name":"Kilimanjaro","description":"Roof of Africa","image":"/img/kili.jpg","latitude":"-3.0674","longitude":"37.3556","attraction_count":5},
  {"slug":"zanzibar","name":"Zanzibar","description":"Spice island","image":"","latitude":-6.1659,"longitude":39.2026,"attraction_count":3}
]`

func TestRegionsParsesBodyWithoutFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/regions/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(regionsJSON))
	}))
	defer srv.Close()

	logger, logs := newObservedLogger()
	// A dataset with no regions would error if the fallback were consulted.
	c := New(Config{BaseURL: srv.URL, Fallback: &Dataset{}, Logger: logger})

	regions, err := c.Regions(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "Kilimanjaro", regions[0].Name)
	assert.InDelta(t, -3.0674, regions[0].Latitude, 1e-9)
	assert.InDelta(t, 37.3556, regions[0].Longitude, 1e-9)
	assert.Equal(t, 5, regions[0].AttractionCount)
	assert.InDelta(t, -6.1659, regions[1].Latitude, 1e-9)
	assert.Equal(t, 0, logs.Len(), "no warning expected on success")
}

func TestRegionsServerErrorServesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	logger, logs := newObservedLogger()
	c := New(Config{BaseURL: srv.URL, Logger: logger})

	regions, err := c.Regions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultDataset().Regions, regions)

	require.Equal(t, 1, logs.Len(), "exactly one warning per fallback")
	entry := logs.All()[0]
	assert.Equal(t, "/regions/", entry.ContextMap()["path"])
}

func TestRegionsBadJSONServesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	logger, logs := newObservedLogger()
	c := New(Config{BaseURL: srv.URL, Logger: logger})

	regions, err := c.Regions(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, regions)
	assert.Equal(t, 1, logs.Len())
}

func TestSlowServerIsCancelledAndFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	logger, logs := newObservedLogger()
	c := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, Logger: logger})

	start := time.Now()
	regions, err := c.Regions(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, regions)
	assert.Less(t, time.Since(start), time.Second, "request should be aborted by the deadline")
	assert.Equal(t, 1, logs.Len())
}

func TestMockOnlyNeverTouchesNetwork(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(regionsJSON))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, MockOnly: true})

	regions, err := c.Regions(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, regions)

	_, err = c.Attractions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), hits.Load())
}

func TestFallbackUnavailablePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Fallback: &Dataset{}, Logger: zap.NewNop()})

	_, err := c.Regions(context.Background())
	require.ErrorIs(t, err, ErrFallbackUnavailable)
}

func TestAttractionBySlugParsesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/attractions/stone-town/", r.URL.Path)
		_, _ = w.Write([]byte(`{"slug":"stone-town","name":"Stone Town","region_name":"Zanzibar","featured_image":"/img/st.jpg","difficulty_level":"Easy","is_featured":true}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})

	a, err := c.AttractionBySlug(context.Background(), "stone-town")
	require.NoError(t, err)
	assert.Equal(t, "Stone Town", a.Name)
	assert.Equal(t, "Zanzibar", a.RegionName)
	assert.Equal(t, DifficultyEasy, a.Difficulty)
	assert.True(t, a.IsFeatured)
}

func TestAttractionBySlugFallbackMissPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Logger: zap.NewNop()})

	_, err := c.AttractionBySlug(context.Background(), "atlantis")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFeaturedFallbackFiltersFlag(t *testing.T) {
	c := New(Config{MockOnly: true})

	featured, err := c.FeaturedAttractions(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, featured)
	for _, a := range featured {
		assert.True(t, a.IsFeatured, "attraction %s should be featured", a.Slug)
	}
}

func TestGroupFallbacksAreEmptyMappings(t *testing.T) {
	c := New(Config{MockOnly: true, Fallback: &Dataset{}})

	byCat, err := c.AttractionsByCategory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, byCat)

	byReg, err := c.AttractionsByRegion(context.Background())
	require.NoError(t, err)
	assert.Empty(t, byReg)
}

func TestByRegionFallbackGroupsByRegionName(t *testing.T) {
	c := New(Config{MockOnly: true})

	groups, err := c.AttractionsByRegion(context.Background())
	require.NoError(t, err)
	require.Contains(t, groups, "Kilimanjaro")
	assert.Len(t, groups["Kilimanjaro"], 5)
}
