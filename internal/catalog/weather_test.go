package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCurrentParsesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather/current/", r.URL.Path)
		assert.Equal(t, "mount-kilimanjaro", r.URL.Query().Get("attraction"))
		_, _ = w.Write([]byte(`{"temp_c":-5.5,"condition":"Clear","humidity":40,"wind_kph":30,"icon":"snowflake"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})

	cw, err := c.Current(context.Background(), "mount-kilimanjaro")
	require.NoError(t, err)
	assert.InDelta(t, -5.5, cw.TempC, 1e-9)
	assert.Equal(t, "Clear", cw.Condition)
	assert.Equal(t, 40, cw.Humidity)
}

func TestCurrentFallbackMissPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Logger: zap.NewNop()})

	_, err := c.Current(context.Background(), "unknown-place")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestForecastFallbackForKnownSlug(t *testing.T) {
	c := New(Config{MockOnly: true})

	days, err := c.Forecast(context.Background(), "mount-kilimanjaro")
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, "Mon", days[0].Date)
}

func TestSeasonalFallbackIsEmptyMappingNeverError(t *testing.T) {
	c := New(Config{MockOnly: true})

	notes, err := c.Seasonal(context.Background(), "unknown-place")
	require.NoError(t, err)
	assert.Empty(t, notes)

	known, err := c.Seasonal(context.Background(), "great-migration")
	require.NoError(t, err)
	assert.NotEmpty(t, known)
}

func TestSeasonalRemoteDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"june-october":"Dry season, best visibility."}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})

	notes, err := c.Seasonal(context.Background(), "ngorongoro-crater")
	require.NoError(t, err)
	assert.Equal(t, "Dry season, best visibility.", notes["june-october"])
}
