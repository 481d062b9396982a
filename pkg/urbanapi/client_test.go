package urbanapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"urban-assistant-be/pkg/ai/tools"
	"urban-assistant-be/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryTableByName(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, contextByTextPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"schools":12}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, 0)
	raw, err := c.SummaryTable(context.Background(), "education", Territory{Type: TerritoryCity, NameID: "Санкт-Петербург"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"schools":12}`, string(raw))
	assert.Equal(t, "education", got["table"])
	assert.Equal(t, "Санкт-Петербург", got["territory_name_id"])
	assert.Equal(t, "city", got["territory_type"])
}

func TestSummaryTableByGeometry(t *testing.T) {
	var got geomRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, contextByGeomPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, 0)
	_, err := c.SummaryTable(context.Background(), "block", Territory{
		Coordinates: []any{[]any{[]any{30.18, 59.95}, []any{30.18, 59.96}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "block", got.Table)
	assert.Equal(t, "Polygon", got.UserSelectionZone.Type)
}

func TestSummaryTableErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, 0)

	_, err := c.SummaryTable(context.Background(), "city", Territory{})
	assert.ErrorIs(t, err, ErrMissingTerritory)

	_, err = c.SummaryTable(context.Background(), "city", Territory{NameID: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestSummaryTableIsCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	territory := Territory{Type: TerritoryDistrict, NameID: "Адмиралтейский"}

	for i := 0; i < 3; i++ {
		_, err := c.SummaryTable(context.Background(), "district", territory)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewRegistryFailsFast(t *testing.T) {
	noop := func(context.Context, Territory) (json.RawMessage, error) { return nil, nil }

	_, err := NewRegistry(map[tools.ActionName]FetchFunc{tools.GeneralStatsCity: noop}, tools.AccessibilityTools())
	require.Error(t, err)

	c := NewClient("http://localhost", time.Second, nil, 0)
	reg, err := NewRegistry(SummaryTableFuncs(c), tools.AccessibilityTools())
	require.NoError(t, err)

	for _, name := range tools.AccessibilityTools().Names() {
		_, ok := reg.Lookup(name)
		assert.True(t, ok, name)
	}
	_, ok := reg.Lookup(tools.GeneralStatsComplaints)
	assert.True(t, ok)
}
