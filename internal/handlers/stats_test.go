package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trinaxus/tubox-server/internal/analytics"
	"github.com/Trinaxus/tubox-server/internal/models"
	"github.com/Trinaxus/tubox-server/internal/store"
)

func newStatsHandler(t *testing.T) *StatsHandler {
	t.Helper()
	events, err := store.NewFileEventStore(t.TempDir())
	require.NoError(t, err)
	return &StatsHandler{Agg: &analytics.Aggregator{Events: events, TTL: 300 * time.Second}}
}

func getStats(t *testing.T, h *StatsHandler, url string) models.Stats {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    models.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	return resp.Data
}

func TestStatsDefaultRange(t *testing.T) {
	h := newStatsHandler(t)
	stats := getStats(t, h, "/stats")
	assert.Equal(t, 30, stats.Range.Days)
	assert.Len(t, stats.Series, 30)
}

func TestStatsClampsDays(t *testing.T) {
	h := newStatsHandler(t)

	stats := getStats(t, h, "/stats?days=400")
	assert.Equal(t, 365, stats.Range.Days)

	stats = getStats(t, h, "/stats?days=0")
	assert.Equal(t, 1, stats.Range.Days)

	stats = getStats(t, h, "/stats?days=-10")
	assert.Equal(t, 1, stats.Range.Days)
}

func TestStatsIgnoresNonNumericDays(t *testing.T) {
	h := newStatsHandler(t)
	stats := getStats(t, h, "/stats?days=banana")
	assert.Equal(t, 30, stats.Range.Days)
}
