package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trinaxus/tubox-server/internal/models"
	"github.com/Trinaxus/tubox-server/internal/store"
)

func TestDiagnose(t *testing.T) {
	dir := t.TempDir()
	events, err := store.NewFileEventStore(dir)
	require.NoError(t, err)
	presence := store.NewFilePresenceStore(filepath.Join(dir, "active.json"))

	require.NoError(t, events.Append(&models.Event{Type: models.TypePageview, Path: "/a"}))
	require.NoError(t, events.Append(&models.Event{Type: models.TypePageview, Path: "/b"}))
	require.NoError(t, presence.RecordHeartbeat("client-a"))

	h := &DiagnoseHandler{Events: events, Presence: presence, TTL: 300 * time.Second}
	req := httptest.NewRequest(http.MethodGet, "/diagnose", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Store struct {
				OK bool `json:"ok"`
			} `json:"store"`
			Today struct {
				Count     int      `json:"count"`
				LastLines []string `json:"lastLines"`
			} `json:"today"`
			Presence struct {
				Online int      `json:"online"`
				IDs    []string `json:"ids"`
			} `json:"presence"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Store.OK)
	assert.Equal(t, 2, resp.Data.Today.Count)
	assert.Len(t, resp.Data.Today.LastLines, 2)
	assert.Equal(t, 1, resp.Data.Presence.Online)
	assert.Equal(t, []string{"client-a"}, resp.Data.Presence.IDs)
}
