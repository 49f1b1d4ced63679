package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Trinaxus/tubox-server/internal/store"
)

func TestHeartbeatRecordsPresence(t *testing.T) {
	presence := store.NewFilePresenceStore(filepath.Join(t.TempDir(), "active.json"))
	h := &HeartbeatHandler{Presence: presence, Log: zap.NewNop().Sugar()}

	req := httptest.NewRequest(http.MethodPost, "/heartbeat", strings.NewReader(`{"uuid":"abc"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	ids, err := presence.ActiveIDs(300 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, ids)
}

func TestHeartbeatRequiresUUID(t *testing.T) {
	presence := store.NewFilePresenceStore(filepath.Join(t.TempDir(), "active.json"))
	h := &HeartbeatHandler{Presence: presence, Log: zap.NewNop().Sugar()}

	for _, body := range []string{`{}`, `{"uuid":""}`, "not json"} {
		req := httptest.NewRequest(http.MethodPost, "/heartbeat", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %q", body)
	}
}
