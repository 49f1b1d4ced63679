package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Trinaxus/tubox-server/internal/store"
)

// HeartbeatHandler upserts a client's last-seen timestamp in the
// presence map. Stale entries are never deleted; the stats read side
// filters them by TTL.
type HeartbeatHandler struct {
	Presence store.PresenceStore
	Log      *zap.SugaredLogger
}

func (h *HeartbeatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UUID string `json:"uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}
	if body.UUID == "" {
		writeError(w, http.StatusBadRequest, "uuid is required")
		return
	}
	if err := h.Presence.RecordHeartbeat(body.UUID); err != nil {
		h.Log.Errorw("heartbeat write failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record heartbeat")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
