package handlers

import (
	"net/http"
	"time"

	"github.com/Trinaxus/tubox-server/internal/store"
)

const tailLines = 5

// DiagnoseHandler exposes operational introspection: store writability,
// today's record count with the last few raw lines, and the active
// presence identifiers. It leaks raw identifiers, so the router keeps
// it behind the admin token.
type DiagnoseHandler struct {
	Events   store.EventStore
	Presence store.PresenceStore
	TTL      time.Duration
}

func (h *DiagnoseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	storeInfo := map[string]any{"ok": true}
	if err := h.Events.Check(); err != nil {
		storeInfo["ok"] = false
		storeInfo["error"] = "store is not writable"
	}

	count, tail, err := h.Events.TailToday(tailLines)
	today := map[string]any{"count": count, "lastLines": tail}
	if err != nil {
		today["error"] = "failed to read today's log"
	}

	presence := map[string]any{}
	ids, err := h.Presence.ActiveIDs(h.TTL)
	if err != nil {
		presence["error"] = "failed to read presence map"
	} else {
		presence["online"] = len(ids)
		presence["ids"] = ids
	}

	writeData(w, map[string]any{
		"store":    storeInfo,
		"today":    today,
		"presence": presence,
	})
}
