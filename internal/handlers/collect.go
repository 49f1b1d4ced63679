package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Trinaxus/tubox-server/internal/analytics"
	"github.com/Trinaxus/tubox-server/internal/models"
	"github.com/Trinaxus/tubox-server/internal/store"
)

// CountryResolver is the best-effort geolocation lookup. An empty result
// means the lookup failed or was skipped.
type CountryResolver interface {
	Country(ctx context.Context, addr string) string
}

// CollectHandler accepts one analytics event per request and appends it
// to the event log.
type CollectHandler struct {
	Events store.EventStore
	Geo    CountryResolver
	Log    *zap.SugaredLogger
}

func (h *CollectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var payload models.CollectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}

	// do-not-track is honored without erroring: accepted, not stored
	if payload.DNT {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "skipped": true})
		return
	}

	e := eventFromPayload(&payload, r)

	// country is resolved from the original address; the anonymized
	// form is the only thing ever written
	if h.Geo != nil {
		if cc := h.Geo.Country(r.Context(), analytics.ClientHost(r.RemoteAddr)); cc != "" {
			e.Country = &cc
		}
	}

	if err := h.Events.Append(e); err != nil {
		h.Log.Errorw("event append failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record event")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// eventFromPayload applies all defaulting in one place.
func eventFromPayload(p *models.CollectPayload, r *http.Request) *models.Event {
	e := &models.Event{
		ID:       uuid.NewString(),
		TS:       p.TS,
		Type:     p.Type,
		Path:     p.Path,
		Referrer: p.Referrer,
		UA:       p.UA,
		Lang:     p.Lang,
		Screen:   p.Screen,
		DPR:      p.DPR,
		UUID:     p.UUID,
		TZ:       p.TZ,
		IP:       analytics.AnonymizeIP(r.RemoteAddr),
		Data:     p.Data,
		UTM:      p.UTM,
		Device:   p.Device,
	}
	if e.TS == "" {
		e.TS = time.Now().Format(time.RFC3339)
	}
	if e.Type == "" {
		e.Type = models.TypePageview
	}
	if e.Path == "" {
		e.Path = "/"
	}
	if e.UA == "" {
		e.UA = r.UserAgent()
	}
	if e.DPR == 0 {
		e.DPR = 1
	}
	return e
}
