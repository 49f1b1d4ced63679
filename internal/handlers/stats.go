package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Trinaxus/tubox-server/internal/analytics"
)

const defaultDays = 30

// StatsHandler serves the aggregated dashboard numbers.
type StatsHandler struct {
	Agg *analytics.Aggregator
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	days := defaultDays
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			days = n // out-of-range values are clamped by the aggregator
		}
	}
	writeData(w, h.Agg.Aggregate(days, time.Now()))
}
