// Package geoip resolves a country code for an IP address via an
// external HTTP lookup. The lookup is strictly best-effort: any failure
// yields an empty result and must never fail or stall the caller.
package geoip

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = time.Second

// Resolver queries a country.is-style endpoint that answers
// GET <base>/<ip> with {"ip": "...", "country": "DE"}.
type Resolver struct {
	baseURL string
	client  *http.Client
}

func NewResolver(baseURL string, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Resolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Country returns the ISO country code for addr, or "" when the lookup
// fails for any reason (timeout, network error, non-200, bad body).
func (r *Resolver) Country(ctx context.Context, addr string) string {
	if r.baseURL == "" || addr == "" {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, r.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/"+addr, nil)
	if err != nil {
		return ""
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	var body struct {
		Country string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Country
}
