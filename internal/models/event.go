package models

import (
	"bytes"
	"encoding/json"
)

// Event types. Only pageviews feed the KPI aggregation; everything else
// still shows up on the daily time series.
const (
	TypePageview = "pageview"
	TypeEvent    = "event"
)

// Event is one analytics record, stored as a single JSON line in the
// day's log. Records are append-only: once written they are never
// updated or deleted.
type Event struct {
	ID       string         `json:"id,omitempty"`
	TS       string         `json:"ts"`
	Type     string         `json:"type"`
	Path     string         `json:"path"`
	Referrer string         `json:"referrer,omitempty"`
	UA       string         `json:"ua,omitempty"`
	Lang     string         `json:"lang,omitempty"`
	Screen   string         `json:"screen,omitempty"`
	DPR      float64        `json:"dpr,omitempty"`
	UUID     string         `json:"uuid,omitempty"`
	TZ       string         `json:"tz,omitempty"`
	IP       string         `json:"ip,omitempty"`
	Country  *string        `json:"country"`
	Data     map[string]any `json:"data,omitempty"`
	UTM      *UTM           `json:"utm,omitempty"`
	Device   string         `json:"device,omitempty"`
}

// UTM is the campaign attribution triple.
type UTM struct {
	Source   string `json:"source,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Campaign string `json:"campaign,omitempty"`
}

// CollectPayload is the raw inbound body of a collect request. All fields
// are optional; defaulting happens once, in the collect handler.
type CollectPayload struct {
	TS       string         `json:"ts"`
	Type     string         `json:"type"`
	Path     string         `json:"path"`
	Referrer string         `json:"referrer"`
	UA       string         `json:"ua"`
	Lang     string         `json:"lang"`
	Screen   string         `json:"screen"`
	DPR      float64        `json:"dpr"`
	UUID     string         `json:"uuid"`
	TZ       string         `json:"tz"`
	DNT      Flag           `json:"dnt"`
	Data     map[string]any `json:"data"`
	UTM      *UTM           `json:"utm"`
	Device   string         `json:"device"`
}

// Flag is a truthy client hint. Trackers in the wild send these as
// booleans, numbers, or strings, so it accepts all three.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = false
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Flag(Truthy(v))
	return nil
}

// Truthy reports whether a decoded JSON value counts as set.
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != "" && t != "0" && t != "false"
	default:
		return v != nil
	}
}
