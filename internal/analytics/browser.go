package analytics

import (
	"net/url"
	"strings"
)

// ClassifyBrowser maps a user-agent string to a browser family using
// ordered substring checks. Chromium-based agents carry several engine
// tokens at once; the precedence below resolves that deterministically
// (first match wins).
func ClassifyBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "Edg"):
		return "Edge"
	case strings.Contains(ua, "Chrome") && !strings.Contains(ua, "Chromium"):
		return "Chrome"
	case strings.Contains(ua, "Firefox"):
		return "Firefox"
	case strings.Contains(ua, "Safari") && !strings.Contains(ua, "Chrome"):
		return "Safari"
	case strings.Contains(ua, "Chromium"):
		return "Chromium"
	default:
		return "Other"
	}
}

// ReferrerHost reduces a referrer URL to its host. When the host cannot
// be extracted the raw string is used as-is; empty referrers stay empty
// and are excluded from the breakdown by the aggregator.
func ReferrerHost(ref string) string {
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.Host != "" {
		return u.Host
	}
	return ref
}
