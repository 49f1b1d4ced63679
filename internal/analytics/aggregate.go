package analytics

import (
	"sort"
	"time"

	"github.com/Trinaxus/tubox-server/internal/models"
	"github.com/Trinaxus/tubox-server/internal/store"
)

const (
	minDays = 1
	maxDays = 365
	topN    = 10
)

// Aggregator computes range statistics from the event log and the
// presence map. Reads are not synchronized against writers; a scan may
// or may not see an event appended while it runs, which is fine for a
// dashboard.
type Aggregator struct {
	Events   store.EventStore
	Presence store.PresenceStore
	TTL      time.Duration
}

// Aggregate scans the inclusive day range ending at now and returns a
// complete, possibly zero-filled result. days is clamped to [1, 365].
// Per-day read failures contribute zero instead of aborting.
func (a *Aggregator) Aggregate(days int, now time.Time) *models.Stats {
	if days < minDays {
		days = minDays
	}
	if days > maxDays {
		days = maxDays
	}

	var (
		pageviews  int64
		visitors   = map[string]struct{}{}
		series     = make([]models.DayCount, 0, days)
		paths      = newCounter()
		entryPaths = newCounter()
		countries  = newCounter()
		browsers   = newCounter()
		referrers  = newCounter()
		devices    = newCounter()
		utmSrc     = newCounter()
		utmMed     = newCounter()
		utmCamp    = newCounter()
	)

	start := now.AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		var dayTotal int64
		_ = a.Events.ScanDay(day, func(e *models.Event) {
			// Every event keeps the day visible on the series;
			// only pageviews feed the KPIs and breakdowns.
			dayTotal++
			if e.Type != models.TypePageview {
				return
			}
			pageviews++
			if e.UUID != "" {
				visitors[e.UUID] = struct{}{}
			}
			path := e.Path
			if path == "" {
				path = "/"
			}
			paths.add(path)
			if e.Data != nil && models.Truthy(e.Data["entry"]) {
				entryPaths.add(path)
			}
			if e.Country != nil && *e.Country != "" {
				countries.add(*e.Country)
			}
			browsers.add(ClassifyBrowser(e.UA))
			if host := ReferrerHost(e.Referrer); host != "" {
				referrers.add(host)
			}
			if e.Device != "" {
				devices.add(e.Device)
			}
			if e.UTM != nil {
				if e.UTM.Source != "" {
					utmSrc.add(e.UTM.Source)
				}
				if e.UTM.Medium != "" {
					utmMed.add(e.UTM.Medium)
				}
				if e.UTM.Campaign != "" {
					utmCamp.add(e.UTM.Campaign)
				}
			}
		})
		series = append(series, models.DayCount{Day: store.DayKey(day), Count: dayTotal})
	}

	online := 0
	if a.Presence != nil {
		if n, err := a.Presence.CountActiveSince(a.TTL); err == nil {
			online = n
		}
	}

	return &models.Stats{
		Range: models.StatsRange{
			From: store.DayKey(start),
			To:   store.DayKey(now),
			Days: days,
		},
		KPIs: models.KPIs{
			Pageviews: pageviews,
			Visitors:  int64(len(visitors)),
			OnlineNow: online,
		},
		Series:       series,
		TopPaths:     asPathCounts(paths.top(topN)),
		EntryPaths:   asPathCounts(entryPaths.top(topN)),
		Countries:    countries.top(topN),
		Browsers:     browsers.top(topN),
		Referrers:    referrers.top(topN),
		Devices:      devices.top(topN),
		UTMSources:   utmSrc.top(topN),
		UTMMediums:   utmMed.top(topN),
		UTMCampaigns: utmCamp.top(topN),
	}
}

// counter tallies keys while remembering first-occurrence order, which
// serves as the tie-break when counts are equal.
type counter struct {
	counts map[string]int64
	order  []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int64{}}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) top(n int) []models.NameCount {
	out := make([]models.NameCount, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, models.NameCount{Name: k, Count: c.counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func asPathCounts(in []models.NameCount) []models.PathCount {
	out := make([]models.PathCount, len(in))
	for i, nc := range in {
		out[i] = models.PathCount{Path: nc.Name, Count: nc.Count}
	}
	return out
}
