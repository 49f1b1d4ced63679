package models

// Stats is the aggregation result for a day range. It is computed on
// demand and never persisted.
type Stats struct {
	Range        StatsRange  `json:"range"`
	KPIs         KPIs        `json:"kpis"`
	Series       []DayCount  `json:"series"`
	TopPaths     []PathCount `json:"topPaths"`
	EntryPaths   []PathCount `json:"entryPaths"`
	Countries    []NameCount `json:"countries"`
	Browsers     []NameCount `json:"browsers"`
	Referrers    []NameCount `json:"referrers"`
	Devices      []NameCount `json:"devices"`
	UTMSources   []NameCount `json:"utmSources"`
	UTMMediums   []NameCount `json:"utmMediums"`
	UTMCampaigns []NameCount `json:"utmCampaigns"`
}

type StatsRange struct {
	From string `json:"from"`
	To   string `json:"to"`
	Days int    `json:"days"`
}

type KPIs struct {
	Pageviews int64 `json:"pageviews"`
	Visitors  int64 `json:"visitors"`
	OnlineNow int   `json:"onlineNow"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type PathCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
