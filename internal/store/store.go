package store

import (
	"time"

	"github.com/Trinaxus/tubox-server/internal/models"
)

// EventStore is the append-only analytics log. Implementations must
// serialize Append so concurrent writers never interleave records.
type EventStore interface {
	// Append records one event. The event is stored exactly once;
	// there is no update or delete path.
	Append(e *models.Event) error
	// ScanDay calls fn for every decodable event recorded on the given
	// calendar day (server-local). Records that fail to decode are
	// skipped. A day with no data is not an error.
	ScanDay(day time.Time, fn func(e *models.Event)) error
	// TailToday returns today's record count and up to n of the most
	// recent raw records, oldest first.
	TailToday(n int) (count int, lines []string, err error)
	// Check verifies the backing storage is reachable and writable.
	Check() error
	Close() error
}

// PresenceStore tracks the last heartbeat per anonymous client id.
// Entries are never evicted; staleness is decided at read time.
type PresenceStore interface {
	RecordHeartbeat(id string) error
	CountActiveSince(ttl time.Duration) (int, error)
	ActiveIDs(ttl time.Duration) ([]string, error)
}

// DayKey formats a time as the calendar-day key used for log files and
// the stats time series.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
