package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Trinaxus/tubox-server/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	day TEXT NOT NULL,
	record TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_day ON events(day);
`

// SQLiteEventStore is the embedded-database alternative to the flat
// daily files. Records are still stored as raw JSON, one row per event,
// keyed by calendar day, so both backends behave identically through
// the EventStore interface.
type SQLiteEventStore struct {
	db *sql.DB
}

func NewSQLiteEventStore(dbPath string) (*SQLiteEventStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteEventStore{db: db}, nil
}

func (s *SQLiteEventStore) Append(e *models.Event) error {
	record, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO events (day, record) VALUES (?, ?)`, DayKey(time.Now()), string(record))
	return err
}

func (s *SQLiteEventStore) ScanDay(day time.Time, fn func(e *models.Event)) error {
	rows, err := s.db.Query(`SELECT record FROM events WHERE day = ? ORDER BY id`, DayKey(day))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return err
		}
		var e models.Event
		if err := json.Unmarshal([]byte(record), &e); err != nil {
			continue // skip malformed records
		}
		fn(&e)
	}
	return rows.Err()
}

func (s *SQLiteEventStore) TailToday(n int) (int, []string, error) {
	today := DayKey(time.Now())
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM events WHERE day = ?`, today).Scan(&count); err != nil {
		return 0, nil, err
	}
	if n <= 0 || count == 0 {
		return count, nil, nil
	}
	rows, err := s.db.Query(`SELECT record FROM events WHERE day = ? ORDER BY id DESC LIMIT ?`, today, n)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()
	var tail []string
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return 0, nil, err
		}
		tail = append(tail, record)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}
	// newest-first from the query; return oldest first
	for i, j := 0, len(tail)-1; i < j; i, j = i+1, j-1 {
		tail[i], tail[j] = tail[j], tail[i]
	}
	return count, tail, nil
}

func (s *SQLiteEventStore) Check() error {
	return s.db.Ping()
}

func (s *SQLiteEventStore) Close() error {
	return s.db.Close()
}
