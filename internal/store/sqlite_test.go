package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trinaxus/tubox-server/internal/models"
)

func newSQLiteStore(t *testing.T) *SQLiteEventStore {
	t.Helper()
	s, err := NewSQLiteEventStore(filepath.Join(t.TempDir(), "analytics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteEventStoreAppendAndScan(t *testing.T) {
	s := newSQLiteStore(t)

	require.NoError(t, s.Append(&models.Event{Type: models.TypePageview, Path: "/a", UUID: "u1"}))
	require.NoError(t, s.Append(&models.Event{Type: models.TypeEvent, Path: "/b"}))

	var got []models.Event
	require.NoError(t, s.ScanDay(time.Now(), func(e *models.Event) {
		got = append(got, *e)
	}))
	require.Len(t, got, 2)
	assert.Equal(t, "/a", got[0].Path)
	assert.Equal(t, "/b", got[1].Path)
}

func TestSQLiteEventStoreScanOtherDayEmpty(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, s.Append(&models.Event{Type: models.TypePageview, Path: "/a"}))

	calls := 0
	require.NoError(t, s.ScanDay(time.Now().AddDate(0, 0, -1), func(e *models.Event) { calls++ }))
	assert.Zero(t, calls)
}

func TestSQLiteEventStoreTailToday(t *testing.T) {
	s := newSQLiteStore(t)
	for _, p := range []string{"/1", "/2", "/3"} {
		require.NoError(t, s.Append(&models.Event{Type: models.TypePageview, Path: p}))
	}

	count, tail, err := s.TailToday(2)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, tail, 2)
	assert.Contains(t, tail[0], "/2")
	assert.Contains(t, tail[1], "/3")
}

func TestSQLiteEventStoreCheck(t *testing.T) {
	s := newSQLiteStore(t)
	assert.NoError(t, s.Check())
}
