package store

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Trinaxus/tubox-server/internal/models"
)

// maxLineSize bounds a single log line. Events are small; anything
// bigger than this is garbage and gets skipped by the scanner.
const maxLineSize = 1 << 20

// FileEventStore keeps one <YYYY-MM-DD>.jsonl file per day under dir.
// Appends are serialized by a mutex so concurrent requests cannot
// interleave partial lines.
type FileEventStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileEventStore(dir string) (*FileEventStore, error) {
	if err := os.MkdirAll(dir, 0o775); err != nil {
		return nil, err
	}
	return &FileEventStore{dir: dir}, nil
}

func (s *FileEventStore) dayPath(t time.Time) string {
	return filepath.Join(s.dir, DayKey(t)+".jsonl")
}

func (s *FileEventStore) Append(e *models.Event) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.dayPath(time.Now()), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return err
	}
	_, werr := f.Write(append(line, '\n'))
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

func (s *FileEventStore) ScanDay(day time.Time, fn func(e *models.Event)) error {
	f, err := os.Open(s.dayPath(day))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e models.Event
		if err := json.Unmarshal(line, &e); err != nil {
			continue // skip malformed lines
		}
		fn(&e)
	}
	return scanner.Err()
}

func (s *FileEventStore) TailToday(n int) (int, []string, error) {
	f, err := os.Open(s.dayPath(time.Now()))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil, nil
		}
		return 0, nil, err
	}
	defer f.Close()

	var (
		count int
		tail  []string
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		count++
		if n > 0 {
			tail = append(tail, line)
			if len(tail) > n {
				tail = tail[1:]
			}
		}
	}
	return count, tail, scanner.Err()
}

// Check probes the store by opening today's file for append.
func (s *FileEventStore) Check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.dayPath(time.Now()), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return err
	}
	return f.Close()
}

func (s *FileEventStore) Close() error { return nil }
