package store

import (
	"encoding/json"
	"os"
	"sort"
	"sync"
	"time"
)

// FilePresenceStore keeps the whole presence map in a single JSON file
// (client id -> last-heartbeat Unix seconds). The file is rewritten on
// every heartbeat; the mutex makes that a single-writer update instead
// of the lost-update race a bare read-modify-write would have.
type FilePresenceStore struct {
	path string
	mu   sync.Mutex
}

func NewFilePresenceStore(path string) *FilePresenceStore {
	return &FilePresenceStore{path: path}
}

func (s *FilePresenceStore) RecordHeartbeat(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.read()
	if err != nil {
		return err
	}
	m[id] = time.Now().Unix()
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o664)
}

func (s *FilePresenceStore) CountActiveSince(ttl time.Duration) (int, error) {
	ids, err := s.ActiveIDs(ttl)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *FilePresenceStore) ActiveIDs(ttl time.Duration) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.read()
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().Add(-ttl).Unix()
	var ids []string
	for id, last := range m {
		if last >= cutoff {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// read loads the map; a missing or corrupt file yields an empty map so a
// bad state never wedges heartbeats.
func (s *FilePresenceStore) read() (map[string]int64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]int64{}, nil
		}
		return nil, err
	}
	m := map[string]int64{}
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]int64{}, nil
	}
	return m, nil
}
