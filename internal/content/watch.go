package content

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Invalidator is anything with a listing cache to drop.
type Invalidator interface {
	Root() string
	Invalidate()
}

// Watch invalidates store caches when their directory trees change on
// disk (e.g. files copied in over sftp). fsnotify does not recurse, so
// the root and its year folders are watched and re-enumerated after
// every event; a slow ticker covers anything that slips through.
func Watch(stores []Invalidator, log *zap.SugaredLogger, stopCh <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	addAll := func() {
		for _, s := range stores {
			watcher.Add(s.Root())
			entries, err := os.ReadDir(s.Root())
			if err != nil {
				continue
			}
			for _, e := range entries {
				if e.IsDir() {
					watcher.Add(filepath.Join(s.Root(), e.Name()))
				}
			}
		}
	}
	addAll()

	invalidate := func() {
		for _, s := range stores {
			s.Invalidate()
		}
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0 {
				invalidate()
				addAll()
			}
		case err := <-watcher.Errors:
			if err != nil {
				log.Warnw("content watcher error", "error", err)
			}
		case <-ticker.C:
			invalidate()
		}
	}
}
