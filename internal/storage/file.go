package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lowaak/workout-planner/internal/go_func_utils"
)

const watchDebounce = 200 * time.Millisecond

// FileStore keeps each snapshot in <dir>/<key>.json
type FileStore struct {
	dir    string
	logger *log.Logger

	mu       sync.Mutex
	watchers []*fsnotify.Watcher
	watchGo  *go_func_utils.Group
}

func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if logger == nil {
		panic("FileStore: logger cannot be nil")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, logger: logger, watchGo: go_func_utils.NewGroup(logger)}, nil
}

// Path returns the file a key is stored in
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return raw, nil
}

// Save writes to a temp file in the same directory and renames it over the
// old snapshot, so readers never see a partial file
func (s *FileStore) Save(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	return nil
}

// Watch calls fn whenever the key's file is written, removed or renamed into
// place. Bursts of events are collapsed into one call. Watching stops when
// ctx is done or the store is closed.
func (s *FileStore) Watch(ctx context.Context, key string, fn func()) error {
	if err := validateKey(key); err != nil {
		return err
	}
	fsW, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	// The directory is watched rather than the file: atomic saves replace the
	// inode, which would drop a file watch.
	if err := fsW.Add(s.dir); err != nil {
		fsW.Close()
		return fmt.Errorf("watching %s: %w", s.dir, err)
	}

	s.mu.Lock()
	s.watchers = append(s.watchers, fsW)
	s.mu.Unlock()

	target := s.Path(key)
	s.watchGo.Go("storage watch "+key, func() {
		s.watchLoop(ctx, fsW, target, fn)
	})
	s.logger.Printf("FileStore: Watching %s", target)
	return nil
}

func (s *FileStore) watchLoop(ctx context.Context, fsW *fsnotify.Watcher, target string, fn func()) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		fsW.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsW.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, fn)

		case err, ok := <-fsW.Errors:
			if !ok {
				return
			}
			s.logger.Printf("FileStore: Watch error on %s: %v", target, err)
		}
	}
}

// Close stops all watches and waits for their goroutines
func (s *FileStore) Close() error {
	s.mu.Lock()
	watchers := s.watchers
	s.watchers = nil
	s.mu.Unlock()

	for _, w := range watchers {
		w.Close()
	}
	s.watchGo.Wait()
	return nil
}
