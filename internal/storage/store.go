package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Load when nothing was saved under the key
var ErrNotFound = errors.New("snapshot not found")

// Store keeps whole-object snapshots under string keys. Every Save replaces
// the previous value for the key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}

// Watcher is implemented by stores that can report snapshots changed by
// another process. fn runs on the watcher goroutine.
type Watcher interface {
	Watch(ctx context.Context, key string, fn func()) error
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty snapshot key")
	}
	if strings.ContainsAny(key, `/\.`) {
		return fmt.Errorf("invalid snapshot key %q", key)
	}
	return nil
}
