package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// LoadJSON decodes the snapshot under key into a value. When the snapshot is
// missing, unreadable or does not decode, the reason is logged and fallback()
// is returned instead. valid may reject a decoded value that has the wrong
// shape; nil accepts everything.
func LoadJSON[T any](ctx context.Context, s Store, key string, logger *log.Logger, fallback func() T, valid func(T) error) T {
	raw, err := s.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		logger.Printf("Storage: load %s (no existing snapshot)", key)
		return fallback()
	}
	if err != nil {
		logger.Printf("Storage: load %s failed: %v", key, err)
		return fallback()
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Printf("Storage: load %s failed to parse: %v", key, err)
		return fallback()
	}
	if valid != nil {
		if err := valid(v); err != nil {
			logger.Printf("Storage: load %s rejected: %v", key, err)
			return fallback()
		}
	}
	logger.Printf("Storage: load %s (%d bytes)", key, len(raw))
	return v
}

// SaveJSON encodes v and saves it under key as one snapshot
func SaveJSON[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}
