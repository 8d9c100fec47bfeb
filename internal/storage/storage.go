// Package storage is the persistent store adapter: independently keyed JSON
// documents in a durable key/value medium.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Document keys.
const (
	KeyGuest       = "event-rsvp:guest"
	KeyAdmin       = "event-rsvp:admin"
	KeyGifts       = "event-rsvp:gifts"
	KeyAttendance  = "event-rsvp:rsvps"
	KeyEventConfig = "event-rsvp:config"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is a durable key/value medium holding raw JSON documents.
type Store interface {
	// Get returns the document stored under key. ok is false when absent.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open creates the store for the named backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, "event-rsvp.db"))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Load decodes the document under key into a value. An absent or null
// document yields fallback(). A document that cannot be decoded also yields
// fallback() and is logged; only a failure of the medium is returned.
func Load[T any](ctx context.Context, s Store, key string, fallback func() T, log zerolog.Logger) (T, error) {
	return LoadChecked(ctx, s, key, fallback, nil, log)
}

// LoadChecked is Load with an extra usability check. A decoded value for
// which usable returns false is treated like a malformed document.
func LoadChecked[T any](ctx context.Context, s Store, key string, fallback func() T, usable func(T) bool, log zerolog.Logger) (T, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to read %s: %w", key, err)
	}
	data = bytes.TrimSpace(data)
	if !ok || len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fallback(), nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Stored document is malformed, using default")
		return fallback(), nil
	}
	if usable != nil && !usable(value) {
		log.Warn().Str("key", key).Msg("Stored document is incomplete, using default")
		return fallback(), nil
	}
	return value, nil
}

// Save encodes value and writes it under key.
func Save(ctx context.Context, s Store, key string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
