// Package storage provides the persistence surface for the inventory.
// It defines a small string key-value interface and implementations for
// different storage backends: a locked JSON file, SQLite, and memory.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrClosed is returned by operations on a closed KV
var ErrClosed = errors.New("storage is closed")

// KV is the durable key-value surface the record store persists to.
// Values are opaque strings; the store serializes its snapshot itself.
type KV interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value
	Set(key, value string) error

	// Close releases any resources held by the storage
	Close() error
}

// Backend names a KV implementation
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Backends lists the supported backend names
var Backends = []Backend{BackendJSON, BackendSQLite, BackendMemory}

// ParseBackend resolves a backend name, defaulting to json when empty
func ParseBackend(name string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(name))) {
	case "", BackendJSON:
		return BackendJSON, nil
	case BackendSQLite:
		return BackendSQLite, nil
	case BackendMemory:
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q (valid: json, sqlite, memory)", name)
	}
}

// Open creates the KV for backend at path. The path is ignored by the memory backend.
func Open(backend Backend, path string, opts ...Option) (KV, error) {
	switch backend {
	case BackendJSON, "":
		if path == "" {
			return nil, fmt.Errorf("json backend requires a file path")
		}
		return NewJSONFile(path, opts...), nil
	case BackendSQLite:
		if path == "" {
			return nil, fmt.Errorf("sqlite backend requires a file path")
		}
		return NewSQLite(path, opts...)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Copy copies the given keys from src to dst, skipping keys absent in src.
// It returns the number of keys written.
func Copy(dst, src KV, keys ...string) (int, error) {
	copied := 0
	for _, key := range keys {
		value, ok, err := src.Get(key)
		if err != nil {
			return copied, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := dst.Set(key, value); err != nil {
			return copied, fmt.Errorf("failed to write %s: %w", key, err)
		}
		copied++
	}
	return copied, nil
}
