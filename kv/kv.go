// Package kv provides the key-value stores the graph repository persists
// into. Every backend holds opaque byte values under flat string keys; the
// repository only ever uses one key, but the stores make no assumption about
// it.
//
// Backends: Memory (tests and scratch sessions), File (a folder of JSON
// files), Badger (embedded BadgerDB), SQL (SQLite or Postgres table) and S3
// (one object per key). Open selects one from a DSN.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("kv: not found")

// Store is the interface for a key-value store.
type Store interface {
	// Get retrieves the value for a key. Returns ErrNotFound if not present.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a key-value pair. Overwrites any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. No error if the key does not exist.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// checkKey rejects keys that cannot be mapped safely onto file names or
// object keys.
func checkKey(key string) error {
	if key == "" {
		return errors.New("kv: empty key")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("kv: invalid key %q", key)
	}
	return nil
}
