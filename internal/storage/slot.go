// Package storage persists the task collection in a named key-value slot.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// DefaultKey is the slot key holding the task snapshot.
const DefaultKey = "tasks"

// ErrNotFound is returned by Slot.Get when the key has never been written.
var ErrNotFound = errors.New("not found")

// Slot is a key-value location holding one serialized value per key.
// Set always overwrites the whole value.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Kind names a slot implementation.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// ParseKind validates a slot kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindFile, KindSQLite, KindMemory:
		return k, nil
	default:
		return "", fmt.Errorf("unknown storage kind: %s", s)
	}
}

// Open opens the slot of the given kind rooted at dir.
func Open(kind Kind, dir string) (Slot, error) {
	switch kind {
	case KindFile, "":
		return NewFileSlot(dir), nil
	case KindSQLite:
		return OpenSQLite(filepath.Join(dir, SQLiteFile))
	case KindMemory:
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown storage kind: %s", kind)
	}
}
