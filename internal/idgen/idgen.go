// Package idgen generates task identifiers.
package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// Prefix is prepended to every generated id.
const Prefix = "task-"

// UUID generates ids of the form "task-<random uuid>".
type UUID struct{}

// NewID returns a fresh random id.
func (UUID) NewID() string {
	return Prefix + uuid.NewString()
}

// Sequence generates predictable ids ("task-1", "task-2", ...).
// The zero value is ready to use.
type Sequence struct {
	Prefix string
	n      int
}

// NewID returns the next id in the sequence.
func (s *Sequence) NewID() string {
	s.n++
	prefix := s.Prefix
	if prefix == "" {
		prefix = Prefix
	}
	return fmt.Sprintf("%s%d", prefix, s.n)
}
