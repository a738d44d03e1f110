// Package service defines the read-only interface to a remote task source
// that local tasks can be imported from.
package service

import (
	"context"
	"errors"
)

// ErrAuth marks failures the user fixes by logging in again.
var ErrAuth = errors.New("authentication failed")

// AuthFailure wraps err so that errors.Is(err, ErrAuth) holds.
// The message is err's own.
func AuthFailure(err error) error {
	if err == nil {
		return nil
	}
	return &authError{err: err}
}

type authError struct {
	err error
}

func (e *authError) Error() string        { return e.err.Error() }
func (e *authError) Unwrap() error        { return e.err }
func (e *authError) Is(target error) bool { return target == ErrAuth }

// Service reads task lists from a remote backend.
// Commands never import a backend SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in backend order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns every task in a list in backend order.
	// Completed tasks are included only when includeCompleted is set.
	ListTasks(ctx context.Context, listID string, includeCompleted bool) ([]Task, error)
}
