package storage

import (
	"context"
	"errors"
	"log/slog"

	"todomatic/internal/tasklist"
)

// Loader reads the initial task collection from a slot.
type Loader struct {
	slot   Slot
	key    string
	logger *slog.Logger
}

// NewLoader creates a loader for key in slot. A nil logger uses slog.Default.
func NewLoader(slot Slot, key string, logger *slog.Logger) *Loader {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{slot: slot, key: key, logger: logger}
}

// Load returns the saved collection. A missing key yields an empty collection;
// an unreadable slot or malformed snapshot is logged and also yields an empty
// collection. Load never fails.
func (l *Loader) Load(ctx context.Context) []tasklist.Task {
	data, err := l.slot.Get(ctx, l.key)
	if errors.Is(err, ErrNotFound) {
		l.logger.Debug("no saved tasks", "key", l.key)
		return []tasklist.Task{}
	}
	if err != nil {
		l.logger.Warn("could not read saved tasks, starting empty", "key", l.key, "error", err)
		return []tasklist.Task{}
	}

	tasks, err := DecodeSnapshot(data)
	if err != nil {
		l.logger.Warn("ignoring malformed saved tasks, starting empty", "key", l.key, "error", err)
		return []tasklist.Task{}
	}
	l.logger.Debug("loaded tasks", "key", l.key, "count", len(tasks))
	return tasks
}
