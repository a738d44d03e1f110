package storage

import (
	"context"
	"log/slog"

	"todomatic/internal/tasklist"
)

// Persister writes the whole collection to a slot after every mutation.
// Write failures are logged and remembered; they never reach the store.
type Persister struct {
	ctx    context.Context
	slot   Slot
	key    string
	logger *slog.Logger

	err    error
	writes int
}

// NewPersister creates a persister for key in slot. ctx bounds every write.
func NewPersister(ctx context.Context, slot Slot, key string, logger *slog.Logger) *Persister {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Persister{ctx: ctx, slot: slot, key: key, logger: logger}
}

// Persist implements tasklist.Persister.
func (p *Persister) Persist(tasks []tasklist.Task) {
	p.writes++
	p.err = p.save(tasks)
	if p.err != nil {
		p.logger.Warn("failed to save tasks", "key", p.key, "error", p.err)
		return
	}
	p.logger.Debug("saved tasks", "key", p.key, "count", len(tasks))
}

func (p *Persister) save(tasks []tasklist.Task) error {
	data, err := EncodeSnapshot(tasks)
	if err != nil {
		return err
	}
	return p.slot.Set(p.ctx, p.key, data)
}

// Err returns the error from the most recent write, or nil if it succeeded.
func (p *Persister) Err() error {
	return p.err
}

// Writes returns the number of writes attempted.
func (p *Persister) Writes() int {
	return p.writes
}
