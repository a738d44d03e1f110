// Package session assembles the task store for one process.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"todomatic/internal/config"
	"todomatic/internal/idgen"
	"todomatic/internal/storage"
	"todomatic/internal/tasklist"
)

// Session owns a store together with the slot it is persisted to.
type Session struct {
	Store     *tasklist.Store
	Persister *storage.Persister
	Slot      storage.Slot
}

type options struct {
	slot storage.Slot
	ids  tasklist.IDGenerator
}

// Option customizes Open.
type Option func(*options)

// WithSlot uses slot instead of opening the configured one.
func WithSlot(slot storage.Slot) Option {
	return func(o *options) {
		o.slot = slot
	}
}

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(g tasklist.IDGenerator) Option {
	return func(o *options) {
		o.ids = g
	}
}

// Open loads the saved tasks and returns a store that persists every mutation
// back to the same slot.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Session, error) {
	o := options{ids: idgen.UUID{}}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.Default()
	}

	slot := o.slot
	if slot == nil {
		var err error
		slot, err = storage.Open(cfg.Storage, cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
	}
	logger.Debug("opened storage", "kind", cfg.Storage, "dir", cfg.DataDir, "key", cfg.StorageKey)

	initial := storage.NewLoader(slot, cfg.StorageKey, logger).Load(ctx)
	persister := storage.NewPersister(ctx, slot, cfg.StorageKey, logger)
	store := tasklist.New(initial,
		tasklist.WithIDGenerator(o.ids),
		tasklist.WithPersister(persister),
	)

	return &Session{
		Store:     store,
		Persister: persister,
		Slot:      slot,
	}, nil
}

// Close releases the slot.
func (s *Session) Close() error {
	return s.Slot.Close()
}
