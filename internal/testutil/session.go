package testutil

import (
	"context"
	"testing"

	"todomatic/internal/config"
	"todomatic/internal/idgen"
	"todomatic/internal/logging"
	"todomatic/internal/session"
	"todomatic/internal/storage"
	"todomatic/internal/tasklist"
)

// NewSession opens a session over an in-memory slot seeded with tasks.
// Ids of added tasks are predictable: task-1, task-2, ...
func NewSession(t *testing.T, tasks ...tasklist.Task) (*session.Session, *storage.MemorySlot) {
	t.Helper()

	slot := storage.NewMemorySlot()
	if len(tasks) > 0 {
		data, err := storage.EncodeSnapshot(tasks)
		if err != nil {
			t.Fatalf("encode seed tasks: %v", err)
		}
		if err := slot.Set(context.Background(), storage.DefaultKey, data); err != nil {
			t.Fatalf("seed slot: %v", err)
		}
		slot.Writes = 0
	}

	cfg := &config.Config{Dir: t.TempDir(), StorageKey: storage.DefaultKey}
	s, err := session.Open(context.Background(), cfg, logging.Discard(),
		session.WithSlot(slot),
		session.WithIDGenerator(&idgen.Sequence{}),
	)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return s, slot
}

// SavedTasks decodes what the slot currently holds.
func SavedTasks(t *testing.T, slot storage.Slot) []tasklist.Task {
	t.Helper()
	data, err := slot.Get(context.Background(), storage.DefaultKey)
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	tasks, err := storage.DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode slot: %v", err)
	}
	return tasks
}
