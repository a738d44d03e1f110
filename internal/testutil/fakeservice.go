// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"todomatic/internal/backend/googletasks"
	"todomatic/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = googletasks.DefaultListID

// ErrNotFound is returned for a list id the fake does not know.
var ErrNotFound = errors.New("not found")

type fakeList struct {
	service.TaskList
	tasks []service.Task
}

// FakeService is an in-memory, read-only import source.
// It starts with an empty default list titled "My Tasks".
type FakeService struct {
	mu    sync.RWMutex
	lists []*fakeList

	// Error injection for testing
	DefaultListErr error
	ListListsErr   error
	ListTasksErr   map[string]error // listID -> error
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	return &FakeService{
		lists: []*fakeList{{
			TaskList: service.TaskList{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
		}},
		ListTasksErr: make(map[string]error),
	}
}

// AddList adds an empty list.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, &fakeList{TaskList: service.TaskList{ID: id, Title: title}})
}

// AddTask adds an open task to a list.
func (f *FakeService) AddTask(listID, taskID, title string) {
	f.addTask(listID, service.Task{ID: taskID, Title: title})
}

// AddCompletedTask adds a completed task to a list.
func (f *FakeService) AddCompletedTask(listID, taskID, title string) {
	f.addTask(listID, service.Task{ID: taskID, Title: title, Completed: true})
}

func (f *FakeService) addTask(listID string, t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l := f.find(listID); l != nil {
		l.tasks = append(l.tasks, t)
	}
}

func (f *FakeService) find(listID string) *fakeList {
	for _, l := range f.lists {
		if l.ID == listID {
			return l
		}
	}
	return nil
}

// DefaultList implements service.Service.
func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.find(DefaultListID).TaskList, nil
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	for i, l := range f.lists {
		result[i] = l.TaskList
	}
	return result, nil
}

// ResolveList implements service.Service with the same matching rules as
// the Google client.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	lists, err := f.ListLists(ctx)
	if err != nil {
		return service.TaskList{}, err
	}
	return googletasks.MatchList(lists, name)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, listID string, includeCompleted bool) ([]service.Task, error) {
	if err := f.ListTasksErr[listID]; err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	l := f.find(listID)
	if l == nil {
		return nil, ErrNotFound
	}
	var result []service.Task
	for _, t := range l.tasks {
		if includeCompleted || !t.Completed {
			result = append(result, t)
		}
	}
	return result, nil
}
