package tasklist

import (
	"slices"
	"strconv"
)

// IDGenerator supplies a fresh unique id for each new task.
type IDGenerator interface {
	NewID() string
}

// Persister receives the full collection after every mutation.
// Implementations handle their own failures; nothing is reported back to the store.
type Persister interface {
	Persist(tasks []Task)
}

// View is the derived state a renderer draws from.
type View struct {
	Tasks   []Task
	Visible []Task
	Filter  Filter
	Label   string
}

// Store owns the task collection and the active filter.
//
// Every mutation replaces the collection with a new slice, and Tasks and View
// hand out copies, so callers can neither see later updates nor write through
// to the store. Operations referencing an unknown
// id are no-ops. A Store is not safe for concurrent use.
type Store struct {
	tasks     []Task
	filter    Filter
	ids       IDGenerator
	persister Persister

	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(View)
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the generator used by AddTask.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		s.ids = g
	}
}

// WithPersister sets the collaborator written to after each mutation.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// New creates a store seeded with initial and the All filter.
// Later duplicates of an id in initial are dropped.
func New(initial []Task, opts ...Option) *Store {
	s := &Store{
		tasks:  dedupe(initial),
		filter: FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = &counter{}
	}
	return s
}

// AddTask appends a new, incomplete task named name.
func (s *Store) AddTask(name string) {
	id := s.ids.NewID()
	for s.indexOf(id) >= 0 {
		id = s.ids.NewID()
	}
	next := make([]Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	s.commit(append(next, Task{ID: id, Name: name}))
}

// ToggleTaskCompleted flips the completed flag of the task with the given id.
func (s *Store) ToggleTaskCompleted(id string) {
	s.commit(s.replace(id, func(t Task) Task {
		t.Completed = !t.Completed
		return t
	}))
}

// EditTask renames the task with the given id.
func (s *Store) EditTask(id, newName string) {
	s.commit(s.replace(id, func(t Task) Task {
		t.Name = newName
		return t
	}))
}

// DeleteTask removes the task with the given id.
func (s *Store) DeleteTask(id string) {
	next := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	s.commit(next)
}

// SetFilter replaces the active filter. The collection is not persisted.
func (s *Store) SetFilter(f Filter) {
	s.filter = f
	s.notify()
}

// Tasks returns a copy of the current collection.
func (s *Store) Tasks() []Task {
	return slices.Clone(s.tasks)
}

// Filter returns the active filter.
func (s *Store) Filter() Filter {
	return s.filter
}

// Find returns the task with the given id.
func (s *Store) Find(id string) (Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// VisibleTasks returns the tasks selected by the active filter.
func (s *Store) VisibleTasks() []Task {
	return Apply(s.filter, s.tasks)
}

// RemainingCountLabel returns the heading for the visible tasks.
func (s *Store) RemainingCountLabel() string {
	return RemainingLabel(len(s.VisibleTasks()))
}

// View derives the renderer state from the current collection and filter.
func (s *Store) View() View {
	visible := s.VisibleTasks()
	return View{
		Tasks:   slices.Clone(s.tasks),
		Visible: visible,
		Filter:  s.filter,
		Label:   RemainingLabel(len(visible)),
	}
}

// Subscribe registers fn to be called with the new view after every change.
// Subscribers run synchronously in registration order. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func(View)) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.subs = slices.DeleteFunc(slices.Clone(s.subs), func(sub subscriber) bool {
			return sub.id == id
		})
	}
}

func (s *Store) replace(id string, update func(Task) Task) []Task {
	next := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		if t.ID == id {
			t = update(t)
		}
		next[i] = t
	}
	return next
}

func (s *Store) commit(next []Task) {
	s.tasks = next
	if s.persister != nil {
		s.persister.Persist(next)
	}
	s.notify()
}

func (s *Store) notify() {
	if len(s.subs) == 0 {
		return
	}
	v := s.View()
	for _, sub := range s.subs {
		sub.fn(v)
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

// counter is the fallback generator when none is configured.
type counter struct{ n int }

func (c *counter) NewID() string {
	c.n++
	return "task-" + strconv.Itoa(c.n)
}

func dedupe(tasks []Task) []Task {
	seen := make(map[string]bool, len(tasks))
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
