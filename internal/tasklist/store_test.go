package tasklist_test

import (
	"reflect"
	"testing"

	"todomatic/internal/idgen"
	"todomatic/internal/tasklist"
)

// recorder captures every collection handed to the persister.
type recorder struct {
	writes [][]tasklist.Task
}

func (r *recorder) Persist(tasks []tasklist.Task) {
	r.writes = append(r.writes, tasks)
}

func newStore(initial []tasklist.Task) (*tasklist.Store, *recorder) {
	rec := &recorder{}
	s := tasklist.New(initial,
		tasklist.WithIDGenerator(&idgen.Sequence{}),
		tasklist.WithPersister(rec),
	)
	return s, rec
}

func sample() []tasklist.Task {
	return []tasklist.Task{
		{ID: "a", Name: "Eat", Completed: true},
		{ID: "b", Name: "Sleep", Completed: false},
		{ID: "c", Name: "Repeat", Completed: false},
	}
}

func TestNew_Defaults(t *testing.T) {
	s, rec := newStore(nil)

	if s.Filter() != tasklist.FilterAll {
		t.Errorf("expected default filter All, got %q", s.Filter())
	}
	if len(s.Tasks()) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(s.Tasks()))
	}
	if len(rec.writes) != 0 {
		t.Errorf("expected no writes on construction, got %d", len(rec.writes))
	}
}

func TestNew_DropsDuplicateIDs(t *testing.T) {
	s, _ := newStore([]tasklist.Task{
		{ID: "a", Name: "first"},
		{ID: "a", Name: "second"},
		{ID: "b", Name: "third"},
	})

	got := s.Tasks()
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].Name != "first" || got[1].ID != "b" {
		t.Errorf("unexpected collection: %+v", got)
	}
}

func TestAddTask_AppendsIncomplete(t *testing.T) {
	s, rec := newStore(sample())

	s.AddTask("Buy milk")

	got := s.Tasks()
	if len(got) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(got))
	}
	last := got[3]
	if last.Name != "Buy milk" || last.Completed {
		t.Errorf("unexpected new task: %+v", last)
	}
	if last.ID == "" {
		t.Error("expected generated id")
	}
	if len(rec.writes) != 1 {
		t.Errorf("expected 1 persistence write, got %d", len(rec.writes))
	}
}

func TestAddTask_EmptyNameAccepted(t *testing.T) {
	s, _ := newStore(nil)

	s.AddTask("")

	if len(s.Tasks()) != 1 {
		t.Fatalf("expected 1 task, got %d", len(s.Tasks()))
	}
	if s.Tasks()[0].Name != "" {
		t.Errorf("expected empty name, got %q", s.Tasks()[0].Name)
	}
}

func TestAddTask_SkipsCollidingIDs(t *testing.T) {
	s := tasklist.New([]tasklist.Task{{ID: "task-1"}, {ID: "task-2"}},
		tasklist.WithIDGenerator(&idgen.Sequence{}))

	s.AddTask("new")

	if got := s.Tasks()[2].ID; got != "task-3" {
		t.Errorf("expected task-3, got %q", got)
	}
}

func TestIDsStayUnique(t *testing.T) {
	s, _ := newStore(nil)

	for i := 0; i < 20; i++ {
		s.AddTask("task")
		if i%3 == 0 && len(s.Tasks()) > 1 {
			s.DeleteTask(s.Tasks()[0].ID)
		}
		if i%4 == 0 {
			s.ToggleTaskCompleted(s.Tasks()[len(s.Tasks())-1].ID)
		}
	}

	seen := make(map[string]bool)
	for _, task := range s.Tasks() {
		if seen[task.ID] {
			t.Fatalf("duplicate id %q", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestToggleTaskCompleted_Involution(t *testing.T) {
	s, rec := newStore(sample())
	before := s.Tasks()

	s.ToggleTaskCompleted("b")
	if !s.Tasks()[1].Completed {
		t.Fatal("expected task b to be completed after one toggle")
	}
	s.ToggleTaskCompleted("b")

	if !reflect.DeepEqual(before, s.Tasks()) {
		t.Errorf("expected original collection after two toggles\nwant: %+v\ngot:  %+v", before, s.Tasks())
	}
	if len(rec.writes) != 2 {
		t.Errorf("expected 2 writes, got %d", len(rec.writes))
	}
}

func TestToggleTaskCompleted_UnknownID(t *testing.T) {
	s, _ := newStore(sample())
	before := s.Tasks()

	s.ToggleTaskCompleted("missing")

	if !reflect.DeepEqual(before, s.Tasks()) {
		t.Errorf("expected unchanged collection, got %+v", s.Tasks())
	}
}

func TestDeleteTask(t *testing.T) {
	s, _ := newStore(sample())

	s.DeleteTask("b")

	want := []tasklist.Task{
		{ID: "a", Name: "Eat", Completed: true},
		{ID: "c", Name: "Repeat", Completed: false},
	}
	if !reflect.DeepEqual(want, s.Tasks()) {
		t.Errorf("want %+v, got %+v", want, s.Tasks())
	}
}

func TestDeleteTask_UnknownID(t *testing.T) {
	s, rec := newStore(sample())
	before := s.Tasks()

	s.DeleteTask("missing")

	if !reflect.DeepEqual(before, s.Tasks()) {
		t.Errorf("expected unchanged collection, got %+v", s.Tasks())
	}
	if len(rec.writes) != 1 {
		t.Errorf("expected delete to still persist once, got %d", len(rec.writes))
	}
}

func TestEditTask_OnlyChangesName(t *testing.T) {
	s, _ := newStore(nil)
	s.AddTask("Buy milk")
	s.ToggleTaskCompleted(s.Tasks()[0].ID)
	before := s.Tasks()[0]

	s.EditTask(before.ID, "Buy oat milk")

	after := s.Tasks()[0]
	if after.Name != "Buy oat milk" {
		t.Errorf("expected new name, got %q", after.Name)
	}
	if after.ID != before.ID || after.Completed != before.Completed {
		t.Errorf("expected id and completed unchanged: before %+v, after %+v", before, after)
	}
}

func TestEditTask_UnknownID(t *testing.T) {
	s, _ := newStore(sample())
	before := s.Tasks()

	s.EditTask("missing", "whatever")

	if !reflect.DeepEqual(before, s.Tasks()) {
		t.Errorf("expected unchanged collection, got %+v", s.Tasks())
	}
}

func TestMutationsDoNotAliasPreviousValue(t *testing.T) {
	s, _ := newStore(sample())
	snapshot := s.Tasks()
	saved := append([]tasklist.Task(nil), snapshot...)

	s.ToggleTaskCompleted("a")
	s.EditTask("b", "Nap")
	s.DeleteTask("c")
	s.AddTask("More")

	if !reflect.DeepEqual(saved, snapshot) {
		t.Errorf("previous collection was mutated\nwant: %+v\ngot:  %+v", saved, snapshot)
	}
}

func TestTasks_WritesDoNotReachStore(t *testing.T) {
	s, rec := newStore(nil)
	s.AddTask("Buy milk")
	want := s.Tasks()

	got := s.Tasks()
	got[0].Name = "changed"
	got[0].Completed = true

	if !reflect.DeepEqual(want, s.Tasks()) {
		t.Errorf("store changed through Tasks result\nwant: %+v\ngot:  %+v", want, s.Tasks())
	}
	if len(rec.writes) != 1 {
		t.Errorf("expected only the add to persist, got %d writes", len(rec.writes))
	}
}

func TestView_WritesDoNotReachStore(t *testing.T) {
	s, _ := newStore(sample())
	want := s.Tasks()

	var seen tasklist.View
	s.Subscribe(func(v tasklist.View) { seen = v })
	s.SetFilter(tasklist.FilterActive)

	seen.Tasks[0].Name = "changed"
	seen.Visible[0].ID = "a"
	v := s.View()
	v.Tasks[1].Completed = true

	if !reflect.DeepEqual(want, s.Tasks()) {
		t.Errorf("store changed through View\nwant: %+v\ngot:  %+v", want, s.Tasks())
	}
	if got := s.VisibleTasks(); got[0].ID != "b" {
		t.Errorf("visible tasks changed: %+v", got)
	}
}

func TestSetFilter_DoesNotPersist(t *testing.T) {
	s, rec := newStore(sample())

	s.SetFilter(tasklist.FilterActive)

	if s.Filter() != tasklist.FilterActive {
		t.Errorf("expected Active, got %q", s.Filter())
	}
	if len(rec.writes) != 0 {
		t.Errorf("expected no writes, got %d", len(rec.writes))
	}
}

func TestVisibleTasks(t *testing.T) {
	tests := []struct {
		filter tasklist.Filter
		want   []string
	}{
		{tasklist.FilterAll, []string{"a", "b", "c"}},
		{tasklist.FilterComplete, []string{"a"}},
		{tasklist.FilterActive, []string{"b", "c"}},
		{tasklist.Filter("bogus"), []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			s, _ := newStore(sample())
			s.SetFilter(tt.filter)

			var got []string
			for _, task := range s.VisibleTasks() {
				got = append(got, task.ID)
			}
			if !reflect.DeepEqual(tt.want, got) {
				t.Errorf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRemainingCountLabel(t *testing.T) {
	s, _ := newStore(nil)
	if got := s.RemainingCountLabel(); got != "0 tasks remaining" {
		t.Errorf("got %q", got)
	}
	s.AddTask("one")
	if got := s.RemainingCountLabel(); got != "1 task remaining" {
		t.Errorf("got %q", got)
	}
	s.AddTask("two")
	if got := s.RemainingCountLabel(); got != "2 tasks remaining" {
		t.Errorf("got %q", got)
	}
}

func TestScenario_BuyMilk(t *testing.T) {
	s, _ := newStore(nil)

	s.AddTask("Buy milk")
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Name != "Buy milk" || tasks[0].Completed {
		t.Fatalf("unexpected collection after add: %+v", tasks)
	}
	id := tasks[0].ID

	s.ToggleTaskCompleted(id)
	if !s.Tasks()[0].Completed {
		t.Fatal("expected task to be completed")
	}

	s.SetFilter(tasklist.FilterActive)
	if len(s.VisibleTasks()) != 0 {
		t.Errorf("expected no active tasks, got %+v", s.VisibleTasks())
	}

	s.SetFilter(tasklist.FilterComplete)
	visible := s.VisibleTasks()
	if len(visible) != 1 || visible[0].ID != id {
		t.Errorf("expected only the completed task, got %+v", visible)
	}
}

func TestSubscribe(t *testing.T) {
	s, _ := newStore(nil)

	var views []tasklist.View
	cancel := s.Subscribe(func(v tasklist.View) {
		views = append(views, v)
	})

	s.AddTask("one")
	s.SetFilter(tasklist.FilterComplete)

	if len(views) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(views))
	}
	if views[0].Label != "1 task remaining" {
		t.Errorf("unexpected first label %q", views[0].Label)
	}
	if views[1].Filter != tasklist.FilterComplete || len(views[1].Visible) != 0 {
		t.Errorf("unexpected second view: %+v", views[1])
	}

	cancel()
	s.AddTask("two")
	if len(views) != 2 {
		t.Errorf("expected no notifications after cancel, got %d", len(views))
	}
}

func TestSubscribe_Order(t *testing.T) {
	s, _ := newStore(nil)

	var order []string
	s.Subscribe(func(tasklist.View) { order = append(order, "first") })
	cancel := s.Subscribe(func(tasklist.View) { order = append(order, "second") })
	s.Subscribe(func(tasklist.View) { order = append(order, "third") })

	s.AddTask("x")
	cancel()
	s.AddTask("y")

	want := []string{"first", "second", "third", "first", "third"}
	if !reflect.DeepEqual(want, order) {
		t.Errorf("want %v, got %v", want, order)
	}
}

func TestFind(t *testing.T) {
	s, _ := newStore(sample())

	task, ok := s.Find("b")
	if !ok || task.Name != "Sleep" {
		t.Errorf("expected to find Sleep, got %+v %v", task, ok)
	}
	if _, ok := s.Find("missing"); ok {
		t.Error("expected missing id to be absent")
	}
}
