package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todomatic/internal/output"
	"todomatic/internal/tasklist"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the bubbletea model for the task list.
// It mutates the store directly; the store's notifications keep the
// rendered view current.
type Model struct {
	store   *tasklist.Store
	saveErr func() error

	view     tasklist.View
	cursor   int
	mode     mode
	editID   string
	input    textinput.Model
	status   string
	showHelp bool

	cancel func()
}

// New creates a model over store. saveErr reports the last persistence
// failure and may be nil.
func New(store *tasklist.Store, saveErr func() error) *Model {
	ti := textinput.New()
	ti.Placeholder = "Task name"
	ti.CharLimit = 256
	ti.Width = 40

	m := &Model{
		store:   store,
		saveErr: saveErr,
		view:    store.View(),
		input:   ti,
		status:  "Press 'a' to add, space to toggle, '?' for help.",
	}
	m.cancel = store.Subscribe(m.refresh)
	return m
}

// Close stops listening to the store.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Selected returns the task under the cursor.
func (m *Model) Selected() (tasklist.Task, bool) {
	if len(m.view.Visible) == 0 {
		return tasklist.Task{}, false
	}
	return m.view.Visible[m.cursor], true
}

// Status returns the status line text.
func (m *Model) Status() string {
	return m.status
}

func (m *Model) refresh(v tasklist.View) {
	m.view = v
	m.cursor = clampCursor(m.cursor, len(v.Visible))
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg.String())
	case tea.WindowSizeMsg:
		if msg.Width > 20 {
			m.input.Width = msg.Width - 10
		}
	}
	return m, nil
}

func (m *Model) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "j", "down":
		m.cursor = clampCursor(m.cursor+1, len(m.view.Visible))
	case "k", "up":
		m.cursor = clampCursor(m.cursor-1, len(m.view.Visible))
	case "a":
		m.mode = modeAdd
		m.input.SetValue("")
		m.status = "New task: type a name and press enter"
		return m, m.input.Focus()
	case "e":
		task, ok := m.Selected()
		if !ok {
			m.status = "No task to edit"
			return m, nil
		}
		m.mode = modeEdit
		m.editID = task.ID
		m.input.SetValue(task.Name)
		m.input.CursorEnd()
		m.status = "New name for " + output.NormalizeName(task.Name)
		return m, m.input.Focus()
	case " ", "x":
		if task, ok := m.Selected(); ok {
			m.store.ToggleTaskCompleted(task.ID)
			m.afterMutation("Toggled " + output.NormalizeName(task.Name))
		}
	case "d":
		if task, ok := m.Selected(); ok {
			m.store.DeleteTask(task.ID)
			m.afterMutation("Deleted " + output.NormalizeName(task.Name))
		}
	case "1", "2", "3":
		m.setFilter(tasklist.Filters[int(key[0]-'1')])
	case "tab":
		m.setFilter(nextFilter(m.view.Filter))
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.leaveInput()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		name := m.input.Value()
		if m.mode == modeAdd {
			m.store.AddTask(name)
			m.leaveInput()
			m.cursor = clampCursor(len(m.view.Visible)-1, len(m.view.Visible))
			m.afterMutation("Added " + output.NormalizeName(name))
		} else {
			m.store.EditTask(m.editID, name)
			m.leaveInput()
			m.afterMutation("Renamed to " + output.NormalizeName(name))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) leaveInput() {
	m.mode = modeList
	m.editID = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m *Model) setFilter(f tasklist.Filter) {
	m.store.SetFilter(f)
	m.cursor = 0
	m.status = "Showing " + f.String()
}

func (m *Model) afterMutation(status string) {
	m.status = status
	if m.saveErr == nil {
		return
	}
	if err := m.saveErr(); err != nil {
		m.status = fmt.Sprintf("warning: tasks not saved: %v", err)
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("todomatic"))
	b.WriteString("\n\n")
	b.WriteString(output.FormatFilterBar(m.view.Filter))
	b.WriteString("\n\n")
	b.WriteString(m.view.Label)
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(helpText)
	} else {
		b.WriteString(m.renderTasks())
	}

	if m.mode != modeList {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if strings.HasPrefix(m.status, "warning:") {
		b.WriteString(warningStyle.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("a add • e edit • space toggle • d delete • 1/2/3 filter • ? help • q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderTasks() string {
	if len(m.view.Visible) == 0 {
		return dimStyle.Render("  Nothing here.") + "\n"
	}
	var b strings.Builder
	for i, task := range m.view.Visible {
		cursor := "  "
		if i == m.cursor && m.mode == modeList {
			cursor = cursorStyle.Render("> ")
		}
		name := output.NormalizeName(task.Name)
		if task.Completed {
			name = doneStyle.Render(name)
		}
		b.WriteString(cursor + output.Checkbox(task.Completed) + " " + name + "\n")
	}
	return b.String()
}

const helpText = `Keyboard Shortcuts

  a            Add a task
  e            Edit the selected task
  space, x     Toggle completed
  d            Delete the selected task
  1, 2, 3      Show All, Active, Complete
  tab          Next filter
  j/k, arrows  Move
  esc          Cancel add or edit
  ?            Toggle this help
  q, ctrl+c    Quit
`

func nextFilter(f tasklist.Filter) tasklist.Filter {
	for i, candidate := range tasklist.Filters {
		if candidate == f {
			return tasklist.Filters[(i+1)%len(tasklist.Filters)]
		}
	}
	return tasklist.FilterAll
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
