// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"todomatic/internal/session"
	"todomatic/internal/tasklist"
)

// ErrNotTTY is returned by Run when out is not a terminal.
var ErrNotTTY = errors.New("tui requires a terminal")

// Run shows the task list of s until the user quits or ctx is done.
func Run(ctx context.Context, s *session.Session, filter tasklist.Filter, out io.Writer) error {
	if !IsTTY(out) {
		return ErrNotTTY
	}

	s.Store.SetFilter(filter)
	m := New(s.Store, s.Persister.Err)
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(out))
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
