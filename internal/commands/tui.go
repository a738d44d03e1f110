package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todomatic/internal/config"
	"todomatic/internal/exitcode"
	"todomatic/internal/tasklist"
	"todomatic/internal/ui"
)

func init() {
	Register(&TuiCmd{})
}

// TuiCmd implements the tui command.
type TuiCmd struct {
	filter string
}

// SetFilter sets the starting filter name (for testing).
func (c *TuiCmd) SetFilter(name string) {
	c.filter = name
}

func (c *TuiCmd) Name() string      { return "tui" }
func (c *TuiCmd) Aliases() []string { return nil }
func (c *TuiCmd) Synopsis() string  { return "Browse and edit tasks interactively" }
func (c *TuiCmd) Usage() string     { return "todomatic tui [--filter all|active|complete]" }
func (c *TuiCmd) NeedsStore() bool  { return true }
func (c *TuiCmd) NeedsAuth() bool   { return false }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(tasklist.FilterAll), "")
	fs.StringVar(&c.filter, "f", string(tasklist.FilterAll), "")
}

func (c *TuiCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	filter := tasklist.FilterAll
	if c.filter != "" {
		f, err := tasklist.ParseFilter(c.filter)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		filter = f
	}

	if err := ui.Run(ctx, env.Session, filter, out); err != nil {
		if errors.Is(err, ui.ErrNotTTY) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if err := env.Session.Persister.Err(); err != nil {
		fmt.Fprintf(errOut, "warning: tasks not saved: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
