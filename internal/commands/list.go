package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todomatic/internal/config"
	"todomatic/internal/exitcode"
	"todomatic/internal/output"
	"todomatic/internal/tasklist"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todomatic` (no args) and `todomatic list --filter <name>`.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(name string) {
	c.filter = name
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todomatic list [--filter all|active|complete]" }
func (c *ListCmd) NeedsStore() bool  { return true }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(tasklist.FilterAll), "")
	fs.StringVar(&c.filter, "f", string(tasklist.FilterAll), "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter := tasklist.FilterAll
	if c.filter != "" {
		f, err := tasklist.ParseFilter(c.filter)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		filter = f
	}

	store := env.Session.Store
	store.SetFilter(filter)
	view := store.View()

	pos := positions(view.Tasks)
	output.FormatHeading(out, view.Label)
	for _, task := range view.Visible {
		output.FormatTask(out, pos[task.ID], task)
	}
	return exitcode.Success
}

// positions maps each task id to its 1-based position in the collection.
// Numbers printed by list stay valid for toggle/edit/rm under any filter.
func positions(tasks []tasklist.Task) map[string]int {
	pos := make(map[string]int, len(tasks))
	for i, t := range tasks {
		pos[t.ID] = i + 1
	}
	return pos
}
