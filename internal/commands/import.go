package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todomatic/internal/config"
	"todomatic/internal/exitcode"
	"todomatic/internal/service"
)

func init() {
	Register(&ImportCmd{})
}

// ImportCmd implements the import command.
// It copies tasks from the remote source into the local list; nothing is
// written back to the remote.
type ImportCmd struct {
	listName  string
	completed bool
}

// SetListName sets the list name (for testing).
func (c *ImportCmd) SetListName(name string) {
	c.listName = name
}

// SetCompleted sets whether completed tasks are imported (for testing).
func (c *ImportCmd) SetCompleted(completed bool) {
	c.completed = completed
}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Copy tasks from a Google Tasks list" }
func (c *ImportCmd) Usage() string {
	return "todomatic import [--list <list-name>] [--completed]"
}
func (c *ImportCmd) NeedsStore() bool { return true }
func (c *ImportCmd) NeedsAuth() bool  { return true }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.completed, "completed", false, "")
}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	list, code := c.resolveList(ctx, env.Remote, errOut)
	if code != exitcode.Success {
		return code
	}

	remote, err := env.Remote.ListTasks(ctx, list.ID, c.completed)
	if err != nil {
		return remoteFailure(errOut, err)
	}

	store := env.Session.Store
	for _, task := range remote {
		store.AddTask(task.Title)
		if task.Completed {
			added := store.Tasks()
			store.ToggleTaskCompleted(added[len(added)-1].ID)
		}
	}
	env.Logger.Debug("imported tasks", "list", list.Title, "count", len(remote))

	if err := env.Session.Persister.Err(); err != nil {
		fmt.Fprintf(errOut, "warning: tasks not saved: %v\n", err)
		return exitcode.BackendError
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "imported %d %s\n", len(remote), plural(len(remote), "task", "tasks"))
	}
	return exitcode.Success
}

func (c *ImportCmd) resolveList(ctx context.Context, svc service.Service, errOut io.Writer) (service.TaskList, int) {
	if c.listName == "" {
		list, err := svc.DefaultList(ctx)
		if err != nil {
			return service.TaskList{}, remoteFailure(errOut, err)
		}
		return list, exitcode.Success
	}

	list, err := svc.ResolveList(ctx, c.listName)
	if err == nil {
		return list, exitcode.Success
	}
	switch {
	case errors.Is(err, service.ErrAuth):
		return service.TaskList{}, remoteFailure(errOut, err)
	case strings.Contains(err.Error(), "not found"):
		fmt.Fprintf(errOut, "error: list not found: %s\n", c.listName)
		return service.TaskList{}, exitcode.UserError
	case strings.Contains(err.Error(), "ambiguous"):
		fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", c.listName)
		return service.TaskList{}, exitcode.UserError
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
		return service.TaskList{}, exitcode.BackendError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return service.TaskList{}, exitcode.BackendError
}

// remoteFailure reports an import source error and returns the exit code.
func remoteFailure(errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrAuth) {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
