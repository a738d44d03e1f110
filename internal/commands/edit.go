package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todomatic/internal/config"
	"todomatic/internal/exitcode"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"rename"} }
func (c *EditCmd) Synopsis() string  { return "Rename a task" }
func (c *EditCmd) Usage() string     { return "todomatic edit <ref> <name...>" }
func (c *EditCmd) NeedsStore() bool  { return true }
func (c *EditCmd) NeedsAuth() bool   { return false }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	store := env.Session.Store
	id, ok := resolveArg(args, store.Tasks(), errOut)
	if !ok {
		return exitcode.UserError
	}
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: name required")
		return exitcode.UserError
	}

	store.EditTask(id, strings.Join(args[1:], " "))
	return finishMutation(cfg, env, out, errOut)
}
