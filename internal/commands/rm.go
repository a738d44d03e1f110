package commands

import (
	"context"
	"flag"
	"io"

	"todomatic/internal/config"
	"todomatic/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "todomatic rm <ref>" }
func (c *RmCmd) NeedsStore() bool  { return true }
func (c *RmCmd) NeedsAuth() bool   { return false }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	store := env.Session.Store
	id, ok := resolveArg(args, store.Tasks(), errOut)
	if !ok {
		return exitcode.UserError
	}

	store.DeleteTask(id)
	return finishMutation(cfg, env, out, errOut)
}
