package commands

import (
	"context"
	"flag"
	"io"

	"todomatic/internal/config"
	"todomatic/internal/exitcode"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Mark a task completed, or active again" }
func (c *ToggleCmd) Usage() string     { return "todomatic toggle <ref>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }
func (c *ToggleCmd) NeedsAuth() bool   { return false }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	store := env.Session.Store
	id, ok := resolveArg(args, store.Tasks(), errOut)
	if !ok {
		return exitcode.UserError
	}

	store.ToggleTaskCompleted(id)
	return finishMutation(cfg, env, out, errOut)
}
