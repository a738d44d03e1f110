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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "todomatic add <name...>" }
func (c *AddCmd) NeedsStore() bool  { return true }
func (c *AddCmd) NeedsAuth() bool   { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	// An explicitly empty argument ("") is a valid, empty name.
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: name required")
		return exitcode.UserError
	}

	env.Session.Store.AddTask(strings.Join(args, " "))
	return finishMutation(cfg, env, out, errOut)
}
