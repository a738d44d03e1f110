// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"todomatic/internal/config"
	"todomatic/internal/exitcode"
	"todomatic/internal/service"
	"todomatic/internal/session"
)

// Env carries the collaborators a command asked for.
type Env struct {
	// Session is set when NeedsStore returns true.
	Session *session.Session

	// Remote is set when NeedsAuth returns true.
	Remote service.Service

	// Logger is always set.
	Logger *slog.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or mutates saved tasks.
	NeedsStore() bool

	// NeedsAuth returns true if the command talks to the import source.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths).
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int
}

// finishMutation reports the outcome of a store mutation. The mutation itself
// always applies in memory; a failed write only changes the exit code.
func finishMutation(cfg *config.Config, env *Env, out, errOut io.Writer) int {
	if err := env.Session.Persister.Err(); err != nil {
		fmt.Fprintf(errOut, "warning: tasks not saved: %v\n", err)
		return exitcode.BackendError
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
