// Package cli parses the command line and runs commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"todomatic/internal/commands"
	"todomatic/internal/config"
	"todomatic/internal/exitcode"
	"todomatic/internal/logging"
	"todomatic/internal/service"
	"todomatic/internal/session"
)

// ServiceFactory creates the import source for commands that need auth.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// SessionOpener loads the saved tasks for commands that need the store.
type SessionOpener func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*session.Session, error)

// OpenSession is the default SessionOpener.
func OpenSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*session.Session, error) {
	return session.Open(ctx, cfg, logger)
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	opener   SessionOpener
	factory  ServiceFactory
}

// NewDispatcher creates a dispatcher. A nil opener means OpenSession.
func NewDispatcher(registry *commands.Registry, opener SessionOpener, factory ServiceFactory) *Dispatcher {
	if opener == nil {
		opener = OpenSession
	}
	return &Dispatcher{
		registry: registry,
		opener:   opener,
		factory:  factory,
	}
}

// Run parses args and runs the named command, or list when args is empty.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	name := "list"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	// Common flags only follow a command.
	if strings.HasPrefix(name, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(name)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

type commonFlags struct {
	configDir string
	quiet     bool
	debug     bool
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var common commonFlags
	fs.StringVar(&common.configDir, "config", "", "")
	fs.BoolVar(&common.quiet, "quiet", false, "")
	fs.BoolVar(&common.debug, "debug", false, "")
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", describeFlagError(err))
		return exitcode.UserError
	}

	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") && positional[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return exitcode.UserError
	}

	cfg, err := config.New(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config: %v\n", err)
		return exitcode.AuthError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug

	logger, err := logging.New(errOut, cfg.EffectiveLogLevel())
	if err != nil {
		fmt.Fprintf(errOut, "error: config: %v\n", err)
		return exitcode.AuthError
	}
	logger.Debug("dispatch", "command", cmd.Name(), "config", cfg.Dir, "storage", cfg.Storage)

	env := &commands.Env{Logger: logger}

	if cmd.NeedsAuth() {
		svc, code := d.remote(ctx, cfg, errOut)
		if code != exitcode.Success {
			return code
		}
		env.Remote = svc
	}

	if cmd.NeedsStore() {
		sess, err := d.opener(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: %v\n", err)
			return exitcode.BackendError
		}
		defer func() {
			if err := sess.Close(); err != nil {
				logger.Warn("closing storage", "err", err)
			}
		}()
		env.Session = sess
	}

	return cmd.Run(ctx, cfg, env, positional, out, errOut)
}

// remote builds the import source, checking credentials first.
func (d *Dispatcher) remote(ctx context.Context, cfg *config.Config, errOut io.Writer) (service.Service, int) {
	if d.factory == nil {
		fmt.Fprintln(errOut, "error: no import source configured")
		return nil, exitcode.BackendError
	}

	svc, err := d.factory(ctx, cfg)
	if err == nil {
		return svc, exitcode.Success
	}
	if errors.Is(err, service.ErrAuth) {
		fmt.Fprintf(errOut, "error: auth error: %s\n", err)
		return nil, exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %s\n", err)
	return nil, exitcode.BackendError
}

// describeFlagError rewrites flag package errors into the CLI's wording.
func describeFlagError(err error) string {
	msg := err.Error()
	if name, ok := strings.CutPrefix(msg, "flag provided but not defined: "); ok {
		return "unknown flag: " + name
	}
	return msg
}
