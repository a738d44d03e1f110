package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"todomatic/internal/config"
	"todomatic/internal/exitcode"
	"todomatic/internal/storage"
	"todomatic/internal/tasklist"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
}

// SetFormat sets the output format (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Print all tasks as JSON or YAML" }
func (c *ExportCmd) Usage() string     { return "todomatic export [--format json|yaml]" }
func (c *ExportCmd) NeedsStore() bool  { return true }
func (c *ExportCmd) NeedsAuth() bool   { return false }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "json", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	data, err := encodeTasks(c.format, env.Session.Store.Tasks())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	out.Write(data)
	return exitcode.Success
}

func encodeTasks(format string, tasks []tasklist.Task) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json", "":
		return storage.EncodeSnapshot(tasks)
	case "yaml", "yml":
		if tasks == nil {
			tasks = []tasklist.Task{}
		}
		return yaml.Marshal(tasks)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
