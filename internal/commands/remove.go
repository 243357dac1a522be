package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&RemoveCmd{})
}

// RemoveCmd implements the remove command.
type RemoveCmd struct{}

func (c *RemoveCmd) Name() string      { return "remove" }
func (c *RemoveCmd) Aliases() []string { return []string{"rm"} }
func (c *RemoveCmd) Synopsis() string  { return "Delete a task" }
func (c *RemoveCmd) Usage() string     { return "todo remove <id>" }
func (c *RemoveCmd) NeedsStore() bool  { return true }

func (c *RemoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RemoveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, code, ok := parseTaskIDArg(args, errOut)
	if !ok {
		return code
	}

	if err := svc.RemoveTask(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return reportNotFound(cfg, out, id)
		}
		return storageFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "removed task %d\n", id)
	}
	return exitcode.Success
}
