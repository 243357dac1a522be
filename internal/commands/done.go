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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "todo done <id>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, code, ok := parseTaskIDArg(args, errOut)
	if !ok {
		return code
	}

	if err := svc.CompleteTask(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return reportNotFound(cfg, out, id)
		}
		return storageFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "completed task %d\n", id)
	}
	return exitcode.Success
}
