package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a pending task" }
func (c *AddCmd) Usage() string     { return "todo add <description...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// An explicit empty argument is a valid (empty) description; no argument is not.
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}
	description := strings.Join(args, " ")
	if !utf8.ValidString(description) {
		fmt.Fprintln(errOut, "error: description is not valid UTF-8")
		return exitcode.UserError
	}

	task, err := svc.AddTask(ctx, description)
	if err != nil {
		return storageFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "added task %d\n", task.ID)
	}
	return exitcode.Success
}

// storageFailure reports an error that prevented reading or saving tasks.
func storageFailure(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.StorageError
}
