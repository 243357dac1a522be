package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"todo/internal/config"
	"todo/internal/exitcode"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the single task id argument of remove and done.
// The id must be all ASCII digits and at least 1.
func ParseTaskID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := args[0]
	if !isAllDigits(arg) {
		return 0, fmt.Errorf("invalid task id: %s", arg)
	}
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", arg)
	}
	return id, nil
}

// parseTaskIDArg parses the id and reports usage errors on errOut.
func parseTaskIDArg(args []string, errOut io.Writer) (id, code int, ok bool) {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, exitcode.UserError, false
	}
	return id, exitcode.Success, true
}

// reportNotFound prints the not-found outcome. It is not a failure.
func reportNotFound(cfg *config.Config, out io.Writer, id int) int {
	if !cfg.Quiet {
		fmt.Fprintf(out, "task not found: %d\n", id)
	}
	return exitcode.Success
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
