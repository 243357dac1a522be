// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion, including a handled
	// "task not found" on remove or done.
	Success = 0

	// UserError indicates a usage error (unknown command or flag, bad id).
	UserError = 1

	// StorageError indicates the task file could not be opened or written.
	StorageError = 2
)
