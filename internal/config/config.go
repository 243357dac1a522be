// Package config holds the settings resolved for a single invocation.
package config

import (
	"io"
	"log/slog"
	"path/filepath"
)

const (
	// AppName is the application name.
	AppName = "todo"

	// TaskFile is the task file name used when --file is not given.
	// It is resolved relative to the current working directory.
	TaskFile = "todo.json"
)

// Config holds the task file path and output settings.
type Config struct {
	// File is the task file path.
	File string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// NoColor disables styled output even on a terminal.
	NoColor bool

	// Logger receives warnings and debug logs. Never nil after New.
	Logger *slog.Logger
}

// New creates a new Config for the given task file.
// If file is empty, uses TaskFile in the current directory.
func New(file string) (*Config, error) {
	if file == "" {
		file = TaskFile
	}
	return &Config{
		File:   filepath.Clean(file),
		Logger: DiscardLogger(),
	}, nil
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
