// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no task carries the requested id.
var ErrNotFound = errors.New("task not found")

// ErrCorrupt marks stored task data that exists but cannot be read or decoded.
var ErrCorrupt = errors.New("unreadable task data")

// ErrIDsExhausted is returned by AddTask when no larger id can be allocated.
var ErrIDsExhausted = errors.New("no task ids left above the current maximum")

// Service defines the interface for task backend operations.
// Commands never touch the backing storage directly.
type Service interface {
	// ListTasks returns all tasks in stored order.
	// The returned slice is a copy; callers may not mutate the store through it.
	ListTasks(ctx context.Context) ([]Task, error)

	// AddTask appends a pending task and persists the list.
	// The id is one more than the current maximum, or 1 when empty.
	// Returns ErrIDsExhausted (without persisting) if that would overflow.
	AddTask(ctx context.Context, description string) (Task, error)

	// RemoveTask deletes the first task with the given id and persists.
	// Returns ErrNotFound (without persisting) if no task matched.
	RemoveTask(ctx context.Context, id int) error

	// CompleteTask marks the first task with the given id as done and persists.
	// Returns ErrNotFound (without persisting) if no task matched.
	CompleteTask(ctx context.Context, id int) error
}
