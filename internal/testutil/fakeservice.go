// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"todo/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task

	// Saves counts successful mutations that would have written the task file.
	Saves int

	// Error injection for testing
	ListTasksErr    error
	AddTaskErr      error
	RemoveTaskErr   error
	CompleteTaskErr error
}

// NewFakeService creates a new empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// Seed adds a task with an explicit id and done flag.
func (f *FakeService) Seed(id int, description string, done bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Description: description, Done: done})
}

// Tasks returns a copy of the current tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// AddTask implements service.Service.
func (f *FakeService) AddTask(ctx context.Context, description string) (service.Task, error) {
	if f.AddTaskErr != nil {
		return service.Task{}, f.AddTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := service.NextID(f.tasks)
	if err != nil {
		return service.Task{}, err
	}
	task := service.Task{ID: id, Description: description}
	f.tasks = append(f.tasks, task)
	f.Saves++
	return task, nil
}

// RemoveTask implements service.Service.
func (f *FakeService) RemoveTask(ctx context.Context, id int) error {
	if f.RemoveTaskErr != nil {
		return f.RemoveTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := service.IndexOf(f.tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	f.Saves++
	return nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, id int) error {
	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := service.IndexOf(f.tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	f.tasks[i].Done = true
	f.Saves++
	return nil
}
