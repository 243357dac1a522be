// Package jsonfile implements the service.Service interface on top of a single
// pretty-printed JSON file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"todo/internal/service"
)

const (
	// DefaultFileName is the task file used when no path is given.
	DefaultFileName = "todo.json"

	// CorruptSuffix is appended to the path of an unreadable task file when it
	// is moved aside before the first save. Earlier backups are kept by adding
	// a numeric suffix.
	CorruptSuffix = ".corrupt"

	fileMode = 0o644
)

// Store implements service.Service backed by one JSON file.
// It holds the task list for the lifetime of a single invocation.
type Store struct {
	path    string
	tasks   []service.Task
	corrupt bool
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings and debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open loads the task file at path and returns a Store owning its contents.
// A missing file yields an empty store and a path that is not a regular file
// is an error. An unreadable or undecodable file also yields an empty store;
// the problem is logged as a warning and the file is moved aside on the first
// save.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("task file path is required")
	}

	s := &Store{
		path:   path,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := Load(path)
	if err != nil {
		if !errors.Is(err, service.ErrCorrupt) {
			return nil, err
		}
		s.logger.Warn("ignoring unreadable task file, starting with an empty list",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		s.corrupt = true
	}
	s.tasks = tasks

	s.logger.Debug("task file loaded",
		slog.String("path", path),
		slog.Int("tasks", len(s.tasks)),
	)
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// ListTasks implements service.Service.
func (s *Store) ListTasks(ctx context.Context) ([]service.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// AddTask implements service.Service.
func (s *Store) AddTask(ctx context.Context, description string) (service.Task, error) {
	if err := ctx.Err(); err != nil {
		return service.Task{}, err
	}

	id, err := service.NextID(s.tasks)
	if err != nil {
		return service.Task{}, err
	}
	task := service.Task{
		ID:          id,
		Description: description,
	}

	if err := s.commit(append(slices.Clone(s.tasks), task)); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// RemoveTask implements service.Service.
func (s *Store) RemoveTask(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	i := service.IndexOf(s.tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}

	return s.commit(slices.Delete(slices.Clone(s.tasks), i, i+1))
}

// CompleteTask implements service.Service.
func (s *Store) CompleteTask(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	i := service.IndexOf(s.tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	tasks := slices.Clone(s.tasks)
	tasks[i].Done = true

	return s.commit(tasks)
}

// commit writes tasks and adopts them as the store's list only once the
// write succeeded. A corrupt file is moved aside first.
func (s *Store) commit(tasks []service.Task) error {
	if s.corrupt {
		backup, err := s.backupCorrupt()
		if err != nil {
			return fmt.Errorf("failed to back up unreadable task file: %w", err)
		}
		if backup != "" {
			s.logger.Warn("moved unreadable task file aside", slog.String("backup", backup))
		}
		s.corrupt = false
	}

	if err := Save(s.path, tasks); err != nil {
		return err
	}
	s.tasks = tasks

	s.logger.Debug("task file saved",
		slog.String("path", s.path),
		slog.Int("tasks", len(s.tasks)),
	)
	return nil
}

// backupCorrupt renames the task file to the first free backup name:
// <path>.corrupt, then <path>.corrupt.1, <path>.corrupt.2 and so on.
// Returns "" if there is no file left to move.
func (s *Store) backupCorrupt() (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", s.path)
	}

	backup := s.path + CorruptSuffix
	for n := 1; ; n++ {
		if _, err := os.Lstat(backup); errors.Is(err, os.ErrNotExist) {
			break
		} else if err != nil {
			return "", err
		}
		backup = s.path + CorruptSuffix + "." + strconv.Itoa(n)
	}

	if err := os.Rename(s.path, backup); err != nil {
		return "", err
	}
	return backup, nil
}

// record is the on-disk shape of a task.
type record struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// Load reads and decodes the task file at path.
// A missing file returns an empty list and no error. A path that exists but is
// not a regular file is an error. Any other read or decode failure returns an
// empty list and an error wrapping service.ErrCorrupt.
func Load(path string) ([]service.Task, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []service.Task{}, nil
		}
		return []service.Task{}, fmt.Errorf("%w: %v", service.ErrCorrupt, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("task file %s is not a regular file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return []service.Task{}, fmt.Errorf("%w: %v", service.ErrCorrupt, err)
	}

	tasks, err := Decode(data)
	if err != nil {
		return []service.Task{}, fmt.Errorf("%w: %s: %v", service.ErrCorrupt, path, err)
	}
	return tasks, nil
}

// Decode parses an encoded task list. Every record must carry, under exactly
// these lowercase keys, an integer "id" of at least 1, a string "description"
// and a boolean "done". Unknown keys are ignored.
func Decode(data []byte) ([]service.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("expected a JSON array of tasks")
	}

	// Decoding through raw maps keeps key matching case-sensitive;
	// struct decoding would also accept "ID" or "Done".
	var raws []map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, err
	}

	tasks := make([]service.Task, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			return nil, fmt.Errorf("task %d: null record", i)
		}

		var task service.Task
		if err := decodeField(raw, "id", &task.ID); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		if task.ID < 1 {
			return nil, fmt.Errorf("task %d: invalid id %d", i, task.ID)
		}
		if err := decodeField(raw, "description", &task.Description); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		if err := decodeField(raw, "done", &task.Done); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// decodeField decodes the required, non-null key of raw into dst.
func decodeField(raw map[string]json.RawMessage, key string, dst any) error {
	value, ok := raw[key]
	if !ok {
		return fmt.Errorf("missing %s", key)
	}
	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return fmt.Errorf("null %s", key)
	}
	if err := json.Unmarshal(value, dst); err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	return nil
}

// Encode renders the task list as indented JSON with a trailing newline.
func Encode(tasks []service.Task) ([]byte, error) {
	records := make([]record, len(tasks))
	for i, t := range tasks {
		records[i] = record{ID: t.ID, Description: t.Description, Done: t.Done}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save overwrites the task file at path with the encoded list.
func Save(path string, tasks []service.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
