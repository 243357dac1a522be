package commands_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg, err := config.New(t.TempDir() + "/todo.json")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Quiet = quiet

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{
		"Usage:",
		"todo add <description...>",
		"(alias: rm)",
		"todo done <id>",
		"--file <path>",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q, got:\n%s", want, stdout)
		}
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"buy", "milk"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "added task 1\n" {
		t.Errorf("expected %q, got %q", "added task 1\n", stdout)
	}

	want := []service.Task{{ID: 1, Description: "buy milk"}}
	if !reflect.DeepEqual(svc.Tasks(), want) {
		t.Errorf("expected %+v, got %+v", want, svc.Tasks())
	}
}

func TestAddCommand_AfterExisting(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed(4, "a", false)
	svc.Seed(2, "b", true)

	stdout, _, code := runCommand(t, &commands.AddCmd{}, svc, []string{"c"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "added task 5\n" {
		t.Errorf("expected %q, got %q", "added task 5\n", stdout)
	}
}

func TestAddCommand_EmptyDescription(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{""}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if tasks := svc.Tasks(); len(tasks) != 1 || tasks[0].Description != "" {
		t.Errorf("expected one empty task, got %+v", tasks)
	}
}

func TestAddCommand_MissingDescription(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: description required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.Saves != 0 {
		t.Errorf("expected no saves, got %d", svc.Saves)
	}
}

func TestAddCommand_InvalidUTF8(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"caf\xe9"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: description is not valid UTF-8\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.Saves != 0 || len(svc.Tasks()) != 0 {
		t.Errorf("expected nothing stored, got %+v (saves %d)", svc.Tasks(), svc.Saves)
	}
}

func TestAddCommand_IDsExhausted(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed(math.MaxInt, "last", false)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"next"}, false)

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stdout != "" {
		t.Errorf("expected no confirmation, got %q", stdout)
	}
	if !strings.Contains(stderr, service.ErrIDsExhausted.Error()) {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.Saves != 0 {
		t.Errorf("expected no saves, got %d", svc.Saves)
	}
}

func TestAddCommand_SaveFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTaskErr = errors.New("disk full")

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"x"}, false)

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stdout != "" {
		t.Errorf("success message must not be printed on failure, got %q", stdout)
	}
	if stderr != "error: storage error: disk full\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, _, code := runCommand(t, &commands.AddCmd{}, svc, []string{"x"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

// Tests for list command
func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected %q, got %q", "no tasks found\n", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, _, code := runCommand(t, &commands.ListCmd{}, svc, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	// Quiet mode should suppress "no tasks found"
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_Mixed(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed(1, "buy milk", true)
	svc.Seed(2, "walk dog", false)
	svc.Seed(5, "call mom\nabout the weekend", false)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_mixed", stdout)
}

func TestListCommand_DoesNotMutate(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed(1, "a", false)
	before := svc.Tasks()

	for i := 0; i < 3; i++ {
		runCommand(t, &commands.ListCmd{}, svc, nil, false)
	}

	if svc.Saves != 0 {
		t.Errorf("expected no saves, got %d", svc.Saves)
	}
	if !reflect.DeepEqual(svc.Tasks(), before) {
		t.Errorf("list mutated tasks: %+v", svc.Tasks())
	}
}

func TestListCommand_UnexpectedArgument(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, []string{"work"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: work\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestListCommand_ReadFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("boom")

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stderr != "error: storage error: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for remove and done commands
func TestIDCommands(t *testing.T) {
	tests := []struct {
		name       string
		cmd        commands.Command
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
		wantTasks  []service.Task
	}{
		{
			name:       "remove existing",
			cmd:        &commands.RemoveCmd{},
			args:       []string{"2"},
			wantCode:   exitcode.Success,
			wantStdout: "removed task 2\n",
			wantTasks:  []service.Task{{ID: 1, Description: "a"}, {ID: 3, Description: "c", Done: true}},
		},
		{
			name:       "remove missing",
			cmd:        &commands.RemoveCmd{},
			args:       []string{"9"},
			wantCode:   exitcode.Success,
			wantStdout: "task not found: 9\n",
		},
		{
			name:       "remove without id",
			cmd:        &commands.RemoveCmd{},
			wantCode:   exitcode.UserError,
			wantStderr: "error: task id required\n",
		},
		{
			name:       "remove bad id",
			cmd:        &commands.RemoveCmd{},
			args:       []string{"abc"},
			wantCode:   exitcode.UserError,
			wantStderr: "error: invalid task id: abc\n",
		},
		{
			name:       "done existing",
			cmd:        &commands.DoneCmd{},
			args:       []string{"1"},
			wantCode:   exitcode.Success,
			wantStdout: "completed task 1\n",
			wantTasks: []service.Task{
				{ID: 1, Description: "a", Done: true},
				{ID: 2, Description: "b"},
				{ID: 3, Description: "c", Done: true},
			},
		},
		{
			name:       "done already done",
			cmd:        &commands.DoneCmd{},
			args:       []string{"3"},
			wantCode:   exitcode.Success,
			wantStdout: "completed task 3\n",
		},
		{
			name:       "done missing",
			cmd:        &commands.DoneCmd{},
			args:       []string{"4"},
			wantCode:   exitcode.Success,
			wantStdout: "task not found: 4\n",
		},
		{
			name:       "done zero",
			cmd:        &commands.DoneCmd{},
			args:       []string{"0"},
			wantCode:   exitcode.UserError,
			wantStderr: "error: invalid task id: 0\n",
		},
		{
			name:       "done extra argument",
			cmd:        &commands.DoneCmd{},
			args:       []string{"1", "2"},
			wantCode:   exitcode.UserError,
			wantStderr: "error: unexpected argument: 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			svc.Seed(1, "a", false)
			svc.Seed(2, "b", false)
			svc.Seed(3, "c", true)
			before := svc.Tasks()

			stdout, stderr, code := runCommand(t, tt.cmd, svc, tt.args, false)

			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if stdout != tt.wantStdout {
				t.Errorf("expected stdout %q, got %q", tt.wantStdout, stdout)
			}
			if stderr != tt.wantStderr {
				t.Errorf("expected stderr %q, got %q", tt.wantStderr, stderr)
			}

			want := tt.wantTasks
			if want == nil {
				want = before
			}
			if !reflect.DeepEqual(svc.Tasks(), want) {
				t.Errorf("expected tasks %+v, got %+v", want, svc.Tasks())
			}
		})
	}
}

func TestRemoveCommand_NotFoundQuiet(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.RemoveCmd{}, svc, []string{"1"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("expected no output, got stdout %q stderr %q", stdout, stderr)
	}
	if svc.Saves != 0 {
		t.Errorf("expected no saves, got %d", svc.Saves)
	}
}

func TestDoneCommand_SaveFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed(1, "a", false)
	svc.CompleteTaskErr = errors.New("permission denied")

	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1"}, false)

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: storage error: permission denied\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
