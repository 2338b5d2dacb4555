package executil

import (
	"context"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Cmd   string
	Input string
}

// RecordingExecutor captures commands for testing.
// Set Err to make every call fail.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand
	Err      error
}

// Pipe records the command and its stdin payload.
func (e *RecordingExecutor) Pipe(ctx context.Context, cmd string, input string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{Cmd: cmd, Input: input})
	return e.Err
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
