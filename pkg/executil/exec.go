// Package executil runs user-configured shell commands.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const maxStderrLen = 500

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// Executor runs shell commands with a stdin payload.
type Executor interface {
	// Pipe runs cmd through `sh -c` and writes input to its stdin.
	Pipe(ctx context.Context, cmd string, input string) error
}

// ShellExecutor runs commands through the system shell.
type ShellExecutor struct{}

// Pipe runs cmd with input on stdin. Stdout is discarded. On failure the
// error message is the command's stderr, capped at 500 bytes so that noisy
// tools cannot flood the log or the TUI. The original *exec.ExitError stays
// reachable through errors.As.
func (ShellExecutor) Pipe(ctx context.Context, cmd string, input string) error {
	if strings.TrimSpace(cmd) == "" {
		return fmt.Errorf("empty command")
	}

	c := exec.CommandContext(ctx, "sh", "-c", cmd)
	c.Stdin = strings.NewReader(input)
	c.Stdout = io.Discard

	var buf bytes.Buffer
	c.Stderr = &limitedWriter{buf: &buf, max: maxStderrLen}

	if err := c.Run(); err != nil {
		msg := strings.TrimSpace(buf.String())
		if msg != "" {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return fmt.Errorf("run %q: %w", cmd, err)
	}
	return nil
}

// LookPath reports whether the program named by the first word of cmd is
// resolvable on PATH.
func LookPath(cmd string) error {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return fmt.Errorf("empty command")
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return fmt.Errorf("%s not found in PATH", fields[0])
	}
	return nil
}
