// Package export copies and saves review text.
package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/hay-kot/critic/pkg/executil"
)

// Clipboard receives text for the user's clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes through the platform clipboard utilities.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility found; set export.copy_command")
	}
	return clipboard.WriteAll(text)
}

// CommandClipboard pipes text to a shell command such as "pbcopy" or
// "wl-copy".
type CommandClipboard struct {
	Command  string
	Executor executil.Executor
}

func (c CommandClipboard) WriteAll(text string) error {
	ex := c.Executor
	if ex == nil {
		ex = executil.ShellExecutor{}
	}
	if err := ex.Pipe(context.Background(), c.Command, text); err != nil {
		return fmt.Errorf("copy command: %w", err)
	}
	return nil
}

// NewClipboard returns a CommandClipboard when copyCommand is set, otherwise
// the system clipboard.
func NewClipboard(copyCommand string) Clipboard {
	if strings.TrimSpace(copyCommand) != "" {
		return CommandClipboard{Command: copyCommand}
	}
	return SystemClipboard{}
}

// CopyReview writes review to cb verbatim. An empty review is a no-op and
// reports false.
func CopyReview(cb Clipboard, review string) (bool, error) {
	if review == "" {
		return false, nil
	}
	if err := cb.WriteAll(review); err != nil {
		return false, err
	}
	return true, nil
}
