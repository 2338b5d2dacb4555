// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace so views can be
// compared as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		result = append(result, strings.TrimRight(line, " "))
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// KeyPress creates a key press message for a single printable rune. Text is
// set so text inputs insert it.
func KeyPress(key rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: key, Text: string(key)})
}

// KeyPressString creates a key press that types s at once, the way an IME
// commit arrives.
func KeyPressString(s string) tea.KeyPressMsg {
	var code rune
	for _, r := range s {
		code = r
		break
	}
	return tea.KeyPressMsg(tea.Key{Code: code, Text: s})
}

// Key creates a key press message for a special key such as tea.KeyEscape
// or tea.KeyTab.
func Key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// Ctrl creates a ctrl+<key> press message.
func Ctrl(key rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: key, Mod: tea.ModCtrl})
}

// KeyDown creates a down arrow key press message.
func KeyDown() tea.KeyPressMsg { return Key(tea.KeyDown) }

// KeyUp creates an up arrow key press message.
func KeyUp() tea.KeyPressMsg { return Key(tea.KeyUp) }

// KeyEnter creates an enter key press message.
func KeyEnter() tea.KeyPressMsg { return Key(tea.KeyEnter) }

// KeyEsc creates an escape key press message.
func KeyEsc() tea.KeyPressMsg { return Key(tea.KeyEscape) }

// KeyTab creates a tab key press message.
func KeyTab() tea.KeyPressMsg { return Key(tea.KeyTab) }

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}

// Model is the subset of tea.Model the helpers drive.
type Model interface {
	Update(tea.Msg) (tea.Model, tea.Cmd)
}

// Send feeds msgs through Update in order and returns the final model and the
// last command.
func Send[M Model](m M, msgs ...tea.Msg) (M, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(M)
	}
	return m, cmd
}

// Exec runs cmd and returns its messages, flattening batches. Commands that
// block (ticks, network calls) should not be passed here.
func Exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Exec(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
