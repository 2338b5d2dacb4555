package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/critic/internal/core/notify"
	"github.com/hay-kot/critic/internal/core/styles"
)

const (
	toastTTL   = 4 * time.Second
	toastWidth = 44
)

// toastExpiredMsg hides the toast it was scheduled for, unless a newer one
// has replaced it since.
type toastExpiredMsg struct{ seq int }

// toast is the one notification shown in the lower-right corner. Showing a
// new notification replaces the current one.
type toast struct {
	current *notify.Notification
	seq     int
}

// Show displays n and returns the command that hides it after toastTTL.
func (t *toast) Show(n notify.Notification) tea.Cmd {
	t.seq++
	t.current = &n

	seq := t.seq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// Expire hides the toast if seq is still the latest.
func (t *toast) Expire(seq int) {
	if seq == t.seq {
		t.current = nil
	}
}

func (t toast) Visible() bool {
	return t.current != nil
}

// Message returns the visible text, or "" when hidden.
func (t toast) Message() string {
	if t.current == nil {
		return ""
	}
	return t.current.Message
}

func (t toast) View() string {
	if t.current == nil {
		return ""
	}

	var style lipgloss.Style
	switch t.current.Level {
	case notify.LevelError:
		style = styles.ToastErrorStyle
	case notify.LevelWarning:
		style = styles.ToastWarningStyle
	default:
		style = styles.ToastInfoStyle
	}
	return style.Width(toastWidth).Render(t.current.Message)
}

// Overlay draws the toast over background in the lower-right corner.
func (t toast) Overlay(background string, width, height int) string {
	content := t.View()
	if content == "" {
		return background
	}

	x := max(width-lipgloss.Width(content)-1, 0)
	y := max(height-lipgloss.Height(content)-1, 0)
	return overlay(background, content, x, y)
}
