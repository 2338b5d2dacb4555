package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	introTicks    = 10
	introInterval = 30 * time.Millisecond
)

type introTickMsg time.Time

func scheduleIntroTick() tea.Cmd {
	return tea.Tick(introInterval, func(t time.Time) tea.Msg {
		return introTickMsg(t)
	})
}

// Entrance tracks the startup animation: panes slide in from the sides and
// the header drops in.
type Entrance struct {
	ticksLeft int
	ticksMax  int
}

// NewEntrance creates an entrance animation lasting ticks frames. Zero ticks
// disables it.
func NewEntrance(ticks int) *Entrance {
	return &Entrance{ticksLeft: ticks, ticksMax: ticks}
}

// Active reports whether frames remain.
func (e *Entrance) Active() bool {
	return e.ticksLeft > 0
}

// Tick advances one frame. Returns true if the animation is still running.
func (e *Entrance) Tick() bool {
	if e.ticksLeft > 0 {
		e.ticksLeft--
	}
	return e.Active()
}

// Skip ends the animation.
func (e *Entrance) Skip() {
	e.ticksLeft = 0
}

// Progress returns how far the animation has run, from 0 to 1.
func (e *Entrance) Progress() float64 {
	if e.ticksMax == 0 || e.ticksLeft == 0 {
		return 1
	}
	p := 1 - float64(e.ticksLeft)/float64(e.ticksMax)
	// ease out
	return 1 - (1-p)*(1-p)
}

// Offset returns how many columns of a pane of the given width are still
// hidden.
func (e *Entrance) Offset(width int) int {
	return int(float64(width) * (1 - e.Progress()))
}

// HeaderVisible reports whether the header has dropped in.
func (e *Entrance) HeaderVisible() bool {
	return e.Progress() >= 0.5
}

// slideFromLeft shows the rightmost part of block so it appears to enter from
// the left edge.
func slideFromLeft(block string, hidden, width int) string {
	if hidden <= 0 {
		return block
	}
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = padRight(ansi.TruncateLeft(line, hidden, ""), width)
	}
	return strings.Join(lines, "\n")
}

// slideFromRight shows the leftmost part of block pushed right so it appears
// to enter from the right edge.
func slideFromRight(block string, hidden, width int) string {
	if hidden <= 0 {
		return block
	}
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = strings.Repeat(" ", hidden) + ansi.Truncate(line, max(width-hidden, 0), "")
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
