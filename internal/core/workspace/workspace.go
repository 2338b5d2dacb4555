// Package workspace holds the state of one review session: the code being
// edited, the last review, the pending flag and the active theme.
package workspace

import (
	"strings"

	"github.com/hay-kot/critic/internal/core/review"
	"github.com/hay-kot/critic/internal/core/styles"
)

// SampleCode is shown in the editor when no source is given at all.
const SampleCode = "function sum() {\n  return 1 + 1;\n}"

// State is owned by the top-level view. It is not safe for concurrent use;
// the bubbletea Update loop is its only writer.
type State struct {
	code    string
	review  string
	theme   styles.Theme
	pending bool
	cycle   int
}

// New creates a State holding code as loaded from a file or stdin. Line
// endings are normalized to "\n"; an empty file stays empty.
func New(code string, theme styles.Theme) *State {
	if !theme.Valid() {
		theme = styles.DefaultTheme
	}
	return &State{code: NormalizeNewlines(code), theme: theme}
}

// NewSample creates a State holding SampleCode.
func NewSample(theme styles.Theme) *State {
	return New(SampleCode, theme)
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func (s *State) Code() string { return s.code }

// SetCode replaces the whole buffer verbatim.
func (s *State) SetCode(code string) { s.code = code }

func (s *State) Review() string { return s.review }

func (s *State) HasReview() bool { return s.review != "" }

func (s *State) Loading() bool { return s.pending }

// Cycle returns the id of the most recent review cycle, zero before the first.
func (s *State) Cycle() int { return s.cycle }

// BeginReview moves the state to pending and returns the new cycle id. It
// returns false and leaves the state unchanged while a review is pending.
func (s *State) BeginReview() (int, bool) {
	if s.pending {
		return s.cycle, false
	}
	s.cycle++
	s.pending = true
	return s.cycle, true
}

// FinishReview completes the pending cycle with id. Completions for any other
// cycle are dropped.
func (s *State) FinishReview(id int, outcome review.Outcome) bool {
	if !s.pending || id != s.cycle {
		return false
	}
	s.pending = false
	s.review = outcome.Text
	return true
}

func (s *State) Theme() styles.Theme { return s.theme }

// ToggleTheme flips between dark and light and returns the new theme.
func (s *State) ToggleTheme() styles.Theme {
	s.theme = s.theme.Toggle()
	return s.theme
}
