package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/critic/internal/core/highlight"
	"github.com/hay-kot/critic/internal/core/styles"
)

// textareaTab is what the textarea stores in place of a tab character.
const textareaTab = "    "

// editorPane wraps a textarea for insert mode and shows the highlighted code
// otherwise.
//
// The textarea rewrites tabs as spaces, so it never owns the code. code is the
// buffer as loaded or edited, and shown is the textarea value it was last
// reconciled with.
type editorPane struct {
	input    textarea.Model
	code     string
	shown    string
	language string
	tabWidth int

	width  int
	height int
	top    int

	// highlighted caches the colored code for the current text and theme.
	highlighted []string
	cacheKey    string
}

func newEditorPane(code, language string, tabWidth int) editorPane {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.Blur()

	e := editorPane{
		input:    ta,
		language: language,
		tabWidth: max(tabWidth, 1),
	}
	e.load(code)
	e.applyTheme()
	return e
}

func (e *editorPane) load(code string) {
	e.code = code
	e.input.SetValue(code)
	e.shown = e.input.Value()
}

// Value returns the code with its original tabs.
func (e *editorPane) Value() string {
	return e.code
}

// Sync folds textarea edits back into the code. It reports false when the
// textarea value has not changed since the last call, which is the case for
// cursor movement and for entering or leaving insert mode.
func (e *editorPane) Sync() bool {
	v := e.input.Value()
	if v == e.shown {
		return false
	}
	e.shown = v
	e.code = restoreTabs(e.code, v)
	return true
}

func (e *editorPane) SetSize(width, height int) {
	e.width = max(width, 1)
	e.height = max(height, 1)
	e.input.SetWidth(e.width)
	e.input.SetHeight(e.height)
	e.clampTop()
}

func (e *editorPane) Focus() tea.Cmd {
	return e.input.Focus()
}

func (e *editorPane) Blur() {
	e.input.Blur()
	e.followCursor()
}

func (e *editorPane) Focused() bool {
	return e.input.Focused()
}

// Update forwards a message to the textarea.
func (e *editorPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

// Indent inserts one tab in tab-indented code, otherwise spaces up to the
// next tab stop.
func (e *editorPane) Indent() {
	if tabIndented(e.code) {
		e.input.InsertString(textareaTab)
		return
	}
	col := e.input.LineInfo().ColumnOffset
	n := e.tabWidth - col%e.tabWidth
	e.input.InsertString(strings.Repeat(" ", n))
}

// Scroll moves the read-only view by delta lines.
func (e *editorPane) Scroll(delta int) {
	e.top += delta
	e.clampTop()
}

// applyTheme restyles the textarea and drops the highlight cache.
func (e *editorPane) applyTheme() {
	s := textarea.DefaultStyles(styles.Current() == styles.ThemeDark)
	text := lipgloss.NewStyle().Foreground(styles.ColorForeground)
	s.Focused.LineNumber = styles.LineNumberStyle
	s.Focused.CursorLineNumber = styles.LineNumberStyle.Foreground(styles.ColorPrimary)
	s.Focused.CursorLine = lipgloss.NewStyle()
	s.Focused.Text = text
	s.Blurred.LineNumber = styles.LineNumberStyle
	s.Blurred.Text = text
	e.input.SetStyles(s)
	e.cacheKey = ""
}

// View renders the editing textarea, or the highlighted code with line
// numbers when not editing.
func (e *editorPane) View() string {
	if e.input.Focused() {
		return e.input.View()
	}

	lines := e.lines()
	gutter := len(fmt.Sprint(len(lines)))
	textWidth := max(e.width-gutter-1, 1)

	end := min(e.top+e.height, len(lines))
	out := make([]string, 0, e.height)
	for i := e.top; i < end; i++ {
		num := styles.LineNumberStyle.Render(fmt.Sprintf("%*d", gutter, i+1))
		out = append(out, num+" "+ansi.Truncate(lines[i], textWidth, "…"))
	}
	for len(out) < e.height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func (e *editorPane) lines() []string {
	key := string(styles.Current()) + "\x00" + e.language + "\x00" + e.code
	if key == e.cacheKey {
		return e.highlighted
	}

	expanded := strings.ReplaceAll(e.code, "\t", strings.Repeat(" ", e.tabWidth))
	colored := highlight.Highlight(expanded, e.language, styles.ChromaStyle())
	e.highlighted = strings.Split(colored, "\n")
	e.cacheKey = key
	return e.highlighted
}

func (e *editorPane) followCursor() {
	line := e.input.Line()
	if line < e.top {
		e.top = line
	}
	if e.height > 0 && line >= e.top+e.height {
		e.top = line - e.height + 1
	}
	e.clampTop()
}

func (e *editorPane) clampTop() {
	maxTop := max(e.input.LineCount()-e.height, 0)
	e.top = min(max(e.top, 0), maxTop)
}

// restoreTabs maps the textarea's lines back onto the code they came from.
// A line the textarea holds unchanged keeps its original text. New or edited
// lines in tab-indented code get their leading spaces turned back into tabs.
func restoreTabs(code, edited string) string {
	originals := make(map[string][]string)
	for _, line := range strings.Split(code, "\n") {
		k := strings.ReplaceAll(line, "\t", textareaTab)
		originals[k] = append(originals[k], line)
	}
	retab := tabIndented(code)

	lines := strings.Split(edited, "\n")
	for i, line := range lines {
		if queue := originals[line]; len(queue) > 0 {
			lines[i] = queue[0]
			originals[line] = queue[1:]
			continue
		}
		if retab {
			lines[i] = leadingTabs(line)
		}
	}
	return strings.Join(lines, "\n")
}

func leadingTabs(line string) string {
	n := 0
	for strings.HasPrefix(line[n*len(textareaTab):], textareaTab) {
		n++
	}
	return strings.Repeat("\t", n) + line[n*len(textareaTab):]
}

func tabIndented(code string) bool {
	return strings.HasPrefix(code, "\t") || strings.Contains(code, "\n\t")
}
