// Package markdown renders review text for the terminal.
package markdown

import (
	"strings"
	"sync"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/critic/internal/core/styles"
)

const minWidth = 10

// Renderer renders Markdown with the active theme. Term renderers are cached
// per width and dropped when the theme changes.
type Renderer struct {
	mu    sync.Mutex
	theme styles.Theme
	cache map[int]*glamour.TermRenderer
}

// NewRenderer creates an empty Renderer.
func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[int]*glamour.TermRenderer)}
}

// Render sanitizes text and renders it as Markdown wrapped to width. On
// renderer failure the sanitized text is word wrapped instead.
func (r *Renderer) Render(text string, width int) string {
	text = Sanitize(text)
	if strings.TrimSpace(text) == "" {
		return ""
	}
	width = max(width, minWidth)

	tr := r.get(width)
	if tr == nil {
		return WordWrap(text, width)
	}

	out, err := tr.Render(text)
	if err != nil {
		return WordWrap(text, width)
	}
	return strings.Trim(out, "\n")
}

// Len reports how many renderers are cached.
func (r *Renderer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

func (r *Renderer) get(width int) *glamour.TermRenderer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache == nil {
		r.cache = make(map[int]*glamour.TermRenderer)
	}

	if theme := styles.Current(); theme != r.theme {
		clear(r.cache)
		r.theme = theme
	}

	if tr, ok := r.cache[width]; ok {
		return tr
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	r.cache[width] = tr
	return tr
}

// Sanitize removes terminal escape sequences and control characters other
// than newlines and tabs, so the text cannot drive the terminal.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20 || r == 0x7f:
			return -1
		case r >= 0x80 && r < 0xa0:
			return -1
		}
		return r
	}, s)
}

// WordWrap wraps text to fit within the given width.
func WordWrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	var result strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		if lipgloss.Width(line) <= width {
			result.WriteString(line)
			continue
		}

		current := ""
		for _, word := range strings.Fields(line) {
			switch {
			case current == "":
				current = word
			case lipgloss.Width(current+" "+word) <= width:
				current += " " + word
			default:
				result.WriteString(current)
				result.WriteString("\n")
				current = word
			}
		}
		result.WriteString(current)
	}
	return result.String()
}
