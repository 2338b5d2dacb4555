package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/critic/internal/core/styles"
)

func useTheme(t *testing.T, theme styles.Theme) {
	t.Helper()
	prev := styles.Current()
	styles.SetTheme(theme)
	t.Cleanup(func() { styles.SetTheme(prev) })
}

func TestRender_Markdown(t *testing.T) {
	useTheme(t, styles.ThemeDark)
	r := NewRenderer()

	out := ansi.Strip(r.Render("## Looks good\n\n- clear naming\n- **no** issues", 60))

	assert.Contains(t, out, "Looks good")
	assert.Contains(t, out, "clear naming")
	assert.NotContains(t, out, "**no**", "emphasis markers are rendered, not shown")
}

func TestRender_StylesHeading(t *testing.T) {
	useTheme(t, styles.ThemeDark)

	input := "## Looks good"
	raw := NewRenderer().Render(input, 60)

	assert.NotEqual(t, WordWrap(input, 60), raw, "rendered by glamour, not the plain fallback")

	heading := headingLine(raw, "Looks good")
	require.NotEmpty(t, heading)
	assert.NotEqual(t, ansi.Strip(heading), heading, "heading line carries style escapes")
	assert.Contains(t, heading, "\x1b[")
}

// headingLine returns the raw line whose visible text contains want.
func headingLine(raw, want string) string {
	for _, line := range strings.Split(raw, "\n") {
		if strings.Contains(ansi.Strip(line), want) {
			return line
		}
	}
	return ""
}

func TestRender_CodeBlock(t *testing.T) {
	useTheme(t, styles.ThemeDark)
	r := NewRenderer()

	out := ansi.Strip(r.Render("```js\nconst x = 1;\n```", 60))
	assert.Contains(t, out, "const x = 1;")
}

func TestRender_Empty(t *testing.T) {
	r := NewRenderer()
	assert.Empty(t, r.Render("", 40))
	assert.Empty(t, r.Render(" \n ", 40))
	assert.Empty(t, r.Render("\x1b[31m\x1b[0m", 40))
}

func TestRender_WrapsToWidth(t *testing.T) {
	useTheme(t, styles.ThemeLight)
	r := NewRenderer()

	text := strings.Repeat("review ", 40)
	narrow := r.Render(text, 30)
	wide := r.Render(text, 120)

	assert.Greater(t, strings.Count(narrow, "\n"), strings.Count(wide, "\n"))
	assert.Equal(t, strings.Count(text, "review"), strings.Count(ansi.Strip(narrow), "review"))
}

func TestRender_StripsEscapes(t *testing.T) {
	r := NewRenderer()

	out := r.Render("safe\x1b]0;pwned\x07 text \x1b[2J\x1b[31mred\x1b[0m", 60)
	plain := ansi.Strip(out)

	assert.Contains(t, plain, "safe")
	assert.Contains(t, plain, "red")
	assert.NotContains(t, out, "pwned")
	assert.NotContains(t, out, "\x1b[2J")
	assert.NotContains(t, out, "\x07")
}

func TestRender_CachePerWidthAndTheme(t *testing.T) {
	useTheme(t, styles.ThemeDark)
	r := NewRenderer()

	r.Render("a", 40)
	r.Render("b", 40)
	r.Render("c", 60)
	assert.Equal(t, 2, r.Len())

	styles.SetTheme(styles.ThemeLight)
	r.Render("d", 40)
	assert.Equal(t, 1, r.Len(), "theme change drops cached renderers")
}

func TestRender_ZeroValueUsable(t *testing.T) {
	var r Renderer
	assert.NotEmpty(t, r.Render("hello", 0))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "## Title\n\tcode", want: "## Title\n\tcode"},
		{name: "crlf", in: "a\r\nb", want: "a\nb"},
		{name: "sgr", in: "\x1b[1mbold\x1b[0m", want: "bold"},
		{name: "osc", in: "x\x1b]8;;http://evil\x07link\x1b]8;;\x07", want: "xlink"},
		{name: "bare controls", in: "a\x00b\x08c\rd", want: "abcd"},
		{name: "emoji kept", in: "⚠️ No review", want: "⚠️ No review"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestWordWrap(t *testing.T) {
	out := WordWrap("one two three four five", 9)
	require.Equal(t, "one two\nthree\nfour five", out)

	assert.Equal(t, "keep\n\nlines", WordWrap("keep\n\nlines", 20))
	assert.Equal(t, "as is", WordWrap("as is", 0))
}
