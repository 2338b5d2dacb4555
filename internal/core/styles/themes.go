package styles

import (
	"fmt"
	"image/color"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme selects the presentation palette. Exactly one theme is active at a time.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultTheme is the theme active at startup when none is configured.
const DefaultTheme = ThemeDark

// ParseTheme parses a theme name case-insensitively.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown theme %q (valid: %s)", s, strings.Join(ThemeNames(), ", "))
	}
	return t, nil
}

// Valid reports whether t is one of the built-in themes.
func (t Theme) Valid() bool {
	_, ok := palettes[t]
	return ok
}

// Toggle returns the opposite theme. Unknown values toggle to the default.
func (t Theme) Toggle() Theme {
	switch t {
	case ThemeDark:
		return ThemeLight
	case ThemeLight:
		return ThemeDark
	default:
		return DefaultTheme
	}
}

// Icon is the toggle hint shown in the header: a sun while dark (switch to
// light), a moon while light.
func (t Theme) Icon() string {
	if t == ThemeLight {
		return IconMoon
	}
	return IconSun
}

// ThemeNames returns the names of all built-in themes.
func ThemeNames() []string {
	return []string{string(ThemeDark), string(ThemeLight)}
}

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color

	// Chroma is the chroma style used for source highlighting.
	Chroma string
	// Glamour is the base markdown style the palette is layered on.
	Glamour glamouransi.StyleConfig
}

var palettes = map[Theme]Palette{
	ThemeDark: {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
		Chroma:     "monokai",
		Glamour:    glamourstyles.DarkStyleConfig,
	},
	ThemeLight: {
		Primary:    lipgloss.Color("#2e7de9"),
		Secondary:  lipgloss.Color("#007197"),
		Foreground: lipgloss.Color("#3760bf"),
		Muted:      lipgloss.Color("#848cb5"),
		Background: lipgloss.Color("#e1e2e7"),
		Surface:    lipgloss.Color("#c4c8da"),
		Success:    lipgloss.Color("#587539"),
		Warning:    lipgloss.Color("#8c6c3e"),
		Error:      lipgloss.Color("#f52a65"),
		Chroma:     "github",
		Glamour:    glamourstyles.LightStyleConfig,
	},
}

// GetPalette returns the palette for the given theme.
func GetPalette(t Theme) (Palette, bool) {
	p, ok := palettes[t]
	return p, ok
}

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a glamour style config derived from the active theme.
// Fenced code blocks use the theme's chroma style.
func GlamourStyle() glamouransi.StyleConfig {
	p := CurrentPalette
	cfg := p.Glamour

	fg := colorHexPtr(p.Foreground)
	primary := colorHexPtr(p.Primary)
	secondary := colorHexPtr(p.Secondary)
	muted := colorHexPtr(p.Muted)
	surface := colorHexPtr(p.Surface)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = surface
	cfg.H2.Color = primary
	cfg.H3.Color = primary
	cfg.H4.Color = primary
	cfg.H5.Color = primary
	cfg.H6.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary

	cfg.CodeBlock.Chroma = nil
	cfg.CodeBlock.Theme = p.Chroma

	return cfg
}

// ChromaStyle returns the chroma style name for the active theme.
func ChromaStyle() string {
	return CurrentPalette.Chroma
}
