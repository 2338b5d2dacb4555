// Package styles holds the active theme and the lipgloss styles derived from it.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

var current Theme

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	SuccessStyle       lipgloss.Style
	WarnStyle          lipgloss.Style
	ErrorStyle         lipgloss.Style
	MutedStyle         lipgloss.Style

	// TUI layout.
	HeaderStyle      lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style
	LineNumberStyle  lipgloss.Style
	PlaceholderStyle lipgloss.Style

	// Review trigger.
	ButtonStyle        lipgloss.Style
	ButtonLoadingStyle lipgloss.Style

	// Toasts and overlays.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
	ModalStyle        lipgloss.Style
	HelpStyle         lipgloss.Style
	SpinnerStyle      lipgloss.Style
)

// Current returns the active theme.
func Current() Theme {
	return current
}

// SetTheme makes t the active theme and rebuilds all global styles.
// Unknown themes fall back to DefaultTheme.
func SetTheme(t Theme) {
	p, ok := palettes[t]
	if !ok {
		t = DefaultTheme
		p = palettes[t]
	}
	current = t
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarnStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	PaneFocusedStyle = PaneStyle.
		BorderForeground(ColorPrimary)
	PaneTitleStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	LineNumberStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	PlaceholderStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	ButtonStyle = lipgloss.NewStyle().
		Padding(0, 2).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)
	ButtonLoadingStyle = lipgloss.NewStyle().
		Padding(0, 2).
		Background(ColorSurface).
		Foreground(ColorForeground)

	ToastInfoStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSuccess).
		Foreground(ColorForeground).
		Padding(0, 1)
	ToastWarningStyle = ToastInfoStyle.
		BorderForeground(ColorWarning)
	ToastErrorStyle = ToastInfoStyle.
		BorderForeground(ColorError)
	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(DefaultTheme)
}
