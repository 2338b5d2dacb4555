package tui

import (
	lipgloss "charm.land/lipgloss/v2"
)

// overlay draws fg on top of bg with its top-left corner at column x, row y.
func overlay(bg, fg string, x, y int) string {
	top := lipgloss.NewLayer(fg)
	top.X(x).Y(y).Z(1)
	return lipgloss.NewCompositor(lipgloss.NewLayer(bg), top).Render()
}

// center returns the position that centers fg inside a width x height area.
func center(fg string, width, height int) (int, int) {
	x := max((width-lipgloss.Width(fg))/2, 0)
	y := max((height-lipgloss.Height(fg))/2, 0)
	return x, y
}
