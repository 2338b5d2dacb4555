package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/critic/internal/core/styles"
)

const (
	headerHeight = 1
	footerHeight = 1
	minBodyH     = 8
	paneChromeW  = 4 // border and padding
	paneChromeH  = 2 // border
	iconDot      = "·"
)

// layout sizes the panes from the window size.
func (m *Model) layout() {
	bodyH := max(m.height-headerHeight-footerHeight, minBodyH)
	leftW, rightW := m.paneWidths()

	// title, blank line and trigger under the editor
	m.editor.SetSize(leftW-paneChromeW, bodyH-paneChromeH-3)
	// title and hint above the review
	m.review.SetSize(rightW-paneChromeW, bodyH-paneChromeH-2)
	m.help.SetWidth(m.width)
}

func (m Model) paneWidths() (int, int) {
	left := m.width / 2
	return left, m.width - left
}

func (m Model) View() tea.View {
	header := m.renderHeader()
	left := m.renderEditorPane()
	right := m.renderReviewPane()

	if m.intro.Active() {
		lw, rw := m.paneWidths()
		left = slideFromLeft(left, m.intro.Offset(lw), lw)
		right = slideFromRight(right, m.intro.Offset(rw), rw)
		if !m.intro.HeaderVisible() {
			header = ""
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	out := lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())

	if m.showHelp {
		modal := m.renderHelp()
		x, y := center(modal, m.width, m.height)
		out = overlay(out, modal, x, y)
	}

	v := tea.NewView(m.toast.Overlay(out, m.width, m.height))
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render(styles.IconSparkles + " AI Code Reviewer")

	theme := m.state.Theme()
	indicator := styles.HeaderStyle.Render(theme.Icon() + " " + string(theme))

	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(indicator), 1)
	return title + strings.Repeat(" ", gap) + indicator
}

func (m Model) renderEditorPane() string {
	leftW, _ := m.paneWidths()
	bodyH := max(m.height-headerHeight-footerHeight, minBodyH)

	title := styles.PaneTitleStyle.Render("Code")
	if m.filename != "" {
		title += styles.MutedStyle.Render(" " + iconDot + " " + m.filename)
	}
	if m.language != "" {
		title += styles.MutedStyle.Render(" " + iconDot + " " + m.language)
	}
	if m.mode == modeInsert {
		title += "  " + styles.WarnStyle.Render("-- INSERT --")
	}

	var trigger string
	if m.state.Loading() {
		trigger = styles.ButtonLoadingStyle.Render(m.spinner.View() + " Reviewing…")
	} else {
		trigger = styles.ButtonStyle.Render("Review")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, m.editor.View(), "", trigger)

	style := styles.PaneStyle
	if m.focus == focusEditor {
		style = styles.PaneFocusedStyle
	}
	return style.Width(leftW - 2).Height(bodyH - paneChromeH).Render(content)
}

func (m Model) renderReviewPane() string {
	_, rightW := m.paneWidths()
	bodyH := max(m.height-headerHeight-footerHeight, minBodyH)

	title := styles.PaneTitleStyle.Render("Review")
	hint := ""
	if m.state.HasReview() && !m.state.Loading() {
		hint = styles.MutedStyle.Render(styles.IconCopy + " c copy  " + styles.IconDownload + " s save")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, hint, m.review.View())

	style := styles.PaneStyle
	if m.focus == focusReview {
		style = styles.PaneFocusedStyle
	}
	return style.Width(rightW - 2).Height(bodyH - paneChromeH).Render(content)
}

func (m Model) renderFooter() string {
	if m.mode == modeInsert {
		return m.help.View(insertHelp{m.keys})
	}
	return m.help.View(normalHelp{m.keys})
}

func (m Model) renderHelp() string {
	title := styles.PaneTitleStyle.Render("Keyboard shortcuts")
	body := m.help.FullHelpView(normalHelp{m.keys}.FullHelp())
	hint := styles.HelpStyle.Render("esc/? close")
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint))
}
