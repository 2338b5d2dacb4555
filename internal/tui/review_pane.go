package tui

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/critic/internal/core/markdown"
	"github.com/hay-kot/critic/internal/core/styles"
)

// PlaceholderText is shown before the first review.
const PlaceholderText = `No review yet. Press "r" to begin.`

// reviewPane shows the rendered review in a scrollable viewport.
type reviewPane struct {
	viewport viewport.Model
	renderer *markdown.Renderer
}

func newReviewPane() reviewPane {
	return reviewPane{
		viewport: viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		renderer: markdown.NewRenderer(),
	}
}

func (p *reviewPane) SetSize(width, height int) {
	p.viewport.SetWidth(max(width, 1))
	p.viewport.SetHeight(max(height, 1))
}

// Refresh re-renders the pane for the given state. While loading the pane is
// blank; the review trigger shows progress instead.
func (p *reviewPane) Refresh(review string, loading bool) {
	switch {
	case loading:
		p.viewport.SetContent("")
	case review != "":
		p.viewport.SetContent(p.renderer.Render(review, p.viewport.Width()))
	default:
		p.viewport.SetContent(styles.PlaceholderStyle.Render(PlaceholderText))
	}
	p.viewport.GotoTop()
}

func (p *reviewPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *reviewPane) ScrollUp()   { p.viewport.ScrollUp(1) }
func (p *reviewPane) ScrollDown() { p.viewport.ScrollDown(1) }

func (p *reviewPane) View() string {
	return p.viewport.View()
}
