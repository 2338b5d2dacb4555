// Package tui implements the interactive code review screen.
package tui

import (
	"context"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/hay-kot/critic/internal/core/export"
	"github.com/hay-kot/critic/internal/core/logging"
	"github.com/hay-kot/critic/internal/core/notify"
	"github.com/hay-kot/critic/internal/core/review"
	"github.com/hay-kot/critic/internal/core/styles"
	"github.com/hay-kot/critic/internal/core/workspace"
)

// Options configures the TUI.
type Options struct {
	State       *workspace.State
	Reviewer    review.Reviewer
	Clipboard   export.Clipboard
	DownloadDir string
	Filename    string // shown in the editor title; empty for stdin or the sample
	Language    string
	TabWidth    int
	Animate     bool
}

type mode int

const (
	modeNormal mode = iota
	modeInsert
)

type focusPane int

const (
	focusEditor focusPane = iota
	focusReview
)

// reviewCompletedMsg carries the outcome of one review cycle back to Update.
type reviewCompletedMsg struct {
	id      int
	outcome review.Outcome
}

// Model is the top-level bubbletea model. It owns the workspace state; the
// Update loop is its only writer.
type Model struct {
	state       *workspace.State
	reviewer    review.Reviewer
	clipboard   export.Clipboard
	downloadDir string
	filename    string
	language    string

	keys      keyMap
	help      help.Model
	editor    editorPane
	review    reviewPane
	spinner   spinner.Model
	toast     toast
	intro     *Entrance

	mode     mode
	focus    focusPane
	showHelp bool
	cancel   context.CancelFunc

	width  int
	height int
	log    zerolog.Logger
}

// New creates the model. A nil State starts from the sample snippet.
func New(opts Options) Model {
	state := opts.State
	if state == nil {
		state = workspace.NewSample(styles.Current())
	}
	styles.SetTheme(state.Theme())

	clip := opts.Clipboard
	if clip == nil {
		clip = export.SystemClipboard{}
	}

	ticks := 0
	if opts.Animate {
		ticks = introTicks
	}

	m := Model{
		state:       state,
		reviewer:    opts.Reviewer,
		clipboard:   clip,
		downloadDir: opts.DownloadDir,
		filename:    opts.Filename,
		language:    opts.Language,
		keys:        defaultKeyMap(),
		help:        help.New(),
		editor:      newEditorPane(state.Code(), opts.Language, opts.TabWidth),
		review:      newReviewPane(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
		intro:       NewEntrance(ticks),
		width:       80,
		height:      24,
		log:         logging.Component("tui"),
	}
	m.layout()
	m.refreshReview()
	return m
}

// State exposes the workspace for callers that inspect the final state.
func (m Model) State() *workspace.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	if m.intro.Active() {
		return scheduleIntroTick()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshReview()
		return m, nil

	case introTickMsg:
		if m.intro.Tick() {
			return m, scheduleIntroTick()
		}
		return m, nil

	case toastExpiredMsg:
		m.toast.Expire(msg.seq)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reviewCompletedMsg:
		m.finishReview(msg)
		return m, nil

	case tea.MouseWheelMsg:
		return m, m.review.Update(msg)

	case tea.KeyPressMsg:
		m.intro.Skip()
		if m.mode == modeInsert {
			return m.handleInsertKey(msg)
		}
		return m.handleNormalKey(msg)
	}

	return m, nil
}

func (m Model) handleInsertKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.Leave):
		m.leaveInsert()
		return m, nil
	case key.Matches(msg, m.keys.InsertReview):
		return m, m.startReview()
	case key.Matches(msg, m.keys.Indent):
		m.editor.Indent()
		m.syncCode()
		return m, nil
	}

	cmd := m.editor.Update(msg)
	m.syncCode()
	return m, cmd
}

func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Leave):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Edit):
		return m, m.enterInsert()
	case key.Matches(msg, m.keys.Review):
		return m, m.startReview()
	case key.Matches(msg, m.keys.Cancel):
		return m, m.cancelReview()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyReview()
	case key.Matches(msg, m.keys.Download):
		return m, m.downloadReview()
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusEditor {
			m.focus = focusReview
		} else {
			m.focus = focusEditor
		}
	case key.Matches(msg, m.keys.Up):
		if m.focus == focusReview {
			m.review.ScrollUp()
		} else {
			m.editor.Scroll(-1)
		}
	case key.Matches(msg, m.keys.Down):
		if m.focus == focusReview {
			m.review.ScrollDown()
		} else {
			m.editor.Scroll(1)
		}
	default:
		if m.focus == focusReview {
			return m, m.review.Update(msg)
		}
	}
	return m, nil
}

func (m *Model) enterInsert() tea.Cmd {
	m.mode = modeInsert
	m.focus = focusEditor
	return m.editor.Focus()
}

func (m *Model) leaveInsert() {
	m.mode = modeNormal
	m.editor.Blur()
}

// syncCode writes the editor back to the workspace when an edit changed it.
func (m *Model) syncCode() {
	if m.editor.Sync() {
		m.state.SetCode(m.editor.Value())
	}
}

// startReview begins a review cycle. The request runs in a command goroutine
// and reports back through reviewCompletedMsg.
func (m *Model) startReview() tea.Cmd {
	if m.reviewer == nil {
		return m.notify(notify.Error("No review endpoint configured"))
	}

	id, ok := m.state.BeginReview()
	if !ok {
		return m.notify(notify.Warning("Review already in progress"))
	}

	ctx, cancel := context.WithCancel(logging.WithCycle(context.Background(), id))
	m.cancel = cancel
	m.refreshReview()

	code := m.state.Code()
	reviewer := m.reviewer
	m.log.Debug().Int("cycle", id).Int("code_bytes", len(code)).Msg("review started")

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return reviewCompletedMsg{id: id, outcome: reviewer.Request(ctx, code)}
	})
}

func (m *Model) finishReview(msg reviewCompletedMsg) {
	if !m.state.FinishReview(msg.id, msg.outcome) {
		m.log.Debug().Int("cycle", msg.id).Msg("dropping stale review")
		return
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.refreshReview()
}

func (m *Model) cancelReview() tea.Cmd {
	if !m.state.Loading() || m.cancel == nil {
		return nil
	}
	m.cancel()
	m.cancel = nil
	return m.notify(notify.Info("Review cancelled"))
}

func (m *Model) copyReview() tea.Cmd {
	copied, err := export.CopyReview(m.clipboard, m.state.Review())
	switch {
	case err != nil:
		m.log.Warn().Err(err).Msg("copy review")
		return m.notify(notify.Error("Copy failed: " + err.Error()))
	case copied:
		return m.notify(notify.Info(styles.IconCheck + " Review copied to clipboard!"))
	}
	return nil
}

func (m *Model) downloadReview() tea.Cmd {
	path, err := export.DownloadReview(m.downloadDir, m.state.Review())
	switch {
	case err != nil:
		m.log.Warn().Err(err).Msg("download review")
		return m.notify(notify.Error("Save failed: " + err.Error()))
	case path != "":
		m.log.Info().Str("path", path).Msg("review saved")
		return m.notify(notify.Info(styles.IconDownload + " Saved " + path))
	}
	return nil
}

// toggleTheme flips the theme and restyles everything derived from it.
func (m *Model) toggleTheme() {
	styles.SetTheme(m.state.ToggleTheme())
	m.editor.applyTheme()
	m.spinner.Style = styles.SpinnerStyle
	m.refreshReview()
}

func (m *Model) notify(n notify.Notification) tea.Cmd {
	return m.toast.Show(n)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	return m, tea.Quit
}

func (m *Model) refreshReview() {
	m.review.Refresh(m.state.Review(), m.state.Loading())
}
