package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/critic/internal/core/config"
	"github.com/hay-kot/critic/internal/core/export"
	"github.com/hay-kot/critic/internal/core/review"
	"github.com/hay-kot/critic/internal/core/workspace"
	"github.com/hay-kot/critic/internal/printer"
	"github.com/hay-kot/critic/internal/tui"
	"github.com/hay-kot/critic/pkg/utils"
)

type TuiCmd struct {
	flags       *Flags
	noAnimation bool
	stdin       func() stdinInput
	stderr      io.Writer
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags, stdin: osStdin, stderr: os.Stderr}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-animation",
			Usage:       "skip the entrance animation",
			Sources:     cli.EnvVars("CRITIC_NO_ANIMATION"),
			Destination: &cmd.noAnimation,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.Settings()
	if err != nil {
		return err
	}

	src, err := readSource(c.Args().First(), cmd.stdin())
	if err != nil {
		return err
	}

	opts := cmd.options(cfg, src)

	// the alt screen hides anything printed while the program runs
	deferred := &utils.DeferredWriter{}
	defer func() { _ = deferred.Flush(cmd.stderr) }()
	reportWarnings(printer.New(deferred), cfg)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if src.Piped {
		// stdin carried the code; read keys from the terminal instead
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("open terminal for input: %w", err)
		}
		defer func() { _ = tty.Close() }()
		progOpts = append(progOpts, tea.WithInput(tty))
	}

	log.Info().
		Str("file", src.Filename).
		Bool("piped", src.Piped).
		Str("language", opts.Language).
		Msg("starting tui")

	if _, err := tea.NewProgram(tui.New(opts), progOpts...).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func (cmd *TuiCmd) options(cfg *config.Config, src source) tui.Options {
	theme := applyTheme(cfg)

	state := workspace.NewSample(theme)
	if src.Given() {
		state = workspace.New(src.Code, theme)
	}

	return tui.Options{
		State:       state,
		Reviewer:    review.NewClient(reviewOptions(cfg)),
		Clipboard:   export.NewClipboard(cfg.Export.CopyCommand),
		DownloadDir: cfg.Export.DownloadDir,
		Filename:    src.Filename,
		Language:    newResolver(cfg).Resolve(src.Filename),
		TabWidth:    cfg.Editor.TabWidth,
		Animate:     !cmd.noAnimation,
	}
}

func reportWarnings(p *printer.Printer, cfg *config.Config) {
	for _, w := range cfg.Warnings() {
		p.Warnf("%s: %s", w.Category, w.Message)
	}
}
