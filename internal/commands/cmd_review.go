package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/critic/internal/core/export"
	"github.com/hay-kot/critic/internal/core/markdown"
	"github.com/hay-kot/critic/internal/core/review"
	"github.com/hay-kot/critic/internal/printer"
)

const defaultRenderWidth = 80

// ErrNoReview is returned when the endpoint produced one of the sentinel
// outcomes instead of a review.
var ErrNoReview = errors.New("no review produced")

type ReviewCmd struct {
	flags  *Flags
	raw    bool
	output string

	stdin    func() stdinInput
	reviewer func(opts review.Options) review.Reviewer
	isTTY    func(w io.Writer) (bool, int)
}

// NewReviewCmd creates a new review command.
func NewReviewCmd(flags *Flags) *ReviewCmd {
	return &ReviewCmd{
		flags: flags,
		stdin: osStdin,
		reviewer: func(opts review.Options) review.Reviewer {
			return review.NewClient(opts)
		},
		isTTY: writerTerminal,
	}
}

// Register adds the review command to the application.
func (cmd *ReviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "review",
		Usage:     "Review a file once and print the result",
		UsageText: "critic review [options] [file]",
		Description: `Sends the code to the review endpoint and prints the review.

Code is read from the file argument, or from stdin when it is piped. The review
is rendered as Markdown when stdout is a terminal and printed raw otherwise.
The command exits with status 1 when no review could be produced.

Examples:
  critic review main.go
  git diff | critic review --raw
  critic review -o reviews/ handler.js`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print the review without Markdown rendering",
				Destination: &cmd.raw,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "also write review.txt into this directory",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ReviewCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	cfg, err := cmd.flags.Settings()
	if err != nil {
		return err
	}
	applyTheme(cfg)

	src, err := readSource(c.Args().First(), cmd.stdin())
	if err != nil {
		return err
	}
	if strings.TrimSpace(src.Code) == "" {
		return errors.New("no code to review: pass a file or pipe code on stdin")
	}

	reviewer := cmd.reviewer(reviewOptions(cfg))

	outcome := reviewer.Request(ctx, src.Code)

	w := c.Root().Writer
	text := outcome.Text
	if tty, width := cmd.isTTY(w); tty && !cmd.raw {
		text = markdown.NewRenderer().Render(text, width)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, _ = io.WriteString(w, text)

	if !outcome.OK() {
		log.Warn().Err(outcome.Err).Stringer("outcome", outcome.Kind).Msg("review failed")
		return ErrNoReview
	}

	if cmd.output != "" {
		path, err := export.DownloadReview(cmd.output, outcome.Text)
		if err != nil {
			return err
		}
		p.Successf("Saved %s", path)
	}

	return nil
}

func writerTerminal(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = defaultRenderWidth
	}
	return true, width
}

