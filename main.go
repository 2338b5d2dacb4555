package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/critic/internal/commands"
	"github.com/hay-kot/critic/internal/core/config"
	"github.com/hay-kot/critic/internal/core/styles"
	"github.com/hay-kot/critic/internal/printer"
	"github.com/hay-kot/critic/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "critic",
		Usage:     "Get an AI review of a piece of code",
		UsageText: "critic [global options] [file] | critic command [command options]",
		Description: `Critic opens a two pane terminal workspace: edit code on the left, press
"r" to send it to the review endpoint and read the Markdown review on the right.

Run 'critic' to start from a sample snippet, 'critic main.go' to load a file,
or pipe code in with 'git diff | critic'.
Run 'critic review' for a one-shot review printed to stdout.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("CRITIC_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("CRITIC_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("CRITIC_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "endpoint",
				Usage:       "review endpoint URL (overrides review.endpoint)",
				Sources:     cli.EnvVars("CRITIC_ENDPOINT"),
				Destination: &flags.Endpoint,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "color theme (" + strings.Join(styles.ThemeNames(), ", ") + ")",
				Sources:     cli.EnvVars("CRITIC_THEME"),
				Destination: &flags.Theme,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "review request timeout (overrides review.timeout)",
				Sources:     cli.EnvVars("CRITIC_TIMEOUT"),
				Destination: &flags.Timeout,
			},
			&cli.StringFlag{
				Name:        "download-dir",
				Usage:       "directory review.txt is saved to (overrides export.download_dir)",
				Sources:     cli.EnvVars("CRITIC_DOWNLOAD_DIR"),
				Destination: &flags.DownloadDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			styles.SetTheme(cfg.ThemeValue())

			return printer.NewContext(ctx, printer.New(os.Stderr)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = commands.NewReviewCmd(flags).Register(app)
	app = commands.NewInitCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// The TUI is the default action; an optional argument names the file to load.
	app.Action = tuiCmd.Run

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		if msg := runErr.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		exitCode = 1
	}

	os.Exit(exitCode)
}
