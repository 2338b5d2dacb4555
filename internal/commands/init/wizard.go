package initcmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hay-kot/critic/internal/core/config"
	"github.com/hay-kot/critic/internal/core/highlight"
	"github.com/hay-kot/critic/internal/core/styles"
	"github.com/hay-kot/critic/internal/printer"
)

// WizardOptions configures the wizard behavior.
type WizardOptions struct {
	ConfigPath string
	Yes        bool // skip prompts, use defaults
	Force      bool // overwrite existing config
	Defaults   config.Config
}

// Wizard orchestrates the init process.
type Wizard struct {
	opts WizardOptions
}

// NewWizard creates a new init wizard.
func NewWizard(opts WizardOptions) *Wizard {
	return &Wizard{opts: opts}
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) error {
	p := printer.Ctx(ctx)

	if ConfigExists(w.opts.ConfigPath) && !w.opts.Force {
		if w.opts.Yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", w.opts.ConfigPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(w.opts.ConfigPath + "\nOverwrite? (a backup will be created)").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	cfg := w.opts.Defaults
	if !w.opts.Yes {
		var err error
		cfg, err = w.promptUser(cfg)
		if err != nil {
			return err
		}
	}
	cfg.Export.DownloadDir = expandHome(cfg.Export.DownloadDir)

	if err := cfg.Validate(); err != nil {
		return err
	}

	if ConfigExists(w.opts.ConfigPath) {
		backupPath, err := BackupConfig(w.opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("backup config: %w", err)
		}
		if backupPath != "" {
			p.Successf("Backed up config to: %s", backupPath)
		}
	}

	if err := config.Write(cfg, w.opts.ConfigPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	p.Successf("Created config: %s", w.opts.ConfigPath)

	for _, warn := range cfg.Warnings() {
		p.Warnf("%s: %s", warn.Category, warn.Message)
	}

	p.Printf("")
	p.Section("Next Steps")
	p.Printf("  1. Run 'critic config validate' to check the endpoint and paths")
	p.Printf("  2. Run 'critic' or 'critic <file>' to start reviewing")

	return nil
}

func (w *Wizard) promptUser(cfg config.Config) (config.Config, error) {
	theme := cfg.Theme
	if theme == "" {
		theme = string(styles.DefaultTheme)
	}

	themeOptions := make([]huh.Option[string], 0, len(styles.ThemeNames()))
	for _, name := range styles.ThemeNames() {
		themeOptions = append(themeOptions, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Review endpoint").
				Description("URL that receives POST {\"code\": ...} and answers with markdown").
				Validate(validateEndpoint).
				Value(&cfg.Review.Endpoint),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default language").
				Description("Used for highlighting when no file name matches").
				Validate(validateLanguage).
				Value(&cfg.Editor.Language),
			huh.NewInput().
				Title("Download directory").
				Description("Where review.txt is saved").
				Value(&cfg.Export.DownloadDir),
			huh.NewInput().
				Title("Copy command").
				Description("Leave empty to use the system clipboard (e.g. pbcopy, wl-copy)").
				Value(&cfg.Export.CopyCommand),
		),
	)
	if err := form.Run(); err != nil {
		return cfg, err
	}

	cfg.Theme = theme
	cfg.Export.CopyCommand = strings.TrimSpace(cfg.Export.CopyCommand)
	return cfg, nil
}

func validateEndpoint(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http(s) URL")
	}
	return nil
}

func validateLanguage(s string) error {
	if !highlight.Known(s) {
		return fmt.Errorf("unknown language %q", s)
	}
	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
