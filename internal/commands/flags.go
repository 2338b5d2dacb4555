package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/hay-kot/critic/internal/core/config"
	"github.com/hay-kot/critic/internal/core/highlight"
	"github.com/hay-kot/critic/internal/core/review"
	"github.com/hay-kot/critic/internal/core/styles"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// overrides for config file values
	Endpoint    string
	Theme       string
	Timeout     time.Duration
	DownloadDir string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "critic", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/critic/critic.log
// On Linux: $XDG_STATE_HOME/critic/critic.log (defaults to ~/.local/state/critic/critic.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "critic", "critic.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "critic", "critic.log")
	}

	return filepath.Join(home, ".local", "state", "critic", "critic.log")
}

// Settings returns the loaded config with command line overrides applied.
// Flags are read at call time so subcommand flags parsed after the root
// Before hook still count.
func (f *Flags) Settings() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.Config != nil {
		cfg = *f.Config
	}

	if f.Endpoint != "" {
		cfg.Review.Endpoint = f.Endpoint
	}
	if f.Theme != "" {
		cfg.Theme = f.Theme
	}
	if f.Timeout > 0 {
		cfg.Review.Timeout = f.Timeout
	}
	if f.DownloadDir != "" {
		cfg.Export.DownloadDir = f.DownloadDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func reviewOptions(cfg *config.Config) review.Options {
	return review.Options{
		Endpoint:         cfg.Review.Endpoint,
		Timeout:          cfg.Review.Timeout,
		MaxResponseBytes: cfg.Review.MaxResponseBytes,
		Headers:          cfg.Review.Headers,
	}
}

func newResolver(cfg *config.Config) *highlight.Resolver {
	rules := make([]highlight.Rule, 0, len(cfg.Editor.Languages))
	for _, r := range cfg.Editor.Languages {
		rules = append(rules, highlight.Rule{Pattern: r.Pattern, Language: r.Language})
	}
	return highlight.NewResolver(cfg.Editor.Language, rules)
}

func applyTheme(cfg *config.Config) styles.Theme {
	theme := cfg.ThemeValue()
	styles.SetTheme(theme)
	return theme
}
