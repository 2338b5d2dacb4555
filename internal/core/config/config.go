// Package config handles configuration loading and validation for critic.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/critic/internal/core/styles"
)

// DefaultEndpoint is the review service address used when none is configured.
const DefaultEndpoint = "http://localhost:3000/ai/get-review"

// Config holds the application configuration.
type Config struct {
	Theme  string       `yaml:"theme"`
	Review ReviewConfig `yaml:"review"`
	Editor EditorConfig `yaml:"editor"`
	Export ExportConfig `yaml:"export"`
}

// ReviewConfig configures the outbound review request.
type ReviewConfig struct {
	Endpoint         string            `yaml:"endpoint"`
	Timeout          time.Duration     `yaml:"timeout"`
	MaxResponseBytes int64             `yaml:"max_response_bytes"`
	Headers          map[string]string `yaml:"headers"` // static headers, e.g. Authorization
}

// EditorConfig configures the code editor pane.
type EditorConfig struct {
	Language  string         `yaml:"language"`  // lexer used when no rule matches
	TabWidth  int            `yaml:"tab_width"` // spaces inserted for a tab key
	Languages []LanguageRule `yaml:"languages,omitempty"` // filename rules, first match wins
}

// LanguageRule maps a doublestar filename pattern to a chroma language.
type LanguageRule struct {
	Pattern  string `yaml:"pattern"`
	Language string `yaml:"language"`
}

// ExportConfig configures the copy and download actions.
type ExportConfig struct {
	DownloadDir string `yaml:"download_dir"` // directory receiving review.txt
	CopyCommand string `yaml:"copy_command"` // empty = system clipboard
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: string(styles.DefaultTheme),
		Review: ReviewConfig{
			Endpoint:         DefaultEndpoint,
			Timeout:          2 * time.Minute,
			MaxResponseBytes: 4 << 20,
			Headers:          map[string]string{},
		},
		Editor: EditorConfig{
			Language: "javascript",
			TabWidth: 2,
		},
		Export: ExportConfig{
			DownloadDir: ".",
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Write marshals cfg as YAML to path, creating parent directories.
func Write(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Review.Endpoint == "" {
		c.Review.Endpoint = defaults.Review.Endpoint
	}
	if c.Review.Timeout == 0 {
		c.Review.Timeout = defaults.Review.Timeout
	}
	if c.Review.MaxResponseBytes == 0 {
		c.Review.MaxResponseBytes = defaults.Review.MaxResponseBytes
	}
	if c.Review.Headers == nil {
		c.Review.Headers = map[string]string{}
	}
	if c.Editor.Language == "" {
		c.Editor.Language = defaults.Editor.Language
	}
	if c.Editor.TabWidth == 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Export.DownloadDir == "" {
		c.Export.DownloadDir = defaults.Export.DownloadDir
	}
}

// ThemeValue returns the configured theme. Validate guarantees it parses.
func (c *Config) ThemeValue() styles.Theme {
	t, err := styles.ParseTheme(c.Theme)
	if err != nil {
		return styles.DefaultTheme
	}
	return t
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if _, err := styles.ParseTheme(c.Theme); err != nil {
		return fmt.Errorf("theme: %w", err)
	}

	if c.Review.Endpoint == "" {
		return fmt.Errorf("review.endpoint cannot be empty")
	}

	if c.Review.Timeout < 0 {
		return fmt.Errorf("review.timeout cannot be negative")
	}

	if c.Review.MaxResponseBytes < 1 {
		return fmt.Errorf("review.max_response_bytes must be at least 1")
	}

	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 8 {
		return fmt.Errorf("editor.tab_width must be between 1 and 8")
	}

	for i, rule := range c.Editor.Languages {
		if rule.Pattern == "" {
			return fmt.Errorf("editor.languages[%d]: pattern is required", i)
		}
		if rule.Language == "" {
			return fmt.Errorf("editor.languages[%d]: language is required", i)
		}
	}

	if c.Export.DownloadDir == "" {
		return fmt.Errorf("export.download_dir cannot be empty")
	}

	return nil
}
