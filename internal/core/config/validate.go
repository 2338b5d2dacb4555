package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/critic/pkg/executil"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration: the
// endpoint URL, file system access, glob syntax, lexer names and the copy
// command. The configPath argument is the config file to check (empty skips
// the check). This calls Validate() first for basic structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("review.endpoint", c.Review.Endpoint, isReviewURL),
		criterio.Run("export.download_dir", c.Export.DownloadDir, isDirectoryOrNotExist),
		criterio.Run("export.copy_command", c.Export.CopyCommand, copyCommandExists),
		criterio.Run("editor.language", c.Editor.Language, isKnownLanguage),
		c.validateLanguageRules(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	u, err := url.Parse(c.Review.Endpoint)
	if err == nil && u.Scheme == "http" && !isLoopback(u.Hostname()) {
		warnings = append(warnings, ValidationWarning{
			Category: "Review",
			Item:     "endpoint",
			Message:  "code is sent unencrypted to a non-local host",
		})
	}

	for i, rule := range c.Editor.Languages {
		for j := 0; j < i; j++ {
			if c.Editor.Languages[j].Pattern == rule.Pattern {
				warnings = append(warnings, ValidationWarning{
					Category: "Editor",
					Item:     fmt.Sprintf("languages[%d]", i),
					Message:  fmt.Sprintf("pattern %q is shadowed by languages[%d]", rule.Pattern, j),
				})
				break
			}
		}
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateLanguageRules() error {
	var errs criterio.FieldErrorsBuilder
	for i, rule := range c.Editor.Languages {
		if !doublestar.ValidatePattern(rule.Pattern) {
			errs = errs.Append(fmt.Sprintf("editor.languages[%d].pattern", i), fmt.Errorf("invalid glob %q", rule.Pattern))
		}
		if err := isKnownLanguage(rule.Language); err != nil {
			errs = errs.Append(fmt.Sprintf("editor.languages[%d].language", i), err)
		}
	}
	return errs.ToError()
}

// isReviewURL validates that the endpoint is an absolute http(s) URL.
func isReviewURL(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // created on first download
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func copyCommandExists(cmd string) error {
	if strings.TrimSpace(cmd) == "" {
		return nil
	}
	return executil.LookPath(cmd)
}

func isKnownLanguage(name string) error {
	if lexers.Get(name) == nil {
		return fmt.Errorf("unknown language %q", name)
	}
	return nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
