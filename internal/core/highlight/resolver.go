package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/bmatcuk/doublestar/v4"
)

// Rule maps a doublestar glob to a language name.
type Rule struct {
	Pattern  string
	Language string
}

// Resolver picks the language for a file name. User rules are tried in order,
// then chroma's filename registry, then the default language.
type Resolver struct {
	rules    []Rule
	fallback string
}

// NewResolver creates a Resolver. Invalid patterns never match.
func NewResolver(fallback string, rules []Rule) *Resolver {
	return &Resolver{rules: rules, fallback: fallback}
}

// Default returns the language used when nothing else matches.
func (r *Resolver) Default() string {
	return r.fallback
}

// Resolve returns the language for filename. An empty filename (stdin or the
// sample snippet) resolves to the default.
func (r *Resolver) Resolve(filename string) string {
	if filename == "" {
		return r.fallback
	}

	name := filepath.ToSlash(filename)
	for _, rule := range r.rules {
		if matchRule(rule.Pattern, name) {
			return rule.Language
		}
	}

	if lexer := lexers.Match(filepath.Base(filename)); lexer != nil {
		return lexer.Config().Name
	}

	return r.fallback
}

// matchRule matches the full path and, for patterns without a separator, the
// base name so "*.jsx" behaves like it does in a shell.
func matchRule(pattern, name string) bool {
	if ok, err := doublestar.Match(pattern, name); err == nil && ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, err := doublestar.Match(pattern, filepath.Base(name))
		return err == nil && ok
	}
	return false
}
