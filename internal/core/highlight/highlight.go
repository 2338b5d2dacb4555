// Package highlight renders source code with terminal syntax colors.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight tokenizes code as language and formats it for a 256 color
// terminal using the named chroma style. It never fails: unknown languages
// fall back to plain text, unknown styles to the chroma fallback, and any
// tokenizer or formatter error returns code unchanged.
func Highlight(code, language, style string) (out string) {
	if code == "" {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			out = code
		}
	}()

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return code
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	tokens := iterator.Tokens()
	if !strings.HasSuffix(code, "\n") {
		tokens = trimAddedNewline(tokens)
	}

	var b strings.Builder
	if err := formatter.Format(&b, styles.Get(style), chroma.Literator(tokens...)); err != nil {
		return code
	}
	return b.String()
}

// trimAddedNewline drops the newline some lexers append to unterminated input.
func trimAddedNewline(tokens []chroma.Token) []chroma.Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Value == "" {
			continue
		}
		tokens[i].Value = strings.TrimSuffix(tokens[i].Value, "\n")
		break
	}
	return tokens
}

// Known reports whether language names a registered lexer.
func Known(language string) bool {
	return lexers.Get(language) != nil
}
