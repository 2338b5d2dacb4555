package commands

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// source is where the code under review comes from.
type source struct {
	Code     string
	Filename string // empty for stdin
	Piped    bool
}

// Given reports whether code came from a file or stdin, even when empty.
func (s source) Given() bool {
	return s.Filename != "" || s.Piped
}

// stdinInput is swapped in tests.
type stdinInput struct {
	r        io.Reader
	terminal bool
}

func osStdin() stdinInput {
	return stdinInput{r: os.Stdin, terminal: term.IsTerminal(int(os.Stdin.Fd()))}
}

// readSource loads code from the file argument, or from stdin when it is not
// a terminal. It returns an empty source when neither is available.
func readSource(path string, in stdinInput) (source, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return source{}, fmt.Errorf("read %s: %w", path, err)
		}
		return source{Code: string(data), Filename: path}, nil
	}

	if in.terminal && path != "-" {
		return source{}, nil
	}

	data, err := io.ReadAll(in.r)
	if err != nil {
		return source{}, fmt.Errorf("read stdin: %w", err)
	}
	return source{Code: string(data), Piped: true}, nil
}
