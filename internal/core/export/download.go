package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

const (
	// FileName is the name of the downloaded review.
	FileName = "review.txt"
	// MIMEType describes the downloaded content.
	MIMEType = "text/plain"
)

// DownloadReview writes review to dir/review.txt, replacing any existing file.
// An empty review is a no-op and returns an empty path. An empty dir means the
// working directory.
func DownloadReview(dir, review string) (string, error) {
	if review == "" {
		return "", nil
	}

	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := atomic.WriteFile(path, strings.NewReader(review)); err != nil {
		return "", fmt.Errorf("write %s: %w", FileName, err)
	}
	if err := os.Chmod(path, 0o644); err != nil {
		return "", fmt.Errorf("chmod %s: %w", FileName, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
