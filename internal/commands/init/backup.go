package initcmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// BackupConfig copies the existing config to <path>.bak, replacing any older
// backup. It returns an empty path when there is nothing to back up.
func BackupConfig(configPath string) (string, error) {
	content, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read existing config: %w", err)
	}

	backupPath := configPath + ".bak"
	if err := atomic.WriteFile(backupPath, bytes.NewReader(content)); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	return backupPath, nil
}

// ConfigExists checks if a config file exists at the given path.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return err == nil
}
