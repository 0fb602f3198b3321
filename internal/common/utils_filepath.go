package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ToAbsolutePath expands a leading '~' to the current user's home
// directory and resolves the remainder into an absolute path
func ToAbsolutePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve the home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
	}
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert path[%s] to absolute: %w", path, err)
	}
	return absolutePath, nil
}
