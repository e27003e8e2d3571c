package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// getStateDir returns the directory holding the pack lock and run
// journal. VFSPACK_STATE_DIR overrides the default (used by tests).
func getStateDir() (string, error) {
	if dir := os.Getenv("VFSPACK_STATE_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}

	return filepath.Join(home, ".local", "state", "vfspack"), nil
}
