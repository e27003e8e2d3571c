// Package testutil provides utilities for testing vfspack in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv points vfspack's state directory at an isolated temp
// location so tests never touch the user's real lock or run journal.
//
// The cleanup is handled by t.TempDir() and t.Setenv, so callers
// don't need to undo anything.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	stateDir := filepath.Join(tmpDir, "state")

	t.Setenv("VFSPACK_STATE_DIR", stateDir)

	if err := os.MkdirAll(stateDir, 0o750); err != nil {
		t.Fatalf("failed to create test state directory %s: %v", stateDir, err)
	}

	return tmpDir
}
