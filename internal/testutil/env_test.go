package testutil

import (
	"os"
	"testing"
)

func TestSetupTestEnv(t *testing.T) {
	tmpDir := SetupTestEnv(t)

	stateDir := os.Getenv("VFSPACK_STATE_DIR")
	if stateDir == "" {
		t.Fatal("VFSPACK_STATE_DIR should be set")
	}

	info, err := os.Stat(stateDir)
	if err != nil {
		t.Fatalf("state dir should exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("state dir should be a directory")
	}

	if tmpDir == "" {
		t.Error("SetupTestEnv should return the temp root")
	}
}
