package main

import (
	"context"
	"os"
	"testing"

	"vfspack/internal/config"
)

func TestRunInit(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := runInit(nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	// The generated file parses back to the default configuration
	cfg, err := config.NewParser(nil).ParseFile(context.Background(), config.DefaultConfigFile)
	if err != nil {
		t.Fatalf("generated config does not parse: %v", err)
	}
	if cfg.Artifact.Path != config.DefaultArtifactPath {
		t.Errorf("Artifact.Path = %q, want default", cfg.Artifact.Path)
	}
}

func TestRunInit_RefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.WriteFile(config.DefaultConfigFile, []byte("pack = {}"), 0644); err != nil {
		t.Fatalf("write existing config: %v", err)
	}

	if err := runInit(nil); err == nil {
		t.Fatal("expected error for existing config")
	}

	if err := runInit([]string{"--force"}); err != nil {
		t.Errorf("--force should overwrite: %v", err)
	}
}
