package main

import (
	"os"
	"path/filepath"
	"testing"

	"vfspack/internal/archive"
)

// buildTestArchive creates a small archive to inspect/unpack.
func buildTestArchive(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "agent1.wasm")
	if err := os.WriteFile(source, []byte("WASM_STUB"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	archivePath := filepath.Join(tmpDir, "archive.tar")
	if err := archive.NewBuilder().Build(archivePath, []string{source}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return archivePath
}

func TestRunInspect(t *testing.T) {
	archivePath := buildTestArchive(t)

	if err := runInspect([]string{archivePath}); err != nil {
		t.Errorf("runInspect failed: %v", err)
	}
}

func TestRunInspect_MissingArchive(t *testing.T) {
	if err := runInspect([]string{filepath.Join(t.TempDir(), "absent.tar")}); err == nil {
		t.Error("expected error for missing archive")
	}
}

func TestRunInspect_TooManyArguments(t *testing.T) {
	if err := runInspect([]string{"a.tar", "b.tar"}); err == nil {
		t.Error("expected error for extra argument")
	}
}

func TestRunUnpack(t *testing.T) {
	archivePath := buildTestArchive(t)
	destDir := filepath.Join(t.TempDir(), "out")

	if err := runUnpack([]string{"-C", destDir, archivePath}); err != nil {
		t.Fatalf("runUnpack failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(destDir, "agent1.wasm"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(got) != "WASM_STUB" {
		t.Errorf("extracted content = %q, want %q", got, "WASM_STUB")
	}
}

func TestRunUnpack_DefaultsToWorkingDirectory(t *testing.T) {
	archivePath := buildTestArchive(t)
	t.Chdir(t.TempDir())

	// No -C flag: entries land in the current directory
	if err := runUnpack([]string{archivePath}); err != nil {
		t.Fatalf("runUnpack failed: %v", err)
	}

	got, err := os.ReadFile("agent1.wasm")
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(got) != "WASM_STUB" {
		t.Errorf("extracted content = %q, want %q", got, "WASM_STUB")
	}
}

func TestRunUnpack_MissingDirValue(t *testing.T) {
	if err := runUnpack([]string{"-C"}); err == nil {
		t.Error("expected error for -C without value")
	}
}
