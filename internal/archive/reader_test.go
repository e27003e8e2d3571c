package archive

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"
)

// writeRawTar creates a tar archive directly so reader tests can
// exercise entries the builder would never produce.
func writeRawTar(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	archiveFile, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer func() { _ = archiveFile.Close() }()

	tarWriter := tar.NewWriter(archiveFile)
	defer func() { _ = tarWriter.Close() }()

	for name, content := range entries {
		header := &tar.Header{
			Name: name,
			Mode: 0644,
			Size: int64(len(content)),
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			t.Fatalf("write header for %s: %v", name, err)
		}
		if _, err := tarWriter.Write([]byte(content)); err != nil {
			t.Fatalf("write content for %s: %v", name, err)
		}
	}
}

func TestList(t *testing.T) {
	tmpDir := t.TempDir()
	first := filepath.Join(tmpDir, "agent1.wasm")
	second := filepath.Join(tmpDir, "agent2.wasm")
	for _, path := range []string{first, second} {
		if err := os.WriteFile(path, []byte("WASM_STUB"), 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	archivePath := filepath.Join(tmpDir, "archive.tar")
	if err := NewBuilder().Build(archivePath, []string{first, second}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	entries, err := List(archivePath)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Name != "agent1.wasm" || entries[1].Name != "agent2.wasm" {
		t.Errorf("entry names = [%s %s], want [agent1.wasm agent2.wasm]",
			entries[0].Name, entries[1].Name)
	}
	for _, entry := range entries {
		if entry.Size != int64(len("WASM_STUB")) {
			t.Errorf("entry %s size = %d, want %d", entry.Name, entry.Size, len("WASM_STUB"))
		}
		if entry.Format != tar.FormatUSTAR.String() {
			t.Errorf("entry %s format = %s, want %s", entry.Name, entry.Format, tar.FormatUSTAR)
		}
	}
}

func TestList_MissingArchive(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "absent.tar")); err == nil {
		t.Fatal("expected error for missing archive")
	}
}

func TestList_NotATar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.tar")
	if err := os.WriteFile(path, []byte("definitely not a tar archive"), 0644); err != nil {
		t.Fatalf("write junk: %v", err)
	}

	if _, err := List(path); err == nil {
		t.Fatal("expected error for corrupt archive")
	}
}

func TestUnpack_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte("WASM_STUB")
	first := filepath.Join(tmpDir, "agent1.wasm")
	second := filepath.Join(tmpDir, "agent2.wasm")
	for _, path := range []string{first, second} {
		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	archivePath := filepath.Join(tmpDir, "archive.tar")
	if err := NewBuilder().Build(archivePath, []string{first, second}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	destDir := filepath.Join(tmpDir, "extracted")
	if err := Unpack(archivePath, destDir); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}

	// Exactly the two entries, byte-identical to the artifact
	dirEntries, err := os.ReadDir(destDir)
	if err != nil {
		t.Fatalf("read dest dir: %v", err)
	}
	if len(dirEntries) != 2 {
		t.Fatalf("got %d extracted files, want 2", len(dirEntries))
	}

	for _, name := range []string{"agent1.wasm", "agent2.wasm"} {
		got, err := os.ReadFile(filepath.Join(destDir, name))
		if err != nil {
			t.Fatalf("read extracted %s: %v", name, err)
		}
		if string(got) != string(content) {
			t.Errorf("extracted %s content differs from artifact", name)
		}
	}
}

func TestUnpack_CurrentDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "agent1.wasm")
	if err := os.WriteFile(source, []byte("WASM_STUB"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	archivePath := filepath.Join(tmpDir, "archive.tar")
	if err := NewBuilder().Build(archivePath, []string{source}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	workDir := filepath.Join(tmpDir, "work")
	if err := os.Mkdir(workDir, 0755); err != nil {
		t.Fatalf("create work dir: %v", err)
	}
	t.Chdir(workDir)

	// A relative destination must accept valid entries
	if err := Unpack(archivePath, "."); err != nil {
		t.Fatalf("Unpack into current directory failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(workDir, "agent1.wasm"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(got) != "WASM_STUB" {
		t.Errorf("extracted content = %q, want %q", got, "WASM_STUB")
	}
}

func TestUnpack_PathTraversal(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{name: "parent_escape", entry: "../escape.wasm"},
		{name: "nested_escape", entry: "sub/../../escape.wasm"},
		{name: "absolute_path", entry: "/escape.wasm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			archivePath := filepath.Join(tmpDir, "evil.tar")
			writeRawTar(t, archivePath, map[string]string{
				tt.entry: "evil",
			})

			destDir := filepath.Join(tmpDir, "extracted")
			if err := Unpack(archivePath, destDir); err == nil {
				t.Fatal("expected error for path traversal entry")
			}

			if _, err := os.Stat(filepath.Join(tmpDir, "escape.wasm")); !os.IsNotExist(err) {
				t.Error("traversal entry escaped the destination directory")
			}

			// The guard must hold for a relative destination too
			t.Chdir(tmpDir)
			if err := Unpack(archivePath, "."); err == nil {
				t.Error("expected error for traversal entry with relative destination")
			}
		})
	}
}
