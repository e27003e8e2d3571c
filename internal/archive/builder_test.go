package archive

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// readEntries reads back all entries of a tar archive, returning the
// headers and contents in on-disk order.
func readEntries(t *testing.T, archivePath string) ([]*tar.Header, [][]byte) {
	t.Helper()

	archiveFile, err := os.Open(archivePath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer archiveFile.Close()

	var headers []*tar.Header
	var contents [][]byte

	tarReader := tar.NewReader(archiveFile)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read tar header: %v", err)
		}

		content, err := io.ReadAll(tarReader)
		if err != nil {
			t.Fatalf("read entry content: %v", err)
		}

		headers = append(headers, header)
		contents = append(contents, content)
	}

	return headers, contents
}

func TestBuild(t *testing.T) {
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

	headers, contents := readEntries(t, archivePath)

	if len(headers) != 2 {
		t.Fatalf("got %d entries, want 2", len(headers))
	}

	// Order and names are preserved, entries are basenames
	if headers[0].Name != "agent1.wasm" || headers[1].Name != "agent2.wasm" {
		t.Errorf("entry names = [%s %s], want [agent1.wasm agent2.wasm]",
			headers[0].Name, headers[1].Name)
	}

	for i, header := range headers {
		if !bytes.Equal(contents[i], content) {
			t.Errorf("entry %s content differs from artifact", header.Name)
		}
		if header.Typeflag != tar.TypeReg {
			t.Errorf("entry %s typeflag = %v, want regular file", header.Name, header.Typeflag)
		}
		if header.Format != tar.FormatUSTAR {
			t.Errorf("entry %s format = %v, want USTAR", header.Name, header.Format)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "agent1.wasm")
	if err := os.WriteFile(source, []byte("WASM_STUB"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	firstArchive := filepath.Join(tmpDir, "first.tar")
	secondArchive := filepath.Join(tmpDir, "second.tar")

	builder := NewBuilder()
	if err := builder.Build(firstArchive, []string{source}); err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	if err := builder.Build(secondArchive, []string{source}); err != nil {
		t.Fatalf("second Build failed: %v", err)
	}

	// Entry names and contents are deterministic. Whole-file equality
	// is not asserted: ModTime header fields may differ.
	firstHeaders, firstContents := readEntries(t, firstArchive)
	secondHeaders, secondContents := readEntries(t, secondArchive)

	if len(firstHeaders) != len(secondHeaders) {
		t.Fatalf("entry count differs: %d vs %d", len(firstHeaders), len(secondHeaders))
	}
	for i := range firstHeaders {
		if firstHeaders[i].Name != secondHeaders[i].Name {
			t.Errorf("entry %d name differs: %s vs %s", i, firstHeaders[i].Name, secondHeaders[i].Name)
		}
		if !bytes.Equal(firstContents[i], secondContents[i]) {
			t.Errorf("entry %d content differs", i)
		}
	}
}

func TestBuild_ReplacesExistingArchive(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "agent1.wasm")
	if err := os.WriteFile(source, []byte("fresh"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	archivePath := filepath.Join(tmpDir, "archive.tar")
	if err := os.WriteFile(archivePath, []byte("stale junk"), 0644); err != nil {
		t.Fatalf("write stale archive: %v", err)
	}

	if err := NewBuilder().Build(archivePath, []string{source}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	headers, contents := readEntries(t, archivePath)
	if len(headers) != 1 || string(contents[0]) != "fresh" {
		t.Error("existing archive was not replaced")
	}
}

func TestBuild_MissingDestDir(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "agent1.wasm")
	if err := os.WriteFile(source, []byte("x"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	archivePath := filepath.Join(tmpDir, "no-such-dir", "archive.tar")
	if err := NewBuilder().Build(archivePath, []string{source}); err == nil {
		t.Fatal("expected error for missing destination directory")
	}
	if _, err := os.Stat(archivePath); !os.IsNotExist(err) {
		t.Error("destination must be left untouched on failure")
	}
}

func TestBuild_MissingEntrySourceLeavesNoArchive(t *testing.T) {
	tmpDir := t.TempDir()
	first := filepath.Join(tmpDir, "agent1.wasm")
	if err := os.WriteFile(first, []byte("x"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	archivePath := filepath.Join(tmpDir, "archive.tar")
	missing := filepath.Join(tmpDir, "agent2.wasm")

	err := NewBuilder().Build(archivePath, []string{first, missing})
	if err == nil {
		t.Fatal("expected error for missing entry source")
	}

	// No archive at the destination, no temporary leftovers
	if _, err := os.Stat(archivePath); !os.IsNotExist(err) {
		t.Error("destination must be left untouched on failure")
	}

	leftovers, err := filepath.Glob(filepath.Join(tmpDir, ".vfspack-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}
