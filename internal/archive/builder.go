package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Builder creates tar archives in USTAR format.
type Builder struct{}

// NewBuilder creates a new archive builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build creates a tar archive at destPath containing the given files
// as entries, in order, each named by its basename. The destination's
// parent directory must already exist. A pre-existing archive at
// destPath is replaced atomically; on any failure the destination is
// left untouched and the temporary file is removed.
func (b *Builder) Build(destPath string, files []string) (err error) {
	destDir := filepath.Dir(destPath)

	tmpFile, err := os.CreateTemp(destDir, ".vfspack-*.tar")
	if err != nil {
		return fmt.Errorf("create temporary archive: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Scoped teardown: any failure below removes the temporary file
	// so no partial archive survives.
	defer func() {
		if err != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	tarWriter := tar.NewWriter(tmpFile)

	for _, path := range files {
		if err = addEntry(tarWriter, path); err != nil {
			return fmt.Errorf("add entry %s: %w", filepath.Base(path), err)
		}
	}

	// Close finalizes the end-of-archive trailer
	if err = tarWriter.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}

	if err = tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync archive: %w", err)
	}
	if err = tmpFile.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	if err = os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename archive into place: %w", err)
	}

	return nil
}

// addEntry writes one regular-file entry with a USTAR header.
func addEntry(tarWriter *tar.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat entry source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("entry source %s is not a regular file", path)
	}

	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     filepath.Base(path),
		Size:     info.Size(),
		Mode:     0644,
		ModTime:  info.ModTime(),
		Format:   tar.FormatUSTAR,
	}

	if err := tarWriter.WriteHeader(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open entry source: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(tarWriter, file); err != nil {
		return fmt.Errorf("write content: %w", err)
	}

	return nil
}
