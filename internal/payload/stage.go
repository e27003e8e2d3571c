package payload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stage manages the loose copies created before archiving. Every
// created file is recorded so Cleanup can remove them regardless of
// how the pipeline exits.
type Stage struct {
	dir   string
	files []string
}

// NewStage creates a stage rooted at dir. The directory must already
// exist; the original script staged into the working directory and a
// missing staging directory is a configuration error, not something
// to silently create.
func NewStage(dir string) *Stage {
	return &Stage{dir: dir}
}

// Add copies the artifact to name inside the staging directory,
// overwriting any pre-existing file, and records the copy for
// cleanup. Returns the full path of the created copy.
//
// There is no partial-copy rollback: a failed copy leaves whatever
// bytes were written, and the recorded path still gets removed by
// Cleanup.
func (s *Stage) Add(srcPath, name string) (string, error) {
	dst := filepath.Join(s.dir, name)

	// Record before copying so an interrupted copy is still swept.
	s.files = append(s.files, dst)

	if err := copyFile(srcPath, dst); err != nil {
		return "", fmt.Errorf("stage %s: %w", name, err)
	}

	return dst, nil
}

// Files returns the paths of all copies recorded so far, in the
// order they were added.
func (s *Stage) Files() []string {
	return append([]string(nil), s.files...)
}

// Cleanup removes every recorded copy. Files already gone are not an
// error; the first real removal failure is returned after all
// removals were attempted.
func (s *Stage) Cleanup() error {
	var firstErr error

	for _, path := range s.files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove staged copy %s: %w", path, err)
			}
		}
	}

	s.files = nil
	return firstErr
}

// copyFile copies src to dst byte-identically with mode 0644,
// truncating any existing file at dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create copy: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy bytes: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close copy: %w", err)
	}

	return nil
}
