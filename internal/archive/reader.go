package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Entry describes one archive entry as reported by List.
type Entry struct {
	Name   string
	Size   int64
	Mode   int64
	Format string
}

// List returns the entries of a tar archive in on-disk order.
func List(archivePath string) ([]Entry, error) {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	tarReader := tar.NewReader(archiveFile)

	var entries []Entry
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar header: %w", err)
		}

		entries = append(entries, Entry{
			Name:   header.Name,
			Size:   header.Size,
			Mode:   header.Mode,
			Format: header.Format.String(),
		})
	}

	return entries, nil
}

// Unpack extracts a tar archive into destDir. Only regular files and
// directories are extracted; entry paths are checked against
// directory traversal.
func Unpack(archivePath, destDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	tarReader := tar.NewReader(archiveFile)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		// Security check: prevent path traversal. The entry name must
		// stay local so the check holds for relative destinations like
		// "." as well as absolute ones.
		name := filepath.Clean(header.Name)
		if !filepath.IsLocal(name) {
			return fmt.Errorf("illegal file path: %s", header.Name)
		}
		target := filepath.Join(destDir, name)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}

			outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("create file %s: %w", target, err)
			}

			if _, err := io.Copy(outFile, tarReader); err != nil {
				outFile.Close()
				return fmt.Errorf("write file %s: %w", target, err)
			}

			outFile.Close()

		default:
			// Skip symlinks, devices, and other types; vfspack
			// archives only ever contain regular files.
			continue
		}
	}

	return nil
}
