package payload

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrArtifactMissing indicates the source artifact does not exist.
// This is a fatal precondition: nothing may be created when the
// artifact is absent.
var ErrArtifactMissing = errors.New("artifact not found")

// Artifact describes a resolved source payload.
type Artifact struct {
	Path   string
	Size   int64
	SHA256 string
}

// Resolve checks that the artifact exists, is a regular file, and
// computes its SHA-256 digest.
func Resolve(path string) (*Artifact, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("stat artifact: %w", err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("artifact %s is not a regular file", path)
	}

	digest, err := SHA256(path)
	if err != nil {
		return nil, fmt.Errorf("checksum artifact: %w", err)
	}

	return &Artifact{
		Path:   path,
		Size:   info.Size(),
		SHA256: digest,
	}, nil
}

// SHA256 calculates the hex-encoded SHA-256 digest of a file.
func SHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
