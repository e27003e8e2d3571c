package payload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// Verifier checks artifact integrity before packaging. Both methods
// are optional and configuration-driven: a checksum file in sha256sum
// format, or a detached GPG signature with a public key.
type Verifier struct{}

// NewVerifier creates a new verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyChecksum verifies the artifact against a checksum file in
// sha256sum format ("<hex digest>  <filename>"). The line is matched
// by the artifact's basename; digests compare case-insensitively.
func (v *Verifier) VerifyChecksum(artifactPath, checksumPath string) error {
	actual, err := SHA256(artifactPath)
	if err != nil {
		return fmt.Errorf("calculate checksum: %w", err)
	}

	expected, err := findChecksum(checksumPath, filepath.Base(artifactPath))
	if err != nil {
		return fmt.Errorf("find checksum: %w", err)
	}

	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("checksum mismatch:\nactual:   %s\nexpected: %s", actual, expected)
	}

	return nil
}

// VerifySignature verifies a detached GPG signature over the
// artifact using the public key at keyPath. Armored and binary forms
// are accepted for both the key and the signature.
func (v *Verifier) VerifySignature(artifactPath, signaturePath, keyPath string) error {
	keyring, err := loadKeyring(keyPath)
	if err != nil {
		return fmt.Errorf("load keyring: %w", err)
	}

	artifactFile, err := os.Open(artifactPath)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer artifactFile.Close()

	sigFile, err := os.Open(signaturePath)
	if err != nil {
		return fmt.Errorf("open signature: %w", err)
	}
	defer sigFile.Close()

	// Try armored first, then binary signature form
	_, err = openpgp.CheckArmoredDetachedSignature(keyring, artifactFile, sigFile, nil)
	if err != nil {
		artifactFile.Seek(0, io.SeekStart)
		sigFile.Seek(0, io.SeekStart)
		_, err = openpgp.CheckDetachedSignature(keyring, artifactFile, sigFile, nil)
	}
	if err != nil {
		return fmt.Errorf("verify signature: %w", err)
	}

	return nil
}

// loadKeyring reads a public keyring from a key file, trying armored
// form first and falling back to binary.
func loadKeyring(keyPath string) (openpgp.EntityList, error) {
	keyFile, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("open key: %w", err)
	}
	defer keyFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		keyFile.Seek(0, io.SeekStart)
		keyring, err = openpgp.ReadKeyRing(keyFile)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}

	return keyring, nil
}

// findChecksum finds the digest for a specific filename in a
// sha256sum-format checksum file. Entries with paths are matched by
// basename as well.
func findChecksum(checksumPath, filename string) (string, error) {
	file, err := os.Open(checksumPath)
	if err != nil {
		return "", fmt.Errorf("open checksum file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		if parts[1] == filename || filepath.Base(parts[1]) == filename {
			return parts[0], nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksum file: %w", err)
	}

	return "", fmt.Errorf("checksum not found for %s", filename)
}
