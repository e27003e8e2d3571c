// Package config provides the vfspack build configuration: which
// artifact to package, what the archive entries are called, and where
// the archive is written.
//
// Configuration is declared in an optional sandboxed Lua file
// (vfspack.lua) with build host information injected, so entry lists
// and artifact paths can vary per host. With no config file present
// the defaults reproduce the original fixed-path behavior exactly.
package config

import (
	"fmt"
	"strings"
)

// Config is the complete packaging configuration.
type Config struct {
	// Metadata about the build
	Meta Meta `json:"meta,omitempty"`

	// Source artifact and optional verification material
	Artifact Artifact `json:"artifact"`

	// Output archive
	Archive Archive `json:"archive"`

	// Entry names for the archive, in order. Each entry becomes a
	// byte-identical copy of the artifact under that name.
	Entries []string `json:"entries"`

	// Packaging options
	Options Options `json:"options,omitempty"`
}

// Meta contains metadata about the build configuration.
type Meta struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Artifact describes the source payload.
type Artifact struct {
	// Path to the compiled wasm payload
	Path string `json:"path"`

	// Checksum file in sha256sum format (optional)
	Checksum string `json:"checksum,omitempty"`

	// Detached GPG signature of the payload (optional)
	Signature string `json:"signature,omitempty"`

	// Public key for signature verification (armored or binary).
	// Required when Signature is set.
	Key string `json:"key,omitempty"`
}

// Archive describes the output archive.
type Archive struct {
	// Destination path of the tar archive. The parent directory must
	// already exist.
	Path string `json:"path"`
}

// Options contains packaging options.
type Options struct {
	// StagingDir is where loose copies are created before archiving.
	// Defaults to the current directory.
	StagingDir string `json:"staging_dir,omitempty"`

	// KeepLoose skips removal of the staged copies (debug aid).
	KeepLoose bool `json:"keep_loose,omitempty"`
}

// Default returns the configuration matching the original packaging
// script: one wasm payload duplicated as agent1.wasm and agent2.wasm
// into src/archive.tar.
func Default() *Config {
	return &Config{
		Artifact: Artifact{Path: DefaultArtifactPath},
		Archive:  Archive{Path: DefaultArchivePath},
		Entries:  append([]string(nil), DefaultEntries...),
		Options:  Options{StagingDir: "."},
	}
}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Artifact.Path) == "" {
		return fmt.Errorf("artifact.path is required")
	}

	if strings.TrimSpace(c.Archive.Path) == "" {
		return fmt.Errorf("archive.path is required")
	}

	if len(c.Entries) == 0 {
		return fmt.Errorf("at least one entry name is required")
	}

	seen := make(map[string]bool, len(c.Entries))
	for _, entry := range c.Entries {
		if strings.TrimSpace(entry) == "" {
			return fmt.Errorf("entry names must not be empty")
		}
		if strings.ContainsAny(entry, `/\`) {
			return fmt.Errorf("entry name %q must be a bare file name without path separators", entry)
		}
		if seen[entry] {
			return fmt.Errorf("duplicate entry name: %s", entry)
		}
		seen[entry] = true
	}

	if c.Artifact.Signature != "" && c.Artifact.Key == "" {
		return fmt.Errorf("artifact.key is required when artifact.signature is set")
	}

	return nil
}
