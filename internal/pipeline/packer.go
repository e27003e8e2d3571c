// Package pipeline orchestrates the packaging run: resolve the
// artifact, verify it when configured, stage the loose copies, build
// the archive, and clean up. Staging cleanup is scoped to the run and
// executes on every exit path.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"vfspack/internal/archive"
	"vfspack/internal/config"
	"vfspack/internal/journal"
	"vfspack/internal/payload"
	"vfspack/internal/platform"
)

// Options configures a Packer beyond the build configuration.
type Options struct {
	// StateDir holds the lock and the run journal.
	StateDir string

	// Logger receives pipeline progress. Defaults to no-op.
	Logger Logger

	// Detector supplies build host info for the journal. Defaults to
	// real detection.
	Detector platform.Detector

	// KeepLoose overrides config.Options.KeepLoose (debug aid).
	KeepLoose bool
}

// Result describes a completed pack run.
type Result struct {
	RunID       string
	ArchivePath string
	Entries     []string
	SHA256      string
}

// Packer runs the packaging pipeline.
type Packer struct {
	cfg       *config.Config
	stateDir  string
	keepLoose bool
	logger    Logger
	detector  platform.Detector
	verifier  *payload.Verifier
	builder   *archive.Builder
}

// NewPacker creates a packer for the given configuration.
func NewPacker(cfg *config.Config, opts Options) (*Packer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if opts.StateDir == "" {
		return nil, fmt.Errorf("StateDir is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = defaultLogger()
	}
	detector := opts.Detector
	if detector == nil {
		detector = platform.NewDetector()
	}

	return &Packer{
		cfg:       cfg,
		stateDir:  opts.StateDir,
		keepLoose: opts.KeepLoose || cfg.Options.KeepLoose,
		logger:    logger,
		detector:  detector,
		verifier:  payload.NewVerifier(),
		builder:   archive.NewBuilder(),
	}, nil
}

// Run executes the pipeline. On success the archive exists at the
// configured destination and the staged copies are gone; on failure
// the destination is untouched and staged copies are cleaned up.
func (p *Packer) Run(ctx context.Context) (*Result, error) {
	lock, err := journal.AcquireLock(p.stateDir)
	if err != nil {
		return nil, fmt.Errorf("acquire pack lock: %w", err)
	}
	defer lock.Release()

	journalDir := filepath.Join(p.stateDir, "journal")
	p.sweepOrphans(journalDir)

	// Missing-input is checked before anything is created so a failed
	// precondition leaves the archive destination untouched.
	artifact, err := payload.Resolve(p.cfg.Artifact.Path)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("artifact resolved",
		"path", artifact.Path, "size", artifact.Size, "sha256", artifact.SHA256)

	if err := p.verifyArtifact(artifact.Path); err != nil {
		return nil, err
	}

	info, err := p.detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect build host: %w", err)
	}

	run := journal.New(artifact.Path, p.cfg.Archive.Path, p.cfg.Entries)
	run.SHA256 = artifact.SHA256
	run.Platform = info.Label()
	run.SetState(journal.StateInProgress, nil)
	if err := run.Save(journalDir); err != nil {
		return nil, fmt.Errorf("save run record: %w", err)
	}

	result, err := p.stageAndBuild(artifact, run, journalDir)
	if err != nil {
		run.SetState(journal.StateFailed, err)
		if saveErr := run.Save(journalDir); saveErr != nil {
			p.logger.Warn("save failed run record", "error", saveErr)
		}
		return nil, err
	}

	run.SetState(journal.StateCompleted, nil)
	if err := run.Save(journalDir); err != nil {
		return nil, fmt.Errorf("save run record: %w", err)
	}

	result.RunID = run.ID
	return result, nil
}

// stageAndBuild creates the loose copies, builds the archive, and
// removes the copies. Cleanup is deferred so it runs whether or not
// the build succeeds; a cleanup failure on an otherwise successful
// run is still an error.
func (p *Packer) stageAndBuild(artifact *payload.Artifact, run *journal.Run, journalDir string) (result *Result, err error) {
	stagingDir := p.cfg.Options.StagingDir
	if stagingDir == "" {
		stagingDir = "."
	}

	stage := payload.NewStage(stagingDir)
	defer func() {
		if p.keepLoose {
			p.logger.Info("keeping loose copies", "files", stage.Files())
			return
		}
		if cleanupErr := stage.Cleanup(); cleanupErr != nil && err == nil {
			err = cleanupErr
			result = nil
		}
	}()

	var staged []string
	for _, name := range p.cfg.Entries {
		copyPath, addErr := stage.Add(artifact.Path, name)
		if addErr != nil {
			return nil, addErr
		}
		staged = append(staged, copyPath)
		p.logger.Debug("staged copy", "path", copyPath)
	}

	run.StagedFiles = stage.Files()
	if saveErr := run.Save(journalDir); saveErr != nil {
		return nil, fmt.Errorf("save run record: %w", saveErr)
	}

	if buildErr := p.builder.Build(p.cfg.Archive.Path, staged); buildErr != nil {
		return nil, fmt.Errorf("build archive: %w", buildErr)
	}
	p.logger.Info("archive built",
		"path", p.cfg.Archive.Path, "entries", len(staged))

	return &Result{
		ArchivePath: p.cfg.Archive.Path,
		Entries:     append([]string(nil), p.cfg.Entries...),
		SHA256:      artifact.SHA256,
	}, nil
}

// verifyArtifact runs the configured verification methods, if any.
func (p *Packer) verifyArtifact(artifactPath string) error {
	if p.cfg.Artifact.Checksum != "" {
		if err := p.verifier.VerifyChecksum(artifactPath, p.cfg.Artifact.Checksum); err != nil {
			return fmt.Errorf("verify checksum: %w", err)
		}
		p.logger.Debug("checksum verified", "file", p.cfg.Artifact.Checksum)
	}

	if p.cfg.Artifact.Signature != "" {
		if err := p.verifier.VerifySignature(artifactPath, p.cfg.Artifact.Signature, p.cfg.Artifact.Key); err != nil {
			return fmt.Errorf("verify signature: %w", err)
		}
		p.logger.Debug("signature verified", "file", p.cfg.Artifact.Signature)
	}

	return nil
}

// sweepOrphans removes loose copies left by unfinished earlier runs.
// The journal is advisory: sweep failures are logged, never fatal.
func (p *Packer) sweepOrphans(journalDir string) {
	runs, err := journal.Unfinished(journalDir)
	if err != nil {
		p.logger.Warn("list unfinished runs", "error", err)
		return
	}

	for _, run := range runs {
		for _, path := range run.StagedFiles {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				p.logger.Warn("sweep orphaned copy", "path", path, "error", err)
				continue
			}
			p.logger.Debug("swept orphaned copy", "path", path, "run", run.ID)
		}
		if err := run.Remove(journalDir); err != nil {
			p.logger.Warn("remove stale run record", "run", run.ID, "error", err)
		}
	}
}
