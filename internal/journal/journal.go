// Package journal records pack runs with locking and atomic writes.
// Each run gets a JSON record under the state directory; a failed
// run's record names the staged files it created so a later run can
// sweep orphans left by a crash.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// State represents the current state of a pack run.
type State string

const (
	StatePending    State = "pending"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Run is the journal record for a single pack run.
type Run struct {
	Version     int       `json:"version"` // Schema version for future evolution
	ID          string    `json:"id"`      // UUID for unique identification
	Timestamp   time.Time `json:"timestamp"`
	State       State     `json:"state"`
	Artifact    string    `json:"artifact"`               // source artifact path
	SHA256      string    `json:"sha256,omitempty"`       // artifact digest
	Entries     []string  `json:"entries"`                // archive entry names, in order
	ArchivePath string    `json:"archive_path"`           // archive destination
	Platform    string    `json:"platform,omitempty"`     // build host label
	StagedFiles []string  `json:"staged_files"`           // loose copies created, for orphan sweep
	LastError   string    `json:"last_error,omitempty"`   // failure detail, if any
}

// New creates a pending run record.
func New(artifactPath, archivePath string, entries []string) *Run {
	return &Run{
		Version:     1,
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		State:       StatePending,
		Artifact:    artifactPath,
		ArchivePath: archivePath,
		Entries:     append([]string(nil), entries...),
		StagedFiles: []string{},
	}
}

// SetState transitions the run and records the failure detail when
// entering the failed state.
func (r *Run) SetState(state State, err error) {
	r.State = state
	if err != nil {
		r.LastError = err.Error()
	} else {
		r.LastError = ""
	}
}

// filename returns the journal file name for this run.
func (r *Run) filename() string {
	return fmt.Sprintf("run-%s.json", r.ID)
}

// Save writes the run record to dir atomically using the
// write-then-rename pattern, then syncs the directory for durability.
func (r *Run) Save(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}

	finalPath := filepath.Join(dir, r.filename())
	tmpPath := finalPath + ".tmp"

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}

	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write temporary run record: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename run record: %w", err)
	}

	df, err := os.Open(dir)
	if err == nil {
		if syncErr := df.Sync(); syncErr != nil {
			df.Close()
			return fmt.Errorf("sync journal directory: %w", syncErr)
		}
		df.Close()
	}

	return nil
}

// Load reads a run record from disk.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run record: %w", err)
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("unmarshal run record: %w", err)
	}

	return &run, nil
}

// Unfinished returns the run records in dir that never reached a
// terminal state, oldest first by file name.
func Unfinished(dir string) ([]*Run, error) {
	names, err := filepath.Glob(filepath.Join(dir, "run-*.json"))
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}

	var runs []*Run
	for _, name := range names {
		run, err := Load(name)
		if err != nil {
			// A malformed record is skipped, not fatal: the journal
			// is advisory.
			continue
		}
		if run.State == StatePending || run.State == StateInProgress || run.State == StateFailed {
			runs = append(runs, run)
		}
	}

	return runs, nil
}

// Remove deletes the run record from dir. Records already gone are
// not an error.
func (r *Run) Remove(dir string) error {
	path := filepath.Join(dir, r.filename())
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove run record: %w", err)
	}
	return nil
}
