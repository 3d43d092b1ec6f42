// Package storage persists analysis artifacts (CSV projections and
// related outputs) on disk, grouped by run.
package storage

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// ArtifactInfo describes one stored artifact.
type ArtifactInfo struct {
	Name      string
	Size      int64
	Path      string
	CreatedAt time.Time
}

// Store defines artifact storage operations. Artifacts are keyed by run
// and name; saving the same name twice within a run overwrites.
type Store interface {
	// Save stores an artifact under a run and returns its metadata
	Save(ctx context.Context, runID uuid.UUID, name string, r io.Reader) (*ArtifactInfo, error)

	// Open retrieves a run's artifact by name
	Open(ctx context.Context, runID uuid.UUID, name string) (io.ReadCloser, error)

	// List returns all artifacts for a run
	List(ctx context.Context, runID uuid.UUID) ([]*ArtifactInfo, error)

	// RemoveRun removes a run directory and everything in it
	RemoveRun(ctx context.Context, runID uuid.UUID) error
}
