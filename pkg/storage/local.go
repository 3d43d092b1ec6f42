package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore implements Store on the local filesystem: one directory per
// run, one file per artifact. Metadata comes straight from the filesystem.
type LocalStore struct {
	basePath string
}

// NewLocalStore creates a local artifact store rooted at basePath.
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStore{basePath: basePath}, nil
}

// Save stores an artifact under a run, overwriting any previous artifact
// with the same name.
func (s *LocalStore) Save(ctx context.Context, runID uuid.UUID, name string, r io.Reader) (*ArtifactInfo, error) {
	runDir := filepath.Join(s.basePath, runID.String())
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	path := filepath.Join(runDir, sanitizeName(name))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact: %w", err)
	}

	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path) // Cleanup on error
		return nil, fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close artifact: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat artifact: %w", err)
	}

	return &ArtifactInfo{
		Name:      name,
		Size:      size,
		Path:      path,
		CreatedAt: stat.ModTime(),
	}, nil
}

// Open retrieves a run's artifact by name
func (s *LocalStore) Open(ctx context.Context, runID uuid.UUID, name string) (io.ReadCloser, error) {
	path := filepath.Join(s.basePath, runID.String(), sanitizeName(name))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("artifact not found: %s", name)
		}
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	return f, nil
}

// List returns all artifacts for a run, in directory order.
func (s *LocalStore) List(ctx context.Context, runID uuid.UUID) ([]*ArtifactInfo, error) {
	runDir := filepath.Join(s.basePath, runID.String())
	entries, err := os.ReadDir(runDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*ArtifactInfo{}, nil
		}
		return nil, fmt.Errorf("failed to list run: %w", err)
	}

	artifacts := make([]*ArtifactInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stat, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, &ArtifactInfo{
			Name:      entry.Name(),
			Size:      stat.Size(),
			Path:      filepath.Join(runDir, entry.Name()),
			CreatedAt: stat.ModTime(),
		})
	}

	return artifacts, nil
}

// RemoveRun removes a run directory and everything in it
func (s *LocalStore) RemoveRun(ctx context.Context, runID uuid.UUID) error {
	runDir := filepath.Join(s.basePath, runID.String())
	if err := os.RemoveAll(runDir); err != nil {
		return fmt.Errorf("failed to remove run: %w", err)
	}
	return nil
}

// sanitizeName removes path separators and other unsafe characters so an
// artifact name cannot escape its run directory.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"..", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
