package sync

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/oshokin/asset-sync/internal/logger"
)

// defaultDirectoryMode is used when creating the staging directory tree.
const defaultDirectoryMode os.FileMode = 0o755

// stagingDirectory owns the lifecycle of one staging directory for one run.
// The createdByThisRun flag belongs to the instance, so several configured
// synchronizers never interfere with each other.
type stagingDirectory struct {
	// path is the staging directory location under the public root.
	path string
	// createdByThisRun is true only if the directory did not exist
	// before this run and this run created it.
	createdByThisRun bool
}

// ensureCreated creates the directory tree (including parents) if it does not
// already exist and reports whether this call created it. An existing
// directory makes this a no-op.
func (s *stagingDirectory) ensureCreated(ctx context.Context) (bool, error) {
	if _, err := os.Stat(s.path); err == nil {
		logger.DebugKV(ctx, "Staging directory already exists", "path", s.path)
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("inspect staging directory: %w", err)
	}

	if err := os.MkdirAll(s.path, defaultDirectoryMode); err != nil {
		return false, fmt.Errorf("create staging directory: %w", err)
	}

	s.createdByThisRun = true
	logger.InfoKV(ctx, "Created staging directory", "path", s.path)

	return true, nil
}

// removeIfCreated deletes the directory recursively, tolerating absence and
// non-empty contents, but only when this run created it. A pre-existing
// directory survives untouched. Removal is best-effort; failures are logged.
func (s *stagingDirectory) removeIfCreated(ctx context.Context) {
	if !s.createdByThisRun {
		logger.DebugKV(ctx, "Staging directory pre-existed, leaving it in place", "path", s.path)
		return
	}

	if err := os.RemoveAll(s.path); err != nil {
		logger.ErrorKV(ctx, "Failed to remove staging directory", "path", s.path, "error", err)
		return
	}

	s.createdByThisRun = false
	logger.InfoKV(ctx, "Removed staging directory", "path", s.path)
}
