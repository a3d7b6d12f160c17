package sync

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestStagingDirectory_CreateAndRemove removes a directory this run created.
func TestStagingDirectory_CreateAndRemove(t *testing.T) {
	t.Parallel()

	staging := &stagingDirectory{path: filepath.Join(t.TempDir(), "public", "downloads")}

	created, err := staging.ensureCreated(context.Background())
	require.NoError(t, err)
	require.True(t, created)
	require.True(t, staging.createdByThisRun)
	require.DirExists(t, staging.path)

	// Non-empty contents do not block removal.
	require.NoError(t, os.WriteFile(filepath.Join(staging.path, "a.png"), []byte("x"), 0o600))

	staging.removeIfCreated(context.Background())
	require.NoDirExists(t, staging.path)
}

// TestStagingDirectory_PreExistingSurvives leaves a pre-existing directory untouched.
func TestStagingDirectory_PreExistingSurvives(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "downloads")
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep.txt"), []byte("keep"), 0o600))

	staging := &stagingDirectory{path: path}

	created, err := staging.ensureCreated(context.Background())
	require.NoError(t, err)
	require.False(t, created)
	require.False(t, staging.createdByThisRun)

	staging.removeIfCreated(context.Background())
	require.DirExists(t, path)
	require.FileExists(t, filepath.Join(path, "keep.txt"))
}

// TestStagingDirectory_RemoveToleratesAbsence treats an already-removed directory as a no-op.
func TestStagingDirectory_RemoveToleratesAbsence(t *testing.T) {
	t.Parallel()

	staging := &stagingDirectory{path: filepath.Join(t.TempDir(), "downloads")}

	created, err := staging.ensureCreated(context.Background())
	require.NoError(t, err)
	require.True(t, created)

	require.NoError(t, os.RemoveAll(staging.path))

	// Must not fail even though the directory is already gone.
	staging.removeIfCreated(context.Background())
	require.NoDirExists(t, staging.path)
}
