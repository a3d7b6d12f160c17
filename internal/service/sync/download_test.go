package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDownloadFile_WritesAndOverwrites streams the body to disk, replacing any existing file.
func TestDownloadFile_WritesAndOverwrites(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("fresh-bytes"))
	}))
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(destination, []byte("old and much longer contents"), 0o600))

	require.NoError(t, downloadFile(context.Background(), server.Client(), server.URL, destination))

	contents, err := os.ReadFile(destination)
	require.NoError(t, err)
	require.Equal(t, []byte("fresh-bytes"), contents)
}

// TestDownloadFile_BadStatus fails the operation without touching the destination.
func TestDownloadFile_BadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "a.png")

	err := downloadFile(context.Background(), server.Client(), server.URL, destination)
	require.ErrorIs(t, err, errBadHTTPStatus)
	require.NoFileExists(t, destination)
}
