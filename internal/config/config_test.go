package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields and default filling for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing backend parameters.
	cfg := new(Config)

	err := Validate(cfg)
	require.Error(t, err)

	// Missing query.
	cfg = &Config{
		Backend: map[string]string{"endpoint": "https://cms.local/records"},
	}

	err = Validate(cfg)
	require.Error(t, err)

	// Directory escaping the public root.
	cfg = &Config{
		Backend:   map[string]string{"endpoint": "https://cms.local/records"},
		Query:     "type:asset",
		Directory: "../outside",
	}

	err = Validate(cfg)
	require.Error(t, err)

	// Okay, defaults filled in.
	cfg = &Config{
		Backend:   map[string]string{"endpoint": "https://cms.local/records"},
		Query:     "type:asset",
		Directory: "downloads",
	}

	err = Validate(cfg)
	require.NoError(t, err)
	require.Equal(t, DefaultPublicRoot, cfg.PublicRoot)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, filepath.Join("public", "downloads"), cfg.StagingPath())
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		Backend: map[string]string{
			"endpoint": "https://cms.local/records",
			"token":    "secret",
		},
		Query:     "type:asset",
		Directory: "downloads",
		Timeout:   10 * time.Second,
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Backend, loaded.Backend)
	require.Equal(t, cfg.Query, loaded.Query)
	require.Equal(t, cfg.Directory, loaded.Directory)
	require.Equal(t, cfg.Timeout, loaded.Timeout)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}
