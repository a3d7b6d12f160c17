package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the synchronizer settings for one staging directory.
type Config struct {
	// Backend is the opaque bag of connection parameters handed to the
	// content backend client. The synchronizer never inspects it.
	Backend map[string]string `yaml:"backend"`
	// Query is the backend-specific query string selecting the records to sync.
	Query string `yaml:"query"`
	// Directory is the staging directory name, relative to PublicRoot.
	Directory string `yaml:"directory"`
	// PublicRoot is the public-assets root the staging directory lives under.
	PublicRoot string `yaml:"public_root"`
	// Timeout is the duration for network operations (backend query and downloads).
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is the default filename for synchronizer settings.
	DefaultConfigFilename = "asset-sync-settings.yaml"

	// DefaultPublicRoot is the public-assets root used when none is configured.
	DefaultPublicRoot = "public"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 30 * time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errBackendRequired is returned when backend connection parameters are missing.
	errBackendRequired = errors.New("backend connection parameters must be provided")
	// errQueryRequired is returned when the query string is missing.
	errQueryRequired = errors.New("query must be provided")
	// errDirectoryRequired is returned when the staging directory name is missing.
	errDirectoryRequired = errors.New("directory must be provided")
	// errDirectoryNotLocal is returned when the staging directory name
	// is absolute or escapes the public-assets root.
	errDirectoryNotLocal = errors.New("directory must stay under the public root")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and fills defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if len(cfg.Backend) == 0 {
		return errBackendRequired
	}

	if cfg.Query == "" {
		return errQueryRequired
	}

	if cfg.Directory == "" {
		return errDirectoryRequired
	}

	// The staging directory must resolve inside the public root.
	if !filepath.IsLocal(cfg.Directory) {
		return fmt.Errorf("%s: %w", cfg.Directory, errDirectoryNotLocal)
	}

	if cfg.PublicRoot == "" {
		cfg.PublicRoot = DefaultPublicRoot
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return nil
}

// StagingPath returns the absolute-or-relative path of the staging directory.
func (c *Config) StagingPath() string {
	return filepath.Join(c.PublicRoot, c.Directory)
}
