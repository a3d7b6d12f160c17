package sync

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/oshokin/asset-sync/internal/backend"
	"github.com/oshokin/asset-sync/internal/config"
	"github.com/oshokin/asset-sync/internal/logger"
)

// serviceName is attached to every log line the synchronizer writes.
const serviceName = "asset-sync"

// Service synchronizes one staging directory with the content backend.
// Construct one Service per configured directory; each owns its own
// created-by-this-run state, so multiple instances stay independent.
type Service struct {
	cfg        *config.Config    // Validated synchronizer settings.
	fetcher    backend.Fetcher   // Record source; nil means construct the default client.
	mapRecord  MapperFunc        // Record-to-descriptor policy.
	httpClient *http.Client      // Transport for asset downloads.
	staging    *stagingDirectory // Staging directory lifecycle state.
	runID      string            // Correlation id of the current build run, renewed on build start.
}

// Option customizes a Service.
type Option func(*Service)

// WithFetcher replaces the default backend client with the provided fetcher.
func WithFetcher(f backend.Fetcher) Option {
	return func(s *Service) {
		s.fetcher = f
	}
}

// WithMapper replaces the default record mapping policy.
func WithMapper(m MapperFunc) Option {
	return func(s *Service) {
		s.mapRecord = m
	}
}

// WithHTTPClient replaces the download transport.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) {
		s.httpClient = c
	}
}

// New builds a synchronizer for the provided configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	s := &Service{
		cfg:        cfg,
		mapRecord:  DefaultMapper,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		staging:    &stagingDirectory{path: cfg.StagingPath()},
		runID:      uuid.NewString(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// OnBuildStart queries the backend and brings the staging directory up to
// date, one file at a time. A configuration or fetch failure aborts the hook;
// a file that fails to transfer is logged and the loop moves on.
func (s *Service) OnBuildStart(ctx context.Context) error {
	// A fresh correlation id per build run; build end reuses it until the next run.
	s.runID = uuid.NewString()
	ctx = s.logContext(ctx)

	fetcher := s.fetcher
	if fetcher == nil {
		client, err := backend.NewClient(s.cfg.Backend, s.cfg.Timeout)
		if err != nil {
			logger.ErrorKV(ctx, "Failed to construct backend client", "error", err)
			return fmt.Errorf("construct backend client: %w", err)
		}

		fetcher = client
	}

	records, err := fetcher.Fetch(ctx, s.cfg.Query)
	if err != nil {
		return fmt.Errorf("fetch records: %w", err)
	}

	if len(records) == 0 {
		logger.Info(ctx, "Backend returned no records, nothing to synchronize")
		return nil
	}

	descriptors := s.mapRecords(ctx, records)
	if len(descriptors) == 0 {
		logger.Info(ctx, "No records mapped to files, nothing to synchronize")
		return nil
	}

	// The directory is created once, before the first file, and the
	// created flag is kept for teardown on build end.
	if _, err = s.staging.ensureCreated(ctx); err != nil {
		return err
	}

	// Strictly sequential: one descriptor fully resolved before the next,
	// preserving backend order in the logs.
	for _, descriptor := range descriptors {
		s.syncFile(ctx, descriptor)
	}

	return nil
}

// OnBuildEnd removes the staging directory when this run created it.
// A directory that pre-existed the build survives untouched.
func (s *Service) OnBuildEnd(ctx context.Context) error {
	s.staging.removeIfCreated(s.logContext(ctx))
	return nil
}

// mapRecords runs every record through the mapping policy, dropping records
// the policy rejects and descriptors that fail validation.
func (s *Service) mapRecords(ctx context.Context, records []backend.Record) []*FileDescriptor {
	descriptors := make([]*FileDescriptor, 0, len(records))

	for _, record := range records {
		descriptor := s.mapRecord(record)
		if descriptor == nil {
			continue
		}

		if err := descriptor.validate(); err != nil {
			logger.ErrorKV(ctx, "Dropping unusable descriptor", "error", err)
			continue
		}

		descriptors = append(descriptors, descriptor)
	}

	return descriptors
}

// syncFile resolves one descriptor: skipped when the local copy matches the
// fingerprint, downloaded otherwise. Failures are confined to this file.
func (s *Service) syncFile(ctx context.Context, descriptor *FileDescriptor) {
	destination := filepath.Join(s.staging.path, descriptor.Filename)

	if descriptor.Fingerprint != "" {
		unchanged, err := fileUnchanged(destination, descriptor.Fingerprint)
		if err != nil {
			// Unreadable local copy counts as changed; the download overwrites it.
			logger.ErrorKV(ctx, "Failed to fingerprint local file",
				"file", descriptor.Filename, "error", err)
		}

		if unchanged {
			logger.InfoKV(ctx, "File is up to date, skipping download", "file", descriptor.Filename)
			return
		}
	}

	if err := downloadFile(ctx, s.httpClient, descriptor.URL, destination); err != nil {
		logger.ErrorKV(ctx, "Failed to download file",
			"file", descriptor.Filename, "url", descriptor.URL, "error", err)

		return
	}

	logger.InfoKV(ctx, "Downloaded file", "file", descriptor.Filename, "url", descriptor.URL)
}

// logContext names the logger and pins the run correlation id and directory.
func (s *Service) logContext(ctx context.Context) context.Context {
	ctx = logger.WithName(ctx, serviceName)
	ctx = logger.WithKV(ctx, "run_id", s.runID)

	return logger.WithKV(ctx, "directory", s.cfg.Directory)
}
