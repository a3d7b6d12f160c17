package sync

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/oshokin/asset-sync/internal/backend"
)

// FileDescriptor names one remote asset and its place in the staging directory.
type FileDescriptor struct {
	// URL is the remote location the asset is downloaded from.
	URL string
	// Filename is the flat file name inside the staging directory.
	Filename string
	// Fingerprint optionally carries the hex digest of the asset contents.
	// When empty the file is downloaded unconditionally.
	Fingerprint string
}

// MapperFunc turns one backend record into a descriptor, or nil to drop the
// record. Implementations must be pure: no I/O, no shared state. When two
// records map to the same filename, the later one in backend order wins.
type MapperFunc func(record backend.Record) *FileDescriptor

// Record keys consumed by DefaultMapper.
const (
	urlKey         = "url"
	assetIDKey     = "assetId"
	extensionKey   = "extension"
	fingerprintKey = "sha1hash"
)

var (
	errEmptyURL         = errors.New("descriptor has no url")
	errEmptyFilename    = errors.New("descriptor has no filename")
	errFilenameNotLocal = errors.New("filename escapes the staging directory")
)

// DefaultMapper maps records carrying a url, an asset id and a file extension
// to `<assetId>.<extension>`, passing the fingerprint through when present.
// Records missing any of the three are dropped.
func DefaultMapper(record backend.Record) *FileDescriptor {
	var (
		fileURL   = record.String(urlKey)
		assetID   = record.String(assetIDKey)
		extension = record.String(extensionKey)
	)

	if fileURL == "" || assetID == "" || extension == "" {
		return nil
	}

	return &FileDescriptor{
		URL:         fileURL,
		Filename:    assetID + "." + extension,
		Fingerprint: record.String(fingerprintKey),
	}
}

// validate rejects descriptors that cannot be written safely into the
// staging directory. Filenames must resolve inside it.
func (d *FileDescriptor) validate() error {
	if d.URL == "" {
		return errEmptyURL
	}

	if d.Filename == "" {
		return errEmptyFilename
	}

	if !filepath.IsLocal(d.Filename) {
		return fmt.Errorf("%s: %w", d.Filename, errFilenameNotLocal)
	}

	return nil
}
