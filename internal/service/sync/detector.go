package sync

import (
	"crypto"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	// Ensure SHA-1 is available for fingerprint comparison.
	_ "crypto/sha1"
)

// DefaultFingerprintFunction is used to hash local files during change detection.
// It must match the digest the backend stores in its fingerprint field.
const DefaultFingerprintFunction crypto.Hash = crypto.SHA1

var errHashUnavailable = errors.New("hash function unavailable")

// fileUnchanged reports whether the file at path already matches the expected
// hex fingerprint (case-sensitive). A missing file is simply "changed";
// read failures during hashing are returned to the caller.
func fileUnchanged(path, fingerprint string) (bool, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("open local file: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	if !DefaultFingerprintFunction.Available() {
		return false, fmt.Errorf("fingerprint calculation not possible: %w", errHashUnavailable)
	}

	hasher := DefaultFingerprintFunction.New()
	if _, err = io.Copy(hasher, file); err != nil {
		return false, fmt.Errorf("hash local file: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)) == fingerprint, nil
}
