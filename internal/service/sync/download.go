package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

var errBadHTTPStatus = errors.New("unexpected http status")

// downloadFile streams the response body of a GET against fileURL into
// destination, overwriting any existing file there. The operation is done
// when the file is flushed and closed; any transport or write error fails it.
func downloadFile(ctx context.Context, client *http.Client, fileURL, destination string) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	response, err := client.Do(request)
	if err != nil {
		return fmt.Errorf("download %s: %w", fileURL, err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%s, %s: %w", fileURL, response.Status, errBadHTTPStatus)
	}

	output, err := os.Create(filepath.Clean(destination))
	if err != nil {
		return fmt.Errorf("create %s: %w", destination, err)
	}

	if _, err = io.Copy(output, response.Body); err != nil {
		_ = output.Close()

		return fmt.Errorf("write %s: %w", destination, err)
	}

	if err = output.Close(); err != nil {
		return fmt.Errorf("flush %s: %w", destination, err)
	}

	return nil
}
