package tempfile

import (
	"fmt"
	"os"

	"github.com/adarchive/adlib-gateway/pkg/logger"
)

// WithFile creates a temporary file matching pattern, closes it, and calls
// fn with its path. The file is removed on every exit path, including a
// panic inside fn, so no request can leak an on-disk artifact.
func WithFile(pattern string, fn func(path string) error) error {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return fmt.Errorf("tempfile: create: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("tempfile: close: %w", err)
	}

	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.WithScope("tempfile").Warn().
				Err(err).
				Str("path", path).
				Msg("Failed to remove temporary file")
		}
	}()

	return fn(path)
}
