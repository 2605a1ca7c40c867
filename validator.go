package querydesk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// validatePath checks that path names an existing regular file
func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return classifyOpenError(err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotAFile, path)
	}
	return nil
}

// classifyOpenError maps OS errors onto the package sentinels
func classifyOpenError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}
