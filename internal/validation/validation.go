// Package validation provides input validation for the CLI: path sanity,
// size limits, and extension checks. Limits guard against accidentally
// feeding the codec something that is clearly not a script container.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Size limits for codec inputs.
const (
	// MaxFileSize is the maximum allowed input size (64 MB). Script
	// containers are typically well under a megabyte.
	MaxFileSize = 64 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrEmptyPath   = errors.New("path cannot be empty")
	ErrPathTooLong = errors.New("path too long")
	ErrNotFound    = errors.New("file not found")
	ErrNotRegular  = errors.New("not a regular file")
	ErrTooLarge    = errors.New("file too large")
)

// ValidateInputFile checks that path names an existing regular file within
// the size limit.
func ValidateInputFile(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	if info.Size() > MaxFileSize {
		return fmt.Errorf("%w: %s (%d bytes)", ErrTooLarge, path, info.Size())
	}
	return nil
}

// EnsureOutputDir creates dir and any missing parents.
func EnsureOutputDir(dir string) error {
	if dir == "" {
		return nil
	}
	if len(dir) > MaxPathLength {
		return ErrPathTooLong
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return nil
}

// HasExtension reports whether path carries ext (case-insensitive,
// including the dot).
func HasExtension(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}
