// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover finds the input documents for a batch run.
package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSuffix is the file name suffix matched when Options.Suffix is empty.
const DefaultSuffix = ".pdf"

// ErrInputDir is wrapped by every error caused by the input directory itself
// (missing, not a directory, unreadable). Callers treat it as a configuration
// error and abort before processing any file.
var ErrInputDir = errors.New("input directory unusable")

// Options controls which directory entries Discover returns.
type Options struct {
	// Suffix is the literal name suffix to match (default ".pdf").
	Suffix string

	// IgnoreCase matches the suffix case-insensitively, so "BOOK.PDF"
	// matches ".pdf". Off by default.
	IgnoreCase bool
}

// Discover lists the files directly inside dir whose names end with the
// configured suffix. Subdirectories and hidden files (names starting with
// ".", such as macOS "._book.pdf" sidecars) are skipped. The returned paths
// are joined with dir and sorted by file name.
func Discover(dir string, opts Options) ([]string, error) {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInputDir, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInputDir, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrInputDir, dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !Matches(entry.Name(), suffix, opts.IgnoreCase) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// Matches reports whether name ends with suffix.
func Matches(name, suffix string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.HasSuffix(strings.ToLower(name), strings.ToLower(suffix))
	}
	return strings.HasSuffix(name, suffix)
}
