package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
)

// Resolve expands encryption patterns into a flat list of absolute file paths.
// A folder yields its files recursively, a file yields itself, anything else is a glob
// whose last element is matched against file names below its folder.
// A pattern whose folder does not exist matches nothing.
// Files inside the vault's encrypted folder are never matched.
func (e *Engine) Resolve(patterns []string) ([]string, error) {
	return Resolve(patterns, e.vault.Encrypted, e.logger)
}

// Resolve is the engine-independent form of Engine.Resolve.
// Files below skip are left out, an empty skip leaves out nothing. Warnings go to logger.
func Resolve(patterns []string, skip string, logger logrus.FieldLogger) ([]string, error) {
	r := resolver{logger: logger}

	if skip != "" {
		abs, err := filepath.Abs(skip)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", skip, err)
		}

		r.skip = abs
	}

	var (
		paths []string
		seen  = make(map[string]struct{})
	)

	for _, pattern := range patterns {
		matches, err := r.expand(pattern)
		if err != nil {
			return nil, err
		}

		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}

			seen[match] = struct{}{}
			paths = append(paths, match)
		}
	}

	return paths, nil
}

type resolver struct {
	skip   string
	logger logrus.FieldLogger
}

// skipped reports whether path is the skipped folder or lies below it.
func (r resolver) skipped(path string) bool {
	if r.skip == "" {
		return false
	}

	rel, err := filepath.Rel(r.skip, path)

	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (r resolver) expand(pattern string) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: %q", ErrDegeneratePattern, pattern)
	}

	abs, err := filepath.Abs(pattern)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", pattern, err)
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return r.walk(abs, "")
	case err == nil:
		if r.skipped(abs) {
			r.logger.WithField("file", abs).Warn("skipped, file is inside the encrypted folder")

			return nil, nil
		}

		return []string{abs}, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("inspecting %q: %w", pattern, err)
	}

	dir, name := filepath.Dir(abs), filepath.Base(abs)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: %q", ErrDegeneratePattern, pattern)
	}

	if !doublestar.ValidatePattern(name) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		r.logger.WithField("pattern", pattern).Warnf("folder %q does not exist, nothing matched", dir)

		return nil, nil
	}

	return r.walk(dir, name)
}

// walk lists the regular files below root whose name matches glob. An empty glob matches all.
func (r resolver) walk(root, glob string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() && r.skipped(path) {
			r.logger.WithField("folder", path).Warn("skipped, encrypted folder of the vault")

			return filepath.SkipDir
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if glob != "" {
			if ok, _ := doublestar.Match(glob, d.Name()); !ok {
				return nil
			}
		}

		paths = append(paths, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", root, err)
	}

	return paths, nil
}

// ResolveEncrypted lists the encrypted files whose name matches any of patterns.
// Only the last element of a pattern is used.
func (e *Engine) ResolveEncrypted(patterns []string) ([]string, error) {
	return MatchEncrypted(e.vault.Encrypted, patterns)
}

// MatchEncrypted lists the regular files directly inside dir whose name matches any of patterns.
func MatchEncrypted(dir string, patterns []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading encrypted folder: %w", err)
	}

	var (
		paths []string
		seen  = make(map[string]struct{})
	)

	for _, pattern := range patterns {
		pattern = filepath.Base(strings.TrimSpace(pattern))
		if pattern == "" || pattern == "." || pattern == string(filepath.Separator) {
			return nil, fmt.Errorf("%w: %q", ErrDegeneratePattern, pattern)
		}

		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}

			if ok, _ := doublestar.Match(pattern, entry.Name()); !ok {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if _, ok := seen[path]; ok {
				continue
			}

			seen[path] = struct{}{}
			paths = append(paths, path)
		}
	}

	return paths, nil
}
