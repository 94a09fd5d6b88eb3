// Package filter loads pattern lists and drops excluded files from a resolved worklist.
package filter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter drops paths matching any exclude pattern.
// A pattern without a separator is matched against the file name,
// any other pattern against the whole slash-separated path, leading slashes ignored.
type Filter struct {
	excludes []string
}

// New validates excludes and returns a Filter.
func New(excludes []string) (*Filter, error) {
	patterns := make([]string, 0, len(excludes))

	for _, p := range excludes {
		p = strings.TrimLeft(strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(p)), "./"), "/")
		if p == "" {
			continue
		}

		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}

		patterns = append(patterns, p)
	}

	return &Filter{excludes: patterns}, nil
}

// Excluded reports whether path matches an exclude pattern.
func (f *Filter) Excluded(path string) bool {
	slashed := strings.TrimLeft(filepath.ToSlash(path), "/")
	name := filepath.Base(path)

	for _, p := range f.excludes {
		subject := slashed
		if !strings.Contains(p, "/") {
			subject = name
		}

		if ok, _ := doublestar.Match(p, subject); ok {
			return true
		}
	}

	return false
}

// Apply returns the paths that are not excluded and how many were dropped.
func (f *Filter) Apply(paths []string) (kept []string, excluded int) {
	kept = make([]string, 0, len(paths))

	for _, path := range paths {
		if f.Excluded(path) {
			excluded++

			continue
		}

		kept = append(kept, path)
	}

	return kept, excluded
}
