package logic

import (
	"errors"
	"fmt"

	"github.com/idelchi/govault/internal/engine"
	"github.com/idelchi/govault/internal/filter"
)

// RunCheck reports how many files every encrypt and exclude pattern matches,
// failing when one of them matches nothing. No key is needed and nothing is written.
func RunCheck(s *Session) error {
	patterns, err := s.patterns()
	if err != nil {
		return err
	}

	if len(patterns) == 0 && len(s.Config.Exclude) == 0 {
		return errors.New("no patterns to check")
	}

	log := s.batchLogger("check")

	// Without a usable vault nothing is skipped.
	var skip string
	if vault, err := s.Config.SelectedVault(); err == nil {
		skip = vault.Encrypted
	}

	var (
		failures int
		all      []string
	)

	for _, pattern := range patterns {
		files, err := engine.Resolve([]string{pattern}, skip, log)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", pattern, err)
		}

		all = append(all, files...)
		failures += s.reportMatches("encrypt", pattern, len(files))
	}

	for _, pattern := range s.Config.Exclude {
		flt, err := filter.New([]string{pattern})
		if err != nil {
			return err
		}

		_, excluded := flt.Apply(all)
		failures += s.reportMatches("exclude", pattern, excluded)
	}

	if failures > 0 {
		return fmt.Errorf("%d pattern(s) matched no files", failures)
	}

	return nil
}

func (s *Session) reportMatches(kind, pattern string, matches int) int {
	if matches == 0 {
		fmt.Fprintf(s.Err, "%s pattern %q matched no files\n", kind, pattern)

		return 1
	}

	if !s.Config.Quiet {
		fmt.Fprintf(s.Out, "%s pattern %q: %d file(s)\n", kind, pattern, matches)
	}

	return 0
}
