// Package logic implements the commands of govault on top of the engine and tree packages.
package logic

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/idelchi/govault/internal/config"
	"github.com/idelchi/govault/internal/encryption"
	"github.com/idelchi/govault/internal/engine"
	"github.com/idelchi/govault/internal/filter"
	"github.com/idelchi/govault/internal/key"
)

var (
	// ErrIncomplete is returned when at least one file of a batch failed.
	ErrIncomplete = errors.New("some files failed")
	// ErrNoPatterns is returned when a command needs patterns and got none.
	ErrNoPatterns = errors.New("no files or patterns given")
	// ErrNotFound is returned by find-and-decrypt when none of the paths are in the vault.
	ErrNotFound = errors.New("not found in vault")
)

// Session carries everything a command needs besides the configuration.
type Session struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Out      io.Writer
	Err      io.Writer
	Prompter key.Prompter
}

// batchLogger tags the records of one batch with a correlation id.
func (s *Session) batchLogger(command string) *logrus.Entry {
	return s.Logger.WithFields(logrus.Fields{
		"batch":   uuid.NewString(),
		"command": command,
	})
}

// newEngine evaluates the key and builds an engine for vault.
func (s *Session) newEngine(vault config.Vault, log logrus.FieldLogger, sink engine.Sink) (*engine.Engine, error) {
	cfg := s.Config

	algorithm, err := encryption.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	input, err := key.Evaluate(key.Source{
		Key:     cfg.Key,
		File:    cfg.ResolveFile(cfg.KeyFile),
		Seed:    cfg.KeyInput,
		Machine: cfg.Machine,
	}, s.Prompter)
	if err != nil {
		return nil, fmt.Errorf("evaluating key: %w", err)
	}

	e, err := engine.New(vault, key.Generate(input),
		engine.WithAlgorithm(algorithm),
		engine.WithParallel(cfg.Parallel),
		engine.WithSink(sink),
		engine.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	return e, nil
}

// patterns merges positional patterns with the ones loaded from --from.
func (s *Session) patterns() ([]string, error) {
	patterns := append([]string{}, s.Config.Patterns...)

	if s.Config.From != "" {
		loaded, err := filter.LoadPatterns(s.Config.From)
		if err != nil {
			return nil, fmt.Errorf("loading patterns: %w", err)
		}

		patterns = append(patterns, loaded...)
	}

	return patterns, nil
}

// summarize prints the outcome line, logs every failure and returns ErrIncomplete when needed.
func (s *Session) summarize(log logrus.FieldLogger, verb string, results []*engine.Result) error {
	done, failed := engine.Count(results)

	fmt.Fprintf(s.Out, "%d of %d files %s successfully.\n", done, len(results), verb)

	for _, r := range results {
		if r.Err == nil {
			continue
		}

		log.WithFields(logrus.Fields{
			"file":      r.UnencryptedPath,
			"encrypted": r.EncryptedPath,
		}).WithError(r.Err).Error("file failed")
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrIncomplete, failed, len(results))
	}

	return nil
}

type stats struct {
	scanned   int
	excluded  int
	processed int
	errored   int
	deleted   int
	size      int64
	duration  time.Duration
}

func newStats(scanned, excluded int, results []*engine.Result, start time.Time) stats {
	done, failed := engine.Count(results)

	return stats{
		scanned:   scanned,
		excluded:  excluded,
		processed: done,
		errored:   failed,
		size:      engine.TotalSize(results),
		duration:  time.Since(start),
	}
}

func printStats(w io.Writer, st stats) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Scanned:   %d\n", st.scanned)
	fmt.Fprintf(w, "  Excluded:  %d\n", st.excluded)
	fmt.Fprintf(w, "  Processed: %d\n", st.processed)
	fmt.Fprintf(w, "  Errors:    %d\n", st.errored)

	if st.deleted > 0 {
		fmt.Fprintf(w, "  Deleted:   %d\n", st.deleted)
	}

	//nolint:gosec // size is always non-negative (sum of file sizes)
	fmt.Fprintf(w, "  Size:      %s\n", humanize.IBytes(uint64(max(0, st.size))))
	fmt.Fprintf(w, "  Duration:  %s\n", st.duration.Round(time.Millisecond))
}
