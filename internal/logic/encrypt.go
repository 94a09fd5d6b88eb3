package logic

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/idelchi/govault/internal/engine"
	"github.com/idelchi/govault/internal/filter"
)

// RunEncrypt encrypts the files matched by the configured patterns into the selected vault.
func RunEncrypt(ctx context.Context, s *Session) error {
	start := time.Now()
	log := s.batchLogger("encrypt")

	patterns, err := s.patterns()
	if err != nil {
		return err
	}

	if len(patterns) == 0 {
		return ErrNoPatterns
	}

	vault, err := s.Config.SelectedVault()
	if err != nil {
		return err
	}

	scanned, err := engine.Resolve(patterns, vault.Encrypted, log)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	flt, err := filter.New(s.Config.Exclude)
	if err != nil {
		return err
	}

	files, excluded := flt.Apply(scanned)

	if len(files) == 0 {
		fmt.Fprintln(s.Out, "No files to encrypt.")

		return nil
	}

	rep := s.newReporter("Encrypting", len(files))

	e, err := s.newEngine(vault, log, rep.sink)
	if err != nil {
		return err
	}

	log.WithField("files", len(files)).Debug("encrypting")

	results := e.EncryptFiles(ctx, files)

	rep.finish()

	st := newStats(len(scanned), excluded, results, start)

	if s.Config.Delete {
		st.deleted = s.deleteOriginals(results)
	}

	if s.Config.Stats {
		printStats(s.Err, st)
	}

	return s.summarize(log, "encrypted", results)
}

// deleteOriginals removes the plaintext of every successfully encrypted file.
func (s *Session) deleteOriginals(results []*engine.Result) int {
	deleted := 0

	for _, r := range results {
		if !r.Done {
			continue
		}

		if err := os.Remove(r.UnencryptedPath); err != nil {
			s.Logger.WithField("file", r.UnencryptedPath).WithError(err).Error("could not delete original")

			continue
		}

		deleted++

		if !s.Config.Quiet && !s.Config.Progress {
			fmt.Fprintf(s.Out, "Deleted %q\n", r.UnencryptedPath)
		}
	}

	return deleted
}
