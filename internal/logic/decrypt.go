package logic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/idelchi/govault/internal/config"
	"github.com/idelchi/govault/internal/engine"
	"github.com/idelchi/govault/internal/naming"
)

// RunDecrypt restores the encrypted files matching the configured patterns, all of them by default.
func RunDecrypt(ctx context.Context, s *Session) error {
	start := time.Now()
	log := s.batchLogger("decrypt")

	patterns := s.Config.Patterns
	if len(patterns) == 0 {
		patterns = []string{naming.Pattern}
	}

	vault, err := s.Config.SelectedVault()
	if err != nil {
		return err
	}

	files, err := engine.MatchEncrypted(vault.Encrypted, patterns)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	return s.decrypt(ctx, log, vault, files, start)
}

// RunFindAndDecrypt looks up the given original paths in the vault and restores the ones found.
func RunFindAndDecrypt(ctx context.Context, s *Session) error {
	start := time.Now()
	log := s.batchLogger("fd")

	if len(s.Config.Patterns) == 0 {
		return ErrNoPatterns
	}

	vault, err := s.Config.SelectedVault()
	if err != nil {
		return err
	}

	var files []string

	for _, path := range s.Config.Patterns {
		encrypted, found, err := locate(vault, path)
		if err != nil {
			return err
		}

		if !found {
			log.WithField("file", path).Warn("not found in vault")

			continue
		}

		files = append(files, encrypted)
	}

	if len(files) == 0 {
		return ErrNotFound
	}

	return s.decrypt(ctx, log, vault, files, start)
}

func (s *Session) decrypt(ctx context.Context, log logrus.FieldLogger, vault config.Vault, files []string, start time.Time) error {
	if len(files) == 0 {
		fmt.Fprintln(s.Out, "No files to decrypt.")

		return nil
	}

	rep := s.newReporter("Decrypting", len(files))

	e, err := s.newEngine(vault, log, rep.sink)
	if err != nil {
		return err
	}

	results := e.DecryptFiles(ctx, files)

	rep.finish()

	if s.Config.Stats {
		printStats(s.Err, newStats(len(files), 0, results, start))
	}

	return s.summarize(log, "decrypted", results)
}

// locate returns the encrypted file holding the original path, and whether it exists.
func locate(vault config.Vault, path string) (string, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, fmt.Errorf("resolving %q: %w", path, err)
	}

	encrypted := filepath.Join(vault.Encrypted, naming.NameForEncryptedFile(abs))

	info, err := os.Stat(encrypted)
	if err != nil || !info.Mode().IsRegular() {
		return encrypted, false, nil
	}

	return encrypted, true, nil
}
