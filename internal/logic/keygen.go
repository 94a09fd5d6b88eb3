package logic

import (
	"fmt"
	"os"

	"github.com/idelchi/govault/internal/fileutil"
	"github.com/idelchi/govault/internal/key"
)

// DefaultKeySize is the size of generated keys, fitting AES-256.
const DefaultKeySize = key.Size

// RunKeygen prints a random Base64 key, or writes the raw bytes to --out for use with --key-file.
func RunKeygen(s *Session) error {
	size := s.Config.Size
	if size == 0 {
		size = DefaultKeySize
	}

	raw, err := key.NewRandom(size)
	if err != nil {
		return err
	}

	if s.Config.Out == "" {
		fmt.Fprintln(s.Out, key.Encode(raw))

		return nil
	}

	if err := os.WriteFile(s.Config.Out, raw, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}

	if !s.Config.Quiet {
		fmt.Fprintf(s.Out, "Wrote %d-byte key to %q\n", size, s.Config.Out)
	}

	return nil
}
