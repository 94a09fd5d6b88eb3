package key

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/denisbrodbeck/machineid"
)

// machineAppID scopes the machine identity so it is not the raw machine id.
const machineAppID = "govault"

var (
	// ErrCancelled is returned when the user aborts the key input prompt.
	ErrCancelled = errors.New("key input cancelled")
	// ErrNoSource is returned when no key source is configured and prompting is not possible.
	ErrNoSource = errors.New("no key, key file or key input provided")
)

// Source describes where the key input comes from.
// The fields are evaluated in declaration order; the first non-empty one wins.
type Source struct {
	// Key is a Base64 encoded raw key.
	Key string
	// File is a path to a file holding the raw key bytes.
	File string
	// Seed is a free-form string hashed into the key.
	Seed string
	// Machine uses an identity string bound to the current machine as the seed.
	Machine bool
}

// Prompter asks the user for a seed string.
type Prompter interface {
	Prompt(label string) (string, error)
}

// Evaluate resolves src into an Input, falling back to prompter when no source is set.
// A nil prompter disables prompting.
func Evaluate(src Source, prompter Prompter) (Input, error) {
	switch {
	case src.Key != "":
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(src.Key))
		if err != nil {
			return Input{}, fmt.Errorf("invalid format for Base64 key: %w", err)
		}

		return Input{Key: raw}, nil
	case src.File != "":
		raw, err := os.ReadFile(filepath.Clean(src.File))
		if err != nil {
			return Input{}, fmt.Errorf("reading key file %q: %w", src.File, err)
		}

		if len(raw) == 0 {
			return Input{}, fmt.Errorf("key file %q is empty", src.File)
		}

		return Input{Key: raw}, nil
	case src.Seed != "":
		return Input{Seed: src.Seed}, nil
	case src.Machine:
		id, err := machineid.ProtectedID(machineAppID)
		if err != nil {
			return Input{}, fmt.Errorf("reading machine id: %w", err)
		}

		return Input{Seed: id}, nil
	}

	if prompter == nil {
		return Input{}, ErrNoSource
	}

	seed, err := prompter.Prompt("Key Input")
	if err != nil {
		return Input{}, err
	}

	if strings.TrimSpace(seed) == "" {
		return Input{}, ErrCancelled
	}

	return Input{Seed: seed}, nil
}
