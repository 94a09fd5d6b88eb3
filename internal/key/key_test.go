package key_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/idelchi/govault/internal/key"
)

func TestGenerateSeed(t *testing.T) {
	t.Parallel()

	const want = "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b"

	got := key.Generate(key.Input{Seed: "secret"})

	if len(got) != key.Size {
		t.Fatalf("len(Generate) = %d, want %d", len(got), key.Size)
	}

	if hex.EncodeToString(got) != want {
		t.Errorf("Generate(secret) = %x, want %s", got, want)
	}

	if again := key.Generate(key.Input{Seed: "secret"}); !bytes.Equal(got, again) {
		t.Errorf("Generate is not deterministic: %x != %x", got, again)
	}
}

func TestGenerateRawKeyBypassesHash(t *testing.T) {
	t.Parallel()

	raw := []byte{1, 2, 3, 4, 5}

	got := key.Generate(key.Input{Key: raw, Seed: "ignored"})

	if !bytes.Equal(got, raw) {
		t.Errorf("Generate(raw) = %x, want %x", got, raw)
	}
}

type fakePrompter struct {
	answer string
	err    error
	called bool
}

func (f *fakePrompter) Prompt(string) (string, error) {
	f.called = true

	return f.answer, f.err
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "vault.key")

	if err := os.WriteFile(keyFile, []byte("0123456789abcdef"), 0o600); err != nil {
		t.Fatal(err)
	}

	emptyFile := filepath.Join(dir, "empty.key")

	if err := os.WriteFile(emptyFile, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		src      key.Source
		prompter *fakePrompter
		wantKey  []byte
		wantSeed string
		wantErr  error
		anyErr   bool
	}{
		{
			name:    "base64 key",
			src:     key.Source{Key: "AQIDBA==", Seed: "ignored"},
			wantKey: []byte{1, 2, 3, 4},
		},
		{
			name:   "invalid base64 key",
			src:    key.Source{Key: "not base64!"},
			anyErr: true,
		},
		{
			name:    "key file",
			src:     key.Source{File: keyFile, Seed: "ignored"},
			wantKey: []byte("0123456789abcdef"),
		},
		{
			name:   "missing key file",
			src:    key.Source{File: filepath.Join(dir, "missing")},
			anyErr: true,
		},
		{
			name:   "empty key file",
			src:    key.Source{File: emptyFile},
			anyErr: true,
		},
		{
			name:     "seed",
			src:      key.Source{Seed: "correct horse"},
			wantSeed: "correct horse",
		},
		{
			name:     "prompt",
			prompter: &fakePrompter{answer: "typed"},
			wantSeed: "typed",
		},
		{
			name:     "prompt blank",
			prompter: &fakePrompter{answer: "   "},
			wantErr:  key.ErrCancelled,
		},
		{
			name:     "prompt error",
			prompter: &fakePrompter{err: key.ErrNotTerminal},
			wantErr:  key.ErrNotTerminal,
		},
		{
			name:    "no source",
			wantErr: key.ErrNoSource,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var prompter key.Prompter
			if tc.prompter != nil {
				prompter = tc.prompter
			}

			got, err := key.Evaluate(tc.src, prompter)

			switch {
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Evaluate() error = %v, want %v", err, tc.wantErr)
				}

				return
			case tc.anyErr:
				if err == nil {
					t.Fatal("Evaluate() expected error, got nil")
				}

				return
			case err != nil:
				t.Fatalf("Evaluate() unexpected error: %v", err)
			}

			if !bytes.Equal(got.Key, tc.wantKey) {
				t.Errorf("Key = %x, want %x", got.Key, tc.wantKey)
			}

			if got.Seed != tc.wantSeed {
				t.Errorf("Seed = %q, want %q", got.Seed, tc.wantSeed)
			}
		})
	}
}

func TestEvaluateDoesNotPromptWhenSourceSet(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{answer: "typed"}

	if _, err := key.Evaluate(key.Source{Seed: "given"}, prompter); err != nil {
		t.Fatal(err)
	}

	if prompter.called {
		t.Error("prompter was called although a seed was provided")
	}
}

func TestNewRandom(t *testing.T) {
	t.Parallel()

	first, err := key.NewRandom(32)
	if err != nil {
		t.Fatal(err)
	}

	second, err := key.NewRandom(32)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != 32 {
		t.Errorf("len = %d, want 32", len(first))
	}

	if bytes.Equal(first, second) {
		t.Error("two random keys are equal")
	}

	if _, err := key.NewRandom(0); err == nil {
		t.Error("NewRandom(0) expected error")
	}

	decoded, err := key.Evaluate(key.Source{Key: key.Encode(first)}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(decoded.Key, first) {
		t.Error("Encode output does not round-trip through Evaluate")
	}
}
