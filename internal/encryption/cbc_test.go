package encryption_test

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/idelchi/govault/internal/encryption"
)

func mustCipher(t *testing.T, algorithm encryption.Algorithm, keySize int) *encryption.Cipher {
	t.Helper()

	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		t.Fatal(err)
	}

	params := encryption.DefaultParameters(key)
	params.Algorithm = algorithm

	c, err := encryption.NewCipher(params)
	if err != nil {
		t.Fatalf("NewCipher(%s): %v", algorithm, err)
	}

	return c
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	algorithms := []struct {
		algorithm encryption.Algorithm
		keySize   int
	}{
		{encryption.AES, 32},
		{encryption.AES, 16},
		{encryption.DES, 8},
		{encryption.TripleDES, 24},
		{encryption.Blowfish, 32},
	}

	sizes := []int{0, 1, 7, 8, 15, 16, 17, 4096, 32*1024 - 1, 32 * 1024, 32*1024 + 5, 100_000}

	for _, alg := range algorithms {
		c := mustCipher(t, alg.algorithm, alg.keySize)

		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s-%d/%d", alg.algorithm, alg.keySize, size), func(t *testing.T) {
				t.Parallel()

				plaintext := make([]byte, size)
				if _, err := io.ReadFull(rand.Reader, plaintext); err != nil {
					t.Fatal(err)
				}

				encrypted, err := c.EncryptBytes(plaintext)
				if err != nil {
					t.Fatalf("EncryptBytes: %v", err)
				}

				blockSize := c.BlockSize()
				wantLen := blockSize + (size/blockSize+1)*blockSize

				if len(encrypted) != wantLen {
					t.Errorf("ciphertext length = %d, want %d", len(encrypted), wantLen)
				}

				decrypted, err := c.DecryptBytes(encrypted)
				if err != nil {
					t.Fatalf("DecryptBytes: %v", err)
				}

				if !bytes.Equal(decrypted, plaintext) {
					t.Errorf("round trip mismatch for %d bytes", size)
				}
			})
		}
	}
}

func TestEncryptUsesRandomIV(t *testing.T) {
	t.Parallel()

	c := mustCipher(t, encryption.AES, 32)
	plaintext := []byte("same input, different output")

	first, err := c.EncryptBytes(plaintext)
	if err != nil {
		t.Fatal(err)
	}

	second, err := c.EncryptBytes(plaintext)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(first[:c.BlockSize()], second[:c.BlockSize()]) {
		t.Error("two encryptions share the same IV")
	}

	if bytes.Equal(first, second) {
		t.Error("two encryptions produced identical ciphertext")
	}
}

func TestDecryptErrors(t *testing.T) {
	t.Parallel()

	c := mustCipher(t, encryption.AES, 32)

	valid, err := c.EncryptBytes([]byte("some plaintext that spans blocks"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "short iv", data: valid[:5]},
		{name: "iv only", data: valid[:16], want: encryption.ErrInvalidBlockSize},
		{name: "misaligned", data: valid[:len(valid)-3], want: encryption.ErrInvalidBlockSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := c.DecryptBytes(tc.data)
			if err == nil {
				t.Fatal("DecryptBytes() expected error, got nil")
			}

			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("DecryptBytes() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNewCipherErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params encryption.Parameters
	}{
		{name: "aes bad key size", params: encryption.DefaultParameters(make([]byte, 5))},
		{name: "des bad key size", params: encryption.Parameters{Algorithm: encryption.DES, Key: make([]byte, 32)}},
		{name: "unknown algorithm", params: encryption.Parameters{Algorithm: "rc2", Key: make([]byte, 16)}},
		{name: "unknown mode", params: encryption.Parameters{Algorithm: encryption.AES, Mode: 7, Key: make([]byte, 16)}},
		{name: "unknown padding", params: encryption.Parameters{Algorithm: encryption.AES, Padding: 7, Key: make([]byte, 16)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := encryption.NewCipher(tc.params); err == nil {
				t.Error("NewCipher() expected error, got nil")
			}
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    encryption.Algorithm
		wantErr bool
	}{
		{in: "", want: encryption.AES},
		{in: "AES", want: encryption.AES},
		{in: "3des", want: encryption.TripleDES},
		{in: "Blowfish", want: encryption.Blowfish},
		{in: "rc2", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			got, err := encryption.ParseAlgorithm(tc.in)
			if tc.wantErr {
				if !errors.Is(err, encryption.ErrUnsupported) {
					t.Errorf("ParseAlgorithm(%q) error = %v, want ErrUnsupported", tc.in, err)
				}

				return
			}

			if err != nil || got != tc.want {
				t.Errorf("ParseAlgorithm(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
			}
		})
	}
}
