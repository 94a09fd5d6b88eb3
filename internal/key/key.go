// Package key turns key input into symmetric key material.
//
// A key input is either raw key bytes, used verbatim, or a seed string
// (a passphrase or a derived identity string) which is hashed with SHA-256.
package key

import (
	"crypto/sha256"
)

// Size is the length in bytes of a key derived from a seed.
const Size = sha256.Size

// Input is the source material for a symmetric key.
// Exactly one of Key or Seed is expected to be set.
type Input struct {
	// Key is raw key material, returned unchanged by Generate.
	Key []byte

	// Seed is hashed into a key when Key is nil.
	Seed string
}

// Generate returns input.Key unmodified if present,
// otherwise the SHA-256 digest of the UTF-8 seed.
func Generate(input Input) []byte {
	if input.Key != nil {
		return input.Key
	}

	sum := sha256.Sum256([]byte(input.Seed))

	return sum[:]
}
