package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des" //nolint:gosec // DES is kept for parity with existing vaults
	"fmt"
	"strings"

	"golang.org/x/crypto/blowfish" //nolint:staticcheck // selectable legacy algorithm
)

// Algorithm selects the block cipher.
type Algorithm string

const (
	// AES is the default algorithm; keys must be 16, 24 or 32 bytes.
	AES Algorithm = "aes"
	// DES requires 8-byte keys.
	DES Algorithm = "des"
	// TripleDES requires 24-byte keys.
	TripleDES Algorithm = "3des"
	// Blowfish accepts keys from 1 to 56 bytes.
	Blowfish Algorithm = "blowfish"
)

// Algorithms lists the supported algorithms.
func Algorithms() []Algorithm {
	return []Algorithm{AES, DES, TripleDES, Blowfish}
}

// ParseAlgorithm returns the algorithm named s. An empty string selects AES.
func ParseAlgorithm(s string) (Algorithm, error) {
	if s == "" {
		return AES, nil
	}

	for _, a := range Algorithms() {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}

	return "", fmt.Errorf("%w: algorithm %q", ErrUnsupported, s)
}

func (a Algorithm) newBlock(key []byte) (cipher.Block, error) {
	switch a {
	case AES, "":
		return aes.NewCipher(key)
	case DES:
		return des.NewCipher(key)
	case TripleDES:
		return des.NewTripleDESCipher(key)
	case Blowfish:
		block, err := blowfish.NewCipher(key)
		if err != nil {
			return nil, err
		}

		return block, nil
	default:
		return nil, fmt.Errorf("%w: algorithm %q", ErrUnsupported, a)
	}
}

// Mode is the block cipher mode of operation.
type Mode byte

const (
	// ModeCBC represents Cipher Block Chaining mode.
	ModeCBC Mode = iota
)

// Padding is the block padding scheme.
type Padding byte

const (
	// PaddingPKCS7 pads with n bytes of value n.
	PaddingPKCS7 Padding = iota
)
