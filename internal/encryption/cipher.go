package encryption

import (
	"bytes"
	"crypto/cipher"
	"fmt"
)

// Parameters configures a Cipher. One set of parameters is used for a whole session.
type Parameters struct {
	Algorithm Algorithm
	Mode      Mode
	Padding   Padding
	Key       []byte
}

// DefaultParameters returns AES-CBC with PKCS#7 padding for key.
func DefaultParameters(key []byte) Parameters {
	return Parameters{
		Algorithm: AES,
		Mode:      ModeCBC,
		Padding:   PaddingPKCS7,
		Key:       key,
	}
}

// Cipher encrypts and decrypts streams. It is safe for concurrent use.
type Cipher struct {
	block     cipher.Block
	algorithm Algorithm
}

// NewCipher validates params and prepares the block cipher.
func NewCipher(params Parameters) (*Cipher, error) {
	if params.Mode != ModeCBC {
		return nil, fmt.Errorf("%w: mode %d", ErrUnsupported, params.Mode)
	}

	if params.Padding != PaddingPKCS7 {
		return nil, fmt.Errorf("%w: padding %d", ErrUnsupported, params.Padding)
	}

	block, err := params.Algorithm.newBlock(params.Key)
	if err != nil {
		return nil, fmt.Errorf("creating %s cipher: %w", params.Algorithm, err)
	}

	return &Cipher{block: block, algorithm: params.Algorithm}, nil
}

// BlockSize is the IV length and the ciphertext alignment.
func (c *Cipher) BlockSize() int {
	return c.block.BlockSize()
}

// EncryptBytes encrypts data in memory.
func (c *Cipher) EncryptBytes(data []byte) ([]byte, error) {
	var out bytes.Buffer

	if err := c.Encrypt(bytes.NewReader(data), &out); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// DecryptBytes decrypts data in memory.
func (c *Cipher) DecryptBytes(data []byte) ([]byte, error) {
	var out bytes.Buffer

	if err := c.Decrypt(bytes.NewReader(data), &out); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
