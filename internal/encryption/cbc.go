package encryption

import (
	"bufio"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// Encrypt writes a random IV followed by the CBC ciphertext of everything read from r.
func (c *Cipher) Encrypt(r io.Reader, w io.Writer) error {
	size := c.block.BlockSize()

	// Generate and write IV
	iv := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return fmt.Errorf("generating IV: %w", err)
	}

	if _, err := w.Write(iv); err != nil {
		return fmt.Errorf("writing IV: %w", err)
	}

	cbcMode := cipher.NewCBCEncrypter(c.block, iv)

	bufPtr := getBuffer()
	defer bufferPool.Put(bufPtr)

	buf := *bufPtr

	for {
		n, err := io.ReadFull(r, buf)

		switch {
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			// The buffer is a multiple of the block size, so padding always fits.
			padded := pkcs7Pad(buf[:n], size)
			cbcMode.CryptBlocks(padded, padded)

			if _, err := w.Write(padded); err != nil {
				return fmt.Errorf("writing final encrypted block: %w", err)
			}

			return nil
		case err != nil:
			return fmt.Errorf("reading input: %w", err)
		}

		cbcMode.CryptBlocks(buf, buf)

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing encrypted block: %w", err)
		}
	}
}

// Decrypt reads the IV from r and writes the plaintext of the remaining CBC ciphertext to w.
func (c *Cipher) Decrypt(r io.Reader, w io.Writer) error {
	size := c.block.BlockSize()

	// Read IV
	iv := make([]byte, size)
	if _, err := io.ReadFull(r, iv); err != nil {
		return fmt.Errorf("reading IV: %w", err)
	}

	cbcMode := cipher.NewCBCDecrypter(c.block, iv)
	bufReader := bufio.NewReaderSize(r, defaultBufferSize)

	bufPtr := getBuffer()
	defer bufferPool.Put(bufPtr)

	buf := *bufPtr

	for {
		n, err := io.ReadFull(bufReader, buf)

		var last bool

		switch {
		case errors.Is(err, io.EOF):
			// Nothing after the IV, or nothing after a chunk that did not look final.
			return ErrInvalidBlockSize
		case errors.Is(err, io.ErrUnexpectedEOF):
			last = true
		case err != nil:
			return fmt.Errorf("reading input: %w", err)
		default:
			_, peekErr := bufReader.Peek(1)
			last = errors.Is(peekErr, io.EOF)
		}

		chunk := buf[:n]
		if len(chunk)%size != 0 {
			return ErrInvalidBlockSize
		}

		cbcMode.CryptBlocks(chunk, chunk)

		if !last {
			if _, err := w.Write(chunk); err != nil {
				return fmt.Errorf("writing decrypted block: %w", err)
			}

			continue
		}

		// Remove padding from the last block
		unpadded, err := pkcs7Unpad(chunk, size)
		if err != nil {
			return fmt.Errorf("removing padding: %w", err)
		}

		if _, err := w.Write(unpadded); err != nil {
			return fmt.Errorf("writing final decrypted block: %w", err)
		}

		return nil
	}
}
