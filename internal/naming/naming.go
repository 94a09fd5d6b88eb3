// Package naming maps original file paths to obfuscated storage names and
// embeds the original path as a header at the start of every encrypted file.
//
// Header layout:
//
//	[4-byte little-endian length][ASCII Base64 of the UTF-8 path, length bytes]
package naming

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Extension is appended to every storage name.
	Extension = ".vault"
	// Pattern matches every encrypted file in a store.
	Pattern = "*" + Extension

	lengthSize = 4
	// maxHeaderSize bounds the length prefix so a corrupt file cannot force a huge allocation.
	maxHeaderSize = 1 << 20
)

// ErrInvalidHeader is wrapped by every header decoding failure.
var ErrInvalidHeader = errors.New("invalid file name header")

// NameForEncryptedFile returns the storage name for path.
// The path is lower-cased first, so names are case-insensitive.
func NameForEncryptedFile(path string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(path)))

	return strings.ToUpper(hex.EncodeToString(sum[:])) + Extension
}

// WriteHeader writes the encoded original path to w.
func WriteHeader(path string, w io.Writer) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(path))

	header := make([]byte, lengthSize+len(encoded))
	binary.LittleEndian.PutUint32(header, uint32(len(encoded))) //nolint:gosec // bounded by path length
	copy(header[lengthSize:], encoded)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	return nil
}

// ReadHeader reads and decodes the original path from r.
// r must be positioned at the start of the encrypted file.
func ReadHeader(r io.Reader) (string, error) {
	var length int32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return "", fmt.Errorf("%w: reading length: %w", ErrInvalidHeader, err)
	}

	if length < 0 || length > maxHeaderSize {
		return "", fmt.Errorf("%w: length %d out of range", ErrInvalidHeader, length)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return "", fmt.Errorf("%w: reading %d bytes: %w", ErrInvalidHeader, length, err)
	}

	for _, b := range data {
		if b > unicode.MaxASCII {
			return "", fmt.Errorf("%w: non-ASCII byte 0x%02x", ErrInvalidHeader, b)
		}
	}

	decoded, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("%w: path is not valid UTF-8", ErrInvalidHeader)
	}

	return string(decoded), nil
}
