package key

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// NewRandom returns size bytes from the system's secure random source.
func NewRandom(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid key size: %d", size)
	}

	raw := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	return raw, nil
}

// Encode formats raw key bytes the way the --key flag expects them.
func Encode(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}
