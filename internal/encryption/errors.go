package encryption

import "errors"

var (
	// ErrEmptyData is returned when attempting to process empty input data.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when encrypted data length is not aligned with the block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
	// ErrUnsupported is returned for algorithm, mode or padding values that are not implemented.
	ErrUnsupported = errors.New("unsupported cipher parameters")
)
