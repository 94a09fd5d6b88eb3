package engine

// Result is the outcome of a single file within a batch.
// It is written only by the worker that owns it.
type Result struct {
	// UnencryptedPath is the plaintext path. For decryption it is known only once the header was read.
	UnencryptedPath string
	// EncryptedPath is the path inside the encrypted folder.
	EncryptedPath string
	// Done reports success.
	Done bool
	// Err is the failure, if any.
	Err error
	// Size is the number of bytes written.
	Size int64
}

// Count returns the number of done and failed results.
func Count(results []*Result) (done, failed int) {
	for _, r := range results {
		if r.Done {
			done++
		} else {
			failed++
		}
	}

	return done, failed
}

// TotalSize sums the bytes written by the batch.
func TotalSize(results []*Result) int64 {
	var total int64

	for _, r := range results {
		total += r.Size
	}

	return total
}
