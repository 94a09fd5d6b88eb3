package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idelchi/govault/internal/fileutil"
	"github.com/idelchi/govault/internal/naming"
)

// ErrUnsafePath is returned when a decoded path would escape the decrypted folder.
var ErrUnsafePath = errors.New("unsafe path")

// folderPerm is used for folders created while restoring.
const folderPerm = 0o700

func (e *Engine) encryptFile(r *Result, p *progress) {
	if r.Done {
		return
	}

	if r.Err != nil {
		p.send(failure(r.UnencryptedPath, "Could not encrypt, name already in use."))

		return
	}

	p.send(info(r.UnencryptedPath, "Encrypting..."))

	r.EncryptedPath = filepath.Join(e.vault.Encrypted, naming.NameForEncryptedFile(r.UnencryptedPath))

	size, err := e.writeEncrypted(r.UnencryptedPath, r.EncryptedPath)
	if err != nil {
		r.Err = err

		p.send(failure(r.UnencryptedPath, "Could not encrypt."))

		return
	}

	r.Size = size
	r.Done = true

	p.send(finished(r.UnencryptedPath, "Encrypted."))
}

func (e *Engine) writeEncrypted(src, target string) (size int64, err error) {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer in.Close()

	if err := fileutil.RemoveIfExists(target); err != nil {
		return 0, err
	}

	tc, err := fileutil.NewTempContext(target)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	if err = naming.WriteHeader(src, tc.TmpFile); err != nil {
		return 0, err
	}

	if err = e.cipher.Encrypt(in, tc.TmpFile); err != nil {
		return 0, fmt.Errorf("encrypting file: %w", err)
	}

	size, err = tc.Commit()

	return size, err
}

func (e *Engine) decryptFile(r *Result, p *progress) {
	if r.Done {
		return
	}

	target, err := e.writeDecrypted(r, p)
	if err != nil {
		r.Err = err

		p.send(failure(r.EncryptedPath, "Could not decrypt."))

		return
	}

	r.Done = true

	p.send(finished(target, "Decrypted."))
}

func (e *Engine) writeDecrypted(r *Result, p *progress) (target string, err error) {
	in, err := os.Open(filepath.Clean(r.EncryptedPath))
	if err != nil {
		return "", fmt.Errorf("opening encrypted file: %w", err)
	}
	defer in.Close()

	p.send(info(r.EncryptedPath, "Deciphering name..."))

	original, err := naming.ReadHeader(in)
	if err != nil {
		return "", err
	}

	r.UnencryptedPath = original

	p.send(info(original, "Decrypting..."))

	target, err = e.restorePath(original)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), folderPerm); err != nil {
		return "", fmt.Errorf("creating folder: %w", err)
	}

	tc, err := fileutil.NewTempContext(target)
	if err != nil {
		return "", fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	if err = e.cipher.Decrypt(in, tc.TmpFile); err != nil {
		return "", fmt.Errorf("decrypting file: %w", err)
	}

	if r.Size, err = tc.Commit(); err != nil {
		return "", err
	}

	return target, nil
}

// restorePath maps an original path below the decrypted folder.
// Absolute paths lose their volume and root, so "/a/b/x.txt" lands at "<decrypted>/a/b/x.txt".
func (e *Engine) restorePath(original string) (string, error) {
	rel := RelativeOriginal(original)

	if rel == "" || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, original)
	}

	return filepath.Join(e.vault.Decrypted, rel), nil
}

// RelativeOriginal strips the volume name and leading separators of path and cleans the rest.
// Paths recorded on Windows keep their folder structure on other systems.
func RelativeOriginal(path string) string {
	if filepath.Separator == '/' {
		path = strings.ReplaceAll(path, `\`, "/")

		if len(path) >= 2 && path[1] == ':' && isLetter(path[0]) {
			path = path[2:]
		}
	}

	path = strings.TrimPrefix(path, filepath.VolumeName(path))
	path = strings.TrimLeft(path, `/\`)

	return filepath.Clean(path)
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
