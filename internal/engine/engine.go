package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/govault/internal/config"
	"github.com/idelchi/govault/internal/encryption"
	"github.com/idelchi/govault/internal/logging"
	"github.com/idelchi/govault/internal/naming"
)

var (
	// ErrDegeneratePattern is returned for a pattern from which no folder or file name can be derived.
	ErrDegeneratePattern = errors.New("degenerate pattern")

	// ErrNameCollision is returned for a file whose encrypted name is already taken by another file of the batch.
	ErrNameCollision = errors.New("encrypted name collision")
)

// Engine encrypts and decrypts files of one vault with one key.
// Batches are synchronous; an Engine may run several batches in sequence.
type Engine struct {
	vault     config.Vault
	cipher    *encryption.Cipher
	algorithm encryption.Algorithm
	sink      Sink
	parallel  int
	logger    logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink sets the receiver of progress messages.
func WithSink(sink Sink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithParallel caps the number of concurrent workers. Zero or less means no cap.
func WithParallel(n int) Option {
	return func(e *Engine) { e.parallel = n }
}

// WithAlgorithm selects the block cipher. AES is the default.
func WithAlgorithm(algorithm encryption.Algorithm) Option {
	return func(e *Engine) { e.algorithm = algorithm }
}

// WithLogger sets the logger used for warnings.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an Engine for vault. The vault directories must already be resolved.
func New(vault config.Vault, key []byte, opts ...Option) (*Engine, error) {
	e := &Engine{
		vault:     vault,
		algorithm: encryption.AES,
		logger:    logging.Discard(),
	}

	for _, opt := range opts {
		opt(e)
	}

	params := encryption.DefaultParameters(key)
	params.Algorithm = e.algorithm

	c, err := encryption.NewCipher(params)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	e.cipher = c

	return e, nil
}

// Encrypt encrypts every file matched by patterns into the vault's encrypted folder.
// It returns one Result per resolved file, failed ones included.
func (e *Engine) Encrypt(ctx context.Context, patterns []string) ([]*Result, error) {
	paths, err := e.Resolve(patterns)
	if err != nil {
		return nil, err
	}

	return e.EncryptFiles(ctx, paths), nil
}

// EncryptFiles encrypts already resolved paths.
func (e *Engine) EncryptFiles(ctx context.Context, paths []string) []*Result {
	results := make([]*Result, 0, len(paths))
	for _, path := range paths {
		results = append(results, &Result{UnencryptedPath: path})
	}

	e.markCollisions(results)

	e.run(ctx, results, e.encryptFile)

	return results
}

// Decrypt restores every encrypted file matched by patterns into the vault's decrypted folder.
// Patterns are matched against file names in the encrypted folder, without recursion.
func (e *Engine) Decrypt(ctx context.Context, patterns []string) ([]*Result, error) {
	paths, err := e.ResolveEncrypted(patterns)
	if err != nil {
		return nil, err
	}

	return e.DecryptFiles(ctx, paths), nil
}

// DecryptFiles decrypts already resolved encrypted files.
func (e *Engine) DecryptFiles(ctx context.Context, paths []string) []*Result {
	results := make([]*Result, 0, len(paths))
	for _, path := range paths {
		results = append(results, &Result{EncryptedPath: path})
	}

	e.run(ctx, results, e.decryptFile)

	return results
}

// markCollisions fails every result whose encrypted name, which ignores case,
// is shared with an earlier result. Only the first path of such a group is encrypted.
func (e *Engine) markCollisions(results []*Result) {
	owners := make(map[string]string, len(results))

	for _, r := range results {
		name := naming.NameForEncryptedFile(r.UnencryptedPath)

		owner, taken := owners[name]
		if !taken {
			owners[name] = r.UnencryptedPath

			continue
		}

		r.EncryptedPath = filepath.Join(e.vault.Encrypted, name)
		r.Err = fmt.Errorf("%w: %q maps to the same file as %q", ErrNameCollision, r.UnencryptedPath, owner)

		e.logger.WithField("file", r.UnencryptedPath).Warnf("skipped, encrypted name already used by %q", owner)
	}
}

type worker func(r *Result, p *progress)

// run fans results out to workers and returns once all of them joined
// and every progress message reached the sink.
func (e *Engine) run(ctx context.Context, results []*Result, work worker) {
	p := startProgress(len(results), e.sink)

	group := errgroup.Group{}

	if e.parallel > 0 {
		group.SetLimit(e.parallel)
	}

	for _, r := range results {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				r.Err = err

				return nil
			}

			work(r, p)

			return nil
		})
	}

	_ = group.Wait()

	p.stop()
}
