package tree

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/govault/internal/config"
	"github.com/idelchi/govault/internal/engine"
	"github.com/idelchi/govault/internal/logging"
	"github.com/idelchi/govault/internal/naming"
)

var (
	// ErrNoRoot is returned when no folder of the tree sits at a file-system root.
	ErrNoRoot = errors.New("no root folder")
	// ErrMultipleRoots is returned when decoded paths live under several roots.
	ErrMultipleRoots = errors.New("multiple root folders")
)

// Builder generates trees for the configured vaults.
type Builder struct {
	vaults   config.Vaults
	base     string
	parallel int
	logger   logrus.FieldLogger
}

// Option configures a Builder.
type Option func(*Builder)

// WithBase resolves relative vault folders against dir.
func WithBase(dir string) Option {
	return func(b *Builder) { b.base = dir }
}

// WithParallel caps the number of concurrent header reads. Zero or less means no cap.
func WithParallel(n int) Option {
	return func(b *Builder) { b.parallel = n }
}

// WithLogger sets the logger used for warnings.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(b *Builder) { b.logger = logger }
}

// NewBuilder returns a Builder over vaults.
func NewBuilder(vaults config.Vaults, opts ...Option) *Builder {
	b := &Builder{
		vaults: vaults,
		logger: logging.Discard(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Generate decodes every encrypted file of the named vault and returns its folder tree.
// The top folder is named ROOT. An empty vault yields an empty ROOT.
func (b *Builder) Generate(ctx context.Context, vaultName string) (*FolderEntry, error) {
	v, err := b.vaults.Lookup(vaultName)
	if err != nil {
		return nil, err
	}

	base := b.base
	if base == "" {
		if base, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
	}

	v, err = v.Resolve(base)
	if err != nil {
		return nil, err
	}

	originals, err := b.decode(ctx, v.Encrypted)
	if err != nil {
		return nil, err
	}

	return Build(originals)
}

// decode maps every decoded original path to its encrypted file.
func (b *Builder) decode(ctx context.Context, dir string) (map[string]string, error) {
	encrypted, err := filepath.Glob(filepath.Join(dir, naming.Pattern))
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", dir, err)
	}

	sort.Strings(encrypted)

	decoded := make([]string, len(encrypted))

	group, ctx := errgroup.WithContext(ctx)

	if b.parallel > 0 {
		group.SetLimit(b.parallel)
	}

	for i, path := range encrypted {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			original, err := readOriginal(path)
			if err != nil {
				return err
			}

			decoded[i] = original

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	originals := make(map[string]string, len(encrypted))

	for i, original := range decoded {
		if previous, ok := originals[original]; ok {
			b.logger.WithFields(logrus.Fields{
				"original": original,
				"kept":     encrypted[i],
				"ignored":  previous,
			}).Warn("duplicate original path")
		}

		originals[original] = encrypted[i]
	}

	return originals, nil
}

func readOriginal(path string) (string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("opening %q: %w", path, err)
	}
	defer file.Close()

	original, err := naming.ReadHeader(file)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}

	return original, nil
}

// Build assembles the tree of originals, a map from original path to encrypted path.
func Build(originals map[string]string) (*FolderEntry, error) {
	if len(originals) == 0 {
		return &FolderEntry{Name: RootName}, nil
	}

	paths := make([]string, 0, len(originals))
	for path := range originals {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	folders := make(map[string]*FolderEntry)

	for _, path := range paths {
		local := localPath(path)
		parent := folderFor(folders, filepath.Dir(local))

		parent.Files = append(parent.Files, &FileEntry{
			EncryptedFullPath: originals[path],
			OriginalFullPath:  path,
			Name:              filepath.Base(local),
			Parent:            parent,
		})
	}

	var roots []*FolderEntry

	for _, folder := range folders {
		if folder.FullPath == rootOf(folder.FullPath) {
			roots = append(roots, folder)
		}
	}

	switch len(roots) {
	case 0:
		return nil, ErrNoRoot
	case 1:
		roots[0].Name = RootName

		return roots[0], nil
	default:
		names := make([]string, 0, len(roots))
		for _, r := range roots {
			names = append(names, r.FullPath)
		}

		sort.Strings(names)

		return nil, fmt.Errorf("%w: %v", ErrMultipleRoots, names)
	}
}

// localPath places a path recorded on Windows below the root of this system,
// matching where decrypt restores it. Other paths are returned unchanged.
func localPath(path string) string {
	if filepath.Separator != '/' || !isWindowsPath(path) {
		return path
	}

	return filepath.Join("/", engine.RelativeOriginal(path))
}

// isWindowsPath reports whether path starts with a drive letter or a backslash.
func isWindowsPath(path string) bool {
	if strings.HasPrefix(path, `\`) {
		return true
	}

	return len(path) >= 2 && path[1] == ':' && path[0] <= unicode.MaxASCII && unicode.IsLetter(rune(path[0]))
}

// folderFor returns the folder at path, creating it and its missing ancestors.
func folderFor(folders map[string]*FolderEntry, path string) *FolderEntry {
	if folder, ok := folders[path]; ok {
		return folder
	}

	folder := &FolderEntry{FullPath: path, Name: nameOf(path)}
	folders[path] = folder

	if parentPath := filepath.Dir(path); parentPath != path {
		parent := folderFor(folders, parentPath)
		folder.Parent = parent
		parent.Folders = append(parent.Folders, folder)
	}

	return folder
}
