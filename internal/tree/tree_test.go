package tree_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/idelchi/govault/internal/config"
	"github.com/idelchi/govault/internal/naming"
	"github.com/idelchi/govault/internal/tree"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("paths below are Unix paths")
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	root, err := tree.Build(map[string]string{
		"/a/b/x.txt": "X.vault",
		"/a/b/y.txt": "Y.vault",
		"/a/c/z.txt": "Z.vault",
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if root.Name != tree.RootName || root.FullPath != "/" {
		t.Fatalf("root = %q at %q", root.Name, root.FullPath)
	}

	if len(root.Folders) != 1 || root.Folders[0].Name != "a" {
		t.Fatalf("root folders = %v", root.Folders)
	}

	a := root.Folders[0]
	if len(a.Folders) != 2 || a.Folders[0].Name != "b" || a.Folders[1].Name != "c" {
		t.Fatalf("folder a children = %v", a.Folders)
	}

	b := a.Folders[0]
	if len(b.Files) != 2 || b.Files[0].Name != "x.txt" || b.Files[1].Name != "y.txt" {
		t.Fatalf("folder b files = %v", b.Files)
	}

	if b.Files[0].EncryptedFullPath != "X.vault" || b.Files[0].Parent != b || b.Parent != a || a.Parent != root {
		t.Error("parent links or encrypted paths are wrong")
	}

	if got := root.FileCount(); got != 3 {
		t.Errorf("FileCount() = %d, want 3", got)
	}

	if file, ok := root.Find("/A/C/Z.TXT"); !ok || file.EncryptedFullPath != "Z.vault" {
		t.Errorf("Find() = %v, %v", file, ok)
	}
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	root, err := tree.Build(nil)
	if err != nil {
		t.Fatal(err)
	}

	if root.Name != tree.RootName || root.FileCount() != 0 {
		t.Errorf("empty tree = %+v", root)
	}
}

func TestBuildWindowsOriginals(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	root, err := tree.Build(map[string]string{
		`C:\Users\me\x.txt`: "X.vault",
		"/home/me/y.txt":    "Y.vault",
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if root.FullPath != "/" || len(root.Folders) != 2 {
		t.Fatalf("root %q has folders %v", root.FullPath, root.Folders)
	}

	names := root.Folders[0].Name + "," + root.Folders[1].Name
	if names != "home,Users" && names != "Users,home" {
		t.Errorf("root folders = %s", names)
	}

	file, ok := root.Find(`c:\users\me\x.txt`)
	if !ok {
		t.Fatal("Find() did not locate the Windows original")
	}

	if file.Name != "x.txt" || file.Parent.FullPath != "/Users/me" || file.EncryptedFullPath != "X.vault" {
		t.Errorf("file %q under %q -> %q", file.Name, file.Parent.FullPath, file.EncryptedFullPath)
	}
}

func TestBuildWithoutRoot(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	if _, err := tree.Build(map[string]string{"relative/x.txt": "X.vault"}); !errors.Is(err, tree.ErrNoRoot) {
		t.Errorf("Build() error = %v, want ErrNoRoot", err)
	}
}

func TestPrint(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	root, err := tree.Build(map[string]string{
		"/a/b/x.txt": "X.vault",
		"/a/b/y.txt": "Y.vault",
		"/a/c/z.txt": "Z.vault",
		"/top.txt":   "T.vault",
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer

	if err := tree.Print(&buf, root); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		" [ROOT]",
		"> top.txt",
		"> [a]",
		">> [b]",
		">>> x.txt",
		">>> y.txt",
		">> [c]",
		">>> z.txt",
		"",
	}, "\n")

	if buf.String() != want {
		t.Errorf("Print() =\n%s\nwant\n%s", buf.String(), want)
	}

	buf.Reset()

	if err := tree.Report(&buf, root); err != nil {
		t.Fatal(err)
	}

	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 5 {
		t.Errorf("Report() has %d lines, want header and 4 rows", len(lines))
	}
}

func writeVaultFile(t *testing.T, dir, original string) string {
	t.Helper()

	path := filepath.Join(dir, naming.NameForEncryptedFile(original))

	var buf bytes.Buffer
	if err := naming.WriteHeader(original, &buf); err != nil {
		t.Fatal(err)
	}

	buf.WriteString("ciphertext is not read")

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func newVault(t *testing.T) config.Vault {
	t.Helper()

	base := t.TempDir()

	v := config.Vault{Name: "docs", Encrypted: filepath.Join(base, "enc"), Decrypted: filepath.Join(base, "dec")}

	for _, dir := range []string{v.Encrypted, v.Decrypted} {
		if err := os.Mkdir(dir, 0o700); err != nil {
			t.Fatal(err)
		}
	}

	return v
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	v := newVault(t)

	for _, original := range []string{"/a/b/x.txt", "/a/b/y.txt", "/a/c/z.txt"} {
		writeVaultFile(t, v.Encrypted, original)
	}

	// Not a vault file; ignored.
	if err := os.WriteFile(filepath.Join(v.Encrypted, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	root, err := tree.NewBuilder(config.Vaults{v}, tree.WithParallel(2)).Generate(context.Background(), "docs")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if root.Name != tree.RootName || root.FileCount() != 3 {
		t.Fatalf("Generate() root %q with %d files", root.Name, root.FileCount())
	}

	file, ok := root.Find("/a/c/z.txt")
	if !ok || file.EncryptedFullPath != filepath.Join(v.Encrypted, naming.NameForEncryptedFile("/a/c/z.txt")) {
		t.Errorf("Find() = %+v, %v", file, ok)
	}
}

func TestGenerateEmptyVault(t *testing.T) {
	t.Parallel()

	root, err := tree.NewBuilder(config.Vaults{newVault(t)}).Generate(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}

	if root.Name != tree.RootName || len(root.Folders) != 0 || len(root.Files) != 0 {
		t.Errorf("empty vault tree = %+v", root)
	}
}

func TestGenerateCorruptHeader(t *testing.T) {
	t.Parallel()

	v := newVault(t)
	writeVaultFile(t, v.Encrypted, "/a/x.txt")

	bad := filepath.Join(v.Encrypted, "BAD.vault")
	if err := os.WriteFile(bad, []byte{1, 0}, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := tree.NewBuilder(config.Vaults{v}).Generate(context.Background(), "docs")
	if !errors.Is(err, naming.ErrInvalidHeader) || !strings.Contains(err.Error(), "BAD.vault") {
		t.Errorf("Generate() error = %v, want invalid header naming BAD.vault", err)
	}
}

func TestGenerateDuplicateOriginal(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	v := newVault(t)
	first := writeVaultFile(t, v.Encrypted, "/a/x.txt")

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}

	copied := filepath.Join(v.Encrypted, "ZZZZ.vault")
	if err := os.WriteFile(copied, data, 0o600); err != nil {
		t.Fatal(err)
	}

	root, err := tree.NewBuilder(config.Vaults{v}).Generate(context.Background(), "docs")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	file, ok := root.Find("/a/x.txt")
	if root.FileCount() != 1 || !ok || file.EncryptedFullPath != copied {
		t.Errorf("duplicate resolution kept %+v, want %q", file, copied)
	}
}

func TestGenerateUnknownVault(t *testing.T) {
	t.Parallel()

	_, err := tree.NewBuilder(config.Vaults{newVault(t)}).Generate(context.Background(), "music")
	if !errors.Is(err, config.ErrUnknownVault) {
		t.Errorf("Generate() error = %v, want ErrUnknownVault", err)
	}
}
