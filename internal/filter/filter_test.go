package filter_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/idelchi/govault/internal/filter"
)

func TestApply(t *testing.T) {
	t.Parallel()

	paths := []string{
		"/home/me/docs/report.pdf",
		"/home/me/docs/draft.tmp",
		"/home/me/.git/config",
		"/home/me/photos/cat.jpg",
	}

	tests := []struct {
		name     string
		excludes []string
		want     []string
	}{
		{name: "none", excludes: nil, want: paths},
		{name: "by name", excludes: []string{"*.tmp"}, want: []string{paths[0], paths[2], paths[3]}},
		{name: "by path", excludes: []string{"**/.git/**"}, want: []string{paths[0], paths[1], paths[3]}},
		{name: "several", excludes: []string{"*.tmp", "/home/me/photos/*", " "}, want: []string{paths[0], paths[2]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flt, err := filter.New(tt.excludes)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			got, excluded := flt.Apply(paths)

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}

			if excluded != len(paths)-len(tt.want) {
				t.Errorf("Apply() excluded = %d, want %d", excluded, len(paths)-len(tt.want))
			}
		})
	}
}

func TestNewInvalidPattern(t *testing.T) {
	t.Parallel()

	if _, err := filter.New([]string{"[unterminated"}); err == nil {
		t.Error("New() with invalid pattern succeeded")
	}
}

func TestLoadPatterns(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "patterns.jsonc")
	content := `[
  // documents
  "~/docs/*.pdf",
  /* photos */
  "photos",
]`

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := filter.LoadPatterns(path)
	if err != nil {
		t.Fatalf("LoadPatterns() error = %v", err)
	}

	want := []string{"~/docs/*.pdf", "photos"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadPatterns() = %v, want %v", got, want)
	}
}

func TestLoadPatternsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.jsonc")
	if err := os.WriteFile(bad, []byte(`{"not": "a list"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{bad, filepath.Join(dir, "missing.jsonc")} {
		if _, err := filter.LoadPatterns(path); err == nil {
			t.Errorf("LoadPatterns(%q) succeeded", path)
		}
	}
}
