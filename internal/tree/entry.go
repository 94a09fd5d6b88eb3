// Package tree rebuilds the folder hierarchy of a vault from the paths stored in its encrypted files.
package tree

import (
	"path/filepath"
	"strings"
)

// RootName labels the top of every generated tree.
const RootName = "ROOT"

// FolderEntry is a folder of original paths. It owns its children.
type FolderEntry struct {
	FullPath string
	Name     string
	Parent   *FolderEntry
	Folders  []*FolderEntry
	Files    []*FileEntry
}

// FileEntry is an encrypted file together with its original path.
type FileEntry struct {
	EncryptedFullPath string
	OriginalFullPath  string
	Name              string
	Parent            *FolderEntry
}

// Walk visits every file below folder, depth first, folders before files.
func (f *FolderEntry) Walk(fn func(*FileEntry)) {
	for _, child := range f.Folders {
		child.Walk(fn)
	}

	for _, file := range f.Files {
		fn(file)
	}
}

// FileCount returns the number of files below folder.
func (f *FolderEntry) FileCount() int {
	count := 0

	f.Walk(func(*FileEntry) { count++ })

	return count
}

// Find returns the file whose original path equals path, ignoring case.
func (f *FolderEntry) Find(path string) (*FileEntry, bool) {
	var found *FileEntry

	f.Walk(func(file *FileEntry) {
		if found == nil && strings.EqualFold(file.OriginalFullPath, path) {
			found = file
		}
	})

	return found, found != nil
}

// rootOf returns the volume and root separator of path, e.g. "/" or `C:\`.
func rootOf(path string) string {
	return filepath.VolumeName(path) + string(filepath.Separator)
}

// nameOf returns the last element of a folder path, or the path itself for a root.
func nameOf(path string) string {
	name := filepath.Base(path)
	if name == string(filepath.Separator) || name == "." {
		return path
	}

	return name
}
