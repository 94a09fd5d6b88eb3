package tree

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Print writes folder as an indented listing, one level of ">" per depth.
// Files are listed before sub-folders.
func Print(w io.Writer, folder *FolderEntry) error {
	return printFolder(w, folder, "")
}

func printFolder(w io.Writer, folder *FolderEntry, indent string) error {
	if _, err := fmt.Fprintf(w, "%s [%s]\n", indent, folder.Name); err != nil {
		return err
	}

	indent += ">"

	for _, file := range folder.Files {
		if _, err := fmt.Fprintf(w, "%s %s\n", indent, file.Name); err != nil {
			return err
		}
	}

	for _, child := range folder.Folders {
		if err := printFolder(w, child, indent); err != nil {
			return err
		}
	}

	return nil
}

// Report writes a two-column table of encrypted and original paths.
func Report(w io.Writer, folder *FolderEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "Encrypted Name\tOriginal Name")

	folder.Walk(func(file *FileEntry) {
		fmt.Fprintf(tw, "%s\t%s\n", file.EncryptedFullPath, file.OriginalFullPath)
	})

	return tw.Flush()
}
