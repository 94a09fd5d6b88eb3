package logic

import (
	"fmt"
)

// RunFind prints the encrypted file of every given original path, or "Not found.".
func RunFind(s *Session) error {
	if len(s.Config.Patterns) == 0 {
		return ErrNoPatterns
	}

	vault, err := s.Config.SelectedVault()
	if err != nil {
		return err
	}

	for _, path := range s.Config.Patterns {
		encrypted, found, err := locate(vault, path)
		if err != nil {
			return err
		}

		switch {
		case !found:
			fmt.Fprintf(s.Out, "%s: Not found.\n", path)
		case len(s.Config.Patterns) == 1:
			fmt.Fprintln(s.Out, encrypted)
		default:
			fmt.Fprintf(s.Out, "%s: %s\n", path, encrypted)
		}
	}

	return nil
}
