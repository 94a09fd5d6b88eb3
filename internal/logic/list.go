package logic

import (
	"context"
	"fmt"

	"github.com/idelchi/govault/internal/tree"
)

// RunList prints the folder tree of the selected vault.
func RunList(ctx context.Context, s *Session) error {
	root, err := s.generateTree(ctx)
	if err != nil {
		return err
	}

	if err := tree.Print(s.Out, root); err != nil {
		return fmt.Errorf("printing tree: %w", err)
	}

	if s.Config.Stats {
		fmt.Fprintf(s.Err, "\n%d files\n", root.FileCount())
	}

	return nil
}

// RunReport prints the encrypted and original name of every file in the selected vault.
func RunReport(ctx context.Context, s *Session) error {
	root, err := s.generateTree(ctx)
	if err != nil {
		return err
	}

	if err := tree.Report(s.Out, root); err != nil {
		return fmt.Errorf("printing report: %w", err)
	}

	return nil
}

func (s *Session) generateTree(ctx context.Context) (*tree.FolderEntry, error) {
	builder := tree.NewBuilder(s.Config.Vaults,
		tree.WithBase(s.Config.Dir),
		tree.WithParallel(s.Config.Parallel),
		tree.WithLogger(s.batchLogger("list")),
	)

	root, err := builder.Generate(ctx, s.Config.Vault)
	if err != nil {
		return nil, fmt.Errorf("generating list: %w", err)
	}

	return root, nil
}
