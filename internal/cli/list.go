package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/worktree-tools/wtman/internal/gitutil"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List worktrees for the current repository",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	root, err := gitutil.MainRepoRoot(wd)
	if err != nil {
		return err
	}
	if root == "" {
		return errors.New("not inside a git repository")
	}

	worktrees, err := gitutil.ListWorktrees(root)
	if err != nil {
		return err
	}

	col := 0
	for _, wt := range worktrees {
		if w := runewidth.StringWidth(wt.Branch); w > col {
			col = w
		}
	}

	out := cmd.OutOrStdout()
	for _, wt := range worktrees {
		marker := " "
		if wt.IsMain {
			marker = "*"
		}
		pad := strings.Repeat(" ", col-runewidth.StringWidth(wt.Branch))
		fmt.Fprintf(out, "%s %s%s  %s\n", marker, wt.Branch, pad, wt.Path)
	}
	return nil
}
