package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worktree-tools/wtman/internal/config"
	"github.com/worktree-tools/wtman/internal/gitutil"
	"github.com/worktree-tools/wtman/internal/i18n"
	"github.com/worktree-tools/wtman/internal/picker"
	"github.com/worktree-tools/wtman/internal/projectdb"
	"github.com/worktree-tools/wtman/internal/setup"
	"github.com/worktree-tools/wtman/internal/shim"
	"github.com/worktree-tools/wtman/internal/worktree"
)

// runWorktreePicker offers the repository's worktrees for selection,
// creation (Ctrl+B), or deletion (Ctrl+X).
func runWorktreePicker(cmd *cobra.Command, mgr *worktree.Manager, msgs *i18n.Messages, root string) error {
	worktrees, err := gitutil.ListWorktrees(root)
	if err != nil {
		return err
	}

	items := make([]picker.Item, len(worktrees))
	for i, wt := range worktrees {
		label := wt.Branch
		if wt.IsMain {
			label += " (main)"
		}
		items[i] = picker.Item{Label: label, Detail: wt.Path}
	}

	outcome, err := picker.Run(picker.Options{
		Title:       msgs.SelectOrCreateWorktree(),
		Help:        msgs.HelpKeys(),
		Items:       items,
		AllowCreate: true,
		AllowDelete: true,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch outcome.Action {
	case picker.ActionCreate:
		fmt.Fprintf(out, "%s %s\n", msgs.CreatingNewWorktree(), outcome.Query)
		return mgr.Switch(outcome.Query)
	case picker.ActionDelete:
		wt := worktrees[outcome.Index]
		if wt.IsMain {
			return errors.New(msgs.CannotDeleteMain())
		}
		return mgr.Remove(wt.Branch, false)
	case picker.ActionSelect:
		wt := worktrees[outcome.Index]
		fmt.Fprintf(out, "%s %s\n", msgs.SwitchingToWorktree(), wt.Branch)
		return mgr.Enter(wt.Path)
	}
	return nil
}

// runProjectPicker offers previously visited repositories when wtman runs
// outside a git repository, emitting a directive for the chosen one.
func runProjectPicker(cmd *cobra.Command, cfg config.Config, msgs *i18n.Messages) error {
	out := cmd.OutOrStdout()

	dbPath, err := projectdb.DefaultPath()
	if err != nil {
		return err
	}
	db, err := projectdb.Load(dbPath)
	if err != nil {
		return err
	}
	entries := db.Sorted()
	if len(entries) == 0 {
		fmt.Fprintln(out, msgs.NoProjectsFound())
		fmt.Fprintln(out, msgs.NavigateToGitRepo())
		return nil
	}

	items := make([]picker.Item, len(entries))
	for i, e := range entries {
		items[i] = picker.Item{Label: e.Name, Detail: e.Path}
	}

	outcome, err := picker.Run(picker.Options{
		Title: msgs.SelectProject(),
		Help:  msgs.HelpKeysSelectOnly(),
		Items: items,
	})
	if err != nil {
		return err
	}
	if outcome.Action != picker.ActionSelect {
		return nil
	}

	entry := entries[outcome.Index]
	fmt.Fprintf(out, "%s %s\n", msgs.SwitchingToProject(), entry.Name)
	fmt.Fprintf(out, "%s%s\n", shim.DirectivePrefix, entry.Path)

	db.Touch(entry.Path)
	if err := db.Save(dbPath); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: cannot update project registry: %v\n", err)
	}

	if cfg.Setup.AutoEnabled() {
		setup.Auto(entry.Path, out, cmd.ErrOrStderr())
	}
	return nil
}
