package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/worktree-tools/wtman/internal/i18n"
	"github.com/worktree-tools/wtman/internal/projectdb"
	"github.com/worktree-tools/wtman/internal/timefmt"
)

var colorAge = color.New(color.FgHiBlack).SprintFunc()

func newProjectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List repositories known to wtman, most recent first",
		Args:  cobra.NoArgs,
		RunE:  runProjects,
	}
}

func runProjects(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	msgs := i18n.ForLanguage(i18n.Parse(cfg.Language))

	path, err := projectdb.DefaultPath()
	if err != nil {
		return err
	}
	db, err := projectdb.Load(path)
	if err != nil {
		return err
	}

	entries := db.Sorted()
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, msgs.NoProjectsFound())
		fmt.Fprintln(out, msgs.NavigateToGitRepo())
		return nil
	}

	col := 0
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Name); w > col {
			col = w
		}
	}

	now := time.Now()
	for _, e := range entries {
		pad := strings.Repeat(" ", col-runewidth.StringWidth(e.Name))
		age := timefmt.Relative(time.Unix(e.LastAccessed, 0), now)
		fmt.Fprintf(out, "%s%s  %s  %s\n", e.Name, pad, e.Path, colorAge(age))
	}
	return nil
}
