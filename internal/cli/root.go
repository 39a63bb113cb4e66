package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/worktree-tools/wtman/internal/config"
	"github.com/worktree-tools/wtman/internal/gitutil"
	"github.com/worktree-tools/wtman/internal/i18n"
	"github.com/worktree-tools/wtman/internal/projectdb"
	"github.com/worktree-tools/wtman/internal/version"
	"github.com/worktree-tools/wtman/internal/worktree"
)

func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wtman [branch]",
		Short:         "Git worktree manager with shell-integrated directory switching",
		Args:          cobra.MaximumNArgs(1),
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	cmd.AddCommand(
		newListCommand(),
		newProjectsCommand(),
		newShellInitCommand(),
		newDoctorCommand(),
		newVersionCommand(),
	)

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	msgs := i18n.ForLanguage(i18n.Parse(cfg.Language))

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	root, err := gitutil.MainRepoRoot(wd)
	if err != nil {
		return err
	}
	if root == "" {
		return runProjectPicker(cmd, cfg, msgs)
	}

	if err := projectdb.RecordVisit(root); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: cannot update project registry: %v\n", err)
	}

	mgr, err := worktree.NewManager(root, cfg, msgs, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return mgr.Switch(args[0])
	}
	return runWorktreePicker(cmd, mgr, msgs, root)
}

// loadConfig reads the user config, degrading to defaults with a warning so
// a broken config never blocks a switch.
func loadConfig(cmd *cobra.Command) config.Config {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using defaults\n", err)
		return config.Default()
	}
	return cfg
}
