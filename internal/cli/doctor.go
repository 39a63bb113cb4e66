package cli

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/worktree-tools/wtman/internal/config"
	"github.com/worktree-tools/wtman/internal/projectdb"
	"github.com/worktree-tools/wtman/internal/shim"
)

var (
	colorCheckGood = color.New(color.FgGreen, color.Bold).SprintFunc()
	colorCheckBad  = color.New(color.FgHiRed, color.Bold).SprintFunc()
)

func newDoctorCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose wtman prerequisites and environment issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show passing checks too")
	return cmd
}

type doctorCheck struct {
	Name string
	Fn   func() error
}

func runDoctor(cmd *cobra.Command, verbose bool) error {
	checks := []doctorCheck{
		{Name: "git installed", Fn: requireOnPath("git")},
		{Name: "wtman binary discoverable", Fn: func() error {
			_, err := shim.Locate()
			return err
		}},
		{Name: "shell wrapper active", Fn: func() error {
			if !shim.Wrapped() {
				return errors.New("add `eval \"$(wtman shell-init)\"` to your shell rc")
			}
			return nil
		}},
		{Name: "config readable", Fn: func() error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			_, err = config.Load(path)
			return err
		}},
		{Name: "project registry readable", Fn: func() error {
			path, err := projectdb.DefaultPath()
			if err != nil {
				return err
			}
			_, err = projectdb.Load(path)
			return err
		}},
	}

	out := cmd.OutOrStdout()
	failures := 0
	for _, check := range checks {
		if err := check.Fn(); err != nil {
			failures++
			fmt.Fprintf(out, "%s %s: %v\n", colorCheckBad("✗"), check.Name, err)
		} else if verbose {
			fmt.Fprintf(out, "%s %s\n", colorCheckGood("✓"), check.Name)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}

func requireOnPath(name string) func() error {
	return func() error {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("%s not found on PATH", name)
		}
		return nil
	}
}
