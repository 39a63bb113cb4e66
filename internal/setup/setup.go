// Package setup runs environment preparation inside a worktree after a
// switch: version manager activation followed by dependency installation,
// chosen from the files present in the worktree.
package setup

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Plan lists the commands auto-setup would run in dir, in execution order.
func Plan(dir string) []string {
	var commands []string

	if exists(dir, "mise.toml") || exists(dir, ".mise.toml") {
		commands = append(commands, "mise install")
	} else if exists(dir, ".nvmrc") {
		commands = append(commands, "nvm use")
	}

	if exists(dir, "pnpm-lock.yaml") {
		commands = append(commands, "pnpm install")
	} else if exists(dir, "yarn.lock") {
		commands = append(commands, "yarn install")
	} else if exists(dir, "package-lock.json") {
		commands = append(commands, "npm install")
	}

	return commands
}

// Auto executes the setup plan for dir through the user's shell. Failures
// are reported on errw but never returned; setup must not fail a switch.
func Auto(dir string, out, errw io.Writer) {
	commands := Plan(dir)
	if len(commands) == 0 {
		return
	}

	var script strings.Builder
	for _, c := range commands {
		// Version managers are shell functions, not binaries; they only
		// exist after the rc file has been sourced.
		if c == "nvm use" || c == "mise install" {
			script.WriteString("source ~/.zshrc 2>/dev/null || source ~/.bashrc 2>/dev/null || true; ")
			break
		}
	}
	script.WriteString(strings.Join(commands, " && "))

	fmt.Fprintf(out, "Running automatic setup: %s\n", strings.Join(commands, " && "))

	sh := os.Getenv("SHELL")
	if sh == "" {
		sh = "/bin/sh"
	}
	cmd := exec.Command(sh, "-c", script.String())
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = errw
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(errw, "warning: setup did not complete cleanly: %v\n", err)
	}
}

func exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
