package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newShellInitCommand() *cobra.Command {
	var shell string
	cmd := &cobra.Command{
		Use:   "shell-init",
		Short: "Print the shell wrapper that lets wtman change your cwd",
		Long: `Print the shell wrapper that lets wtman change your cwd.

A child process cannot move its parent shell, so wtman emits its target
directory as a "  cd <path>" line on stdout. The wrapper function printed
here captures wtman's output while streaming it to the terminal, applies
the first such directive, and preserves wtman's exit status.

Add to your shell rc:

  eval "$(wtman shell-init)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShellInit(cmd, shell)
		},
	}
	cmd.Flags().StringVar(&shell, "shell", "", "target shell (zsh or bash; default from $SHELL)")
	return cmd
}

func runShellInit(cmd *cobra.Command, shell string) error {
	if shell == "" {
		shell = filepath.Base(os.Getenv("SHELL"))
	}
	switch shell {
	case "zsh":
		fmt.Fprint(cmd.OutOrStdout(), zshWrapper)
	case "bash":
		fmt.Fprint(cmd.OutOrStdout(), bashWrapper)
	default:
		return fmt.Errorf("unsupported shell %q (supported: zsh, bash)", shell)
	}
	return nil
}

// The wrapper is the shell-function form of internal/shim: locate the
// binary, tee combined output into a unique capture buffer, honor the first
// directive line, dispose of the buffer (trash when available), and return
// the child's exit status untouched.
const zshWrapper = `# wtman shell integration (zsh)
wtman() {
  local _wtman_bin _wtman_buf _wtman_status _wtman_target
  _wtman_bin="$HOME/.wtman/bin/wtman"
  if [ ! -x "$_wtman_bin" ]; then
    # whence -p skips functions, so the wrapper never resolves to itself.
    _wtman_bin="$(whence -p wtman)" || {
      echo "wtman: binary not found; run the installer" >&2
      return 127
    }
  fi
  _wtman_buf="$(mktemp "${TMPDIR:-/tmp}/wtman-capture.XXXXXX")" || return 1
  WTMAN_WRAPPED=1 "$_wtman_bin" "$@" 2>&1 | tee "$_wtman_buf"
  _wtman_status=${pipestatus[1]}
  _wtman_target="$(sed -n 's/^  cd //p' "$_wtman_buf" | head -n 1)"
  if command -v trash >/dev/null 2>&1; then
    trash "$_wtman_buf" 2>/dev/null || rm -f -- "$_wtman_buf"
  else
    rm -f -- "$_wtman_buf"
  fi
  if [ -n "$_wtman_target" ] && [ -d "$_wtman_target" ]; then
    builtin cd -- "$_wtman_target" && echo "→ $PWD"
  fi
  return $_wtman_status
}
`

const bashWrapper = `# wtman shell integration (bash)
wtman() {
  local _wtman_bin _wtman_buf _wtman_status _wtman_target
  _wtman_bin="$HOME/.wtman/bin/wtman"
  if [ ! -x "$_wtman_bin" ]; then
    # type -P skips functions, so the wrapper never resolves to itself.
    _wtman_bin="$(type -P wtman)" || {
      echo "wtman: binary not found; run the installer" >&2
      return 127
    }
  fi
  _wtman_buf="$(mktemp "${TMPDIR:-/tmp}/wtman-capture.XXXXXX")" || return 1
  WTMAN_WRAPPED=1 "$_wtman_bin" "$@" 2>&1 | tee "$_wtman_buf"
  _wtman_status=${PIPESTATUS[0]}
  _wtman_target="$(sed -n 's/^  cd //p' "$_wtman_buf" | head -n 1)"
  if command -v trash >/dev/null 2>&1; then
    trash "$_wtman_buf" 2>/dev/null || rm -f -- "$_wtman_buf"
  else
    rm -f -- "$_wtman_buf"
  fi
  if [ -n "$_wtman_target" ] && [ -d "$_wtman_target" ]; then
    builtin cd -- "$_wtman_target" && echo "→ $PWD"
  fi
  return $_wtman_status
}
`
