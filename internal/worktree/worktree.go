// Package worktree creates and enters git worktrees under a per-repository
// base directory, and emits the output directive that lets the shell shim
// move the user into them.
package worktree

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/worktree-tools/wtman/internal/config"
	"github.com/worktree-tools/wtman/internal/gitutil"
	"github.com/worktree-tools/wtman/internal/i18n"
	"github.com/worktree-tools/wtman/internal/projectdb"
	"github.com/worktree-tools/wtman/internal/setup"
	"github.com/worktree-tools/wtman/internal/shim"
)

var colorOK = color.New(color.FgGreen, color.Bold).SprintFunc()

// Manager creates, enters, and removes worktrees for one repository.
type Manager struct {
	RepoRoot  string
	BaseDir   string
	Messages  *i18n.Messages
	Out       io.Writer
	Errw      io.Writer
	AutoSetup bool
}

// NewManager builds a Manager for the repository at repoRoot using the
// user's configuration.
func NewManager(repoRoot string, cfg config.Config, msgs *i18n.Messages, out, errw io.Writer) (*Manager, error) {
	base := cfg.Worktree.BaseDir
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, "_wtman")
	}
	return &Manager{
		RepoRoot:  repoRoot,
		BaseDir:   base,
		Messages:  msgs,
		Out:       out,
		Errw:      errw,
		AutoSetup: cfg.Setup.AutoEnabled(),
	}, nil
}

// hashedName disambiguates repositories that share a directory name.
func hashedName(repoRoot string) string {
	sum := sha256.Sum256([]byte(repoRoot))
	return hex.EncodeToString(sum[:8])
}

// RepoBase returns the directory under which all of this repository's
// worktrees live.
func (m *Manager) RepoBase() string {
	name := filepath.Base(m.RepoRoot)
	return filepath.Join(m.BaseDir, fmt.Sprintf("%s_%s", name, hashedName(m.RepoRoot)))
}

// PathFor returns the worktree directory for branch.
func (m *Manager) PathFor(branch string) string {
	return filepath.Join(m.RepoBase(), branch)
}

// Switch creates the worktree for branch if needed and enters it. A missing
// branch is created as part of the worktree add.
func (m *Manager) Switch(branch string) error {
	path := m.PathFor(branch)

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(m.Out, "%s '%s'\n", m.Messages.WorktreeExists(), branch)
		return m.Enter(path)
	}

	if err := os.MkdirAll(m.RepoBase(), 0o755); err != nil {
		return err
	}

	fmt.Fprintf(m.Out, "%s '%s'\n", m.Messages.AddingWorktree(), branch)
	if err := gitutil.AddWorktree(m.RepoRoot, path, branch, false); err != nil {
		fmt.Fprintf(m.Out, "%s: '%s'\n", m.Messages.BranchNotFound(), branch)
		if err := gitutil.AddWorktree(m.RepoRoot, path, branch, true); err != nil {
			return fmt.Errorf("create worktree for %s: %w", branch, err)
		}
	}

	return m.Enter(path)
}

// Enter announces the worktree and emits the directory-change directive,
// then runs auto-setup. The directive line is the only part of the output
// the shell shim acts on.
func (m *Manager) Enter(path string) error {
	if err := projectdb.TouchVisit(m.RepoRoot); err != nil {
		fmt.Fprintf(m.Errw, "warning: cannot update project registry: %v\n", err)
	}

	fmt.Fprintf(m.Out, "\n%s %s %s\n", colorOK("✓"), m.Messages.WorktreeReady(), path)
	fmt.Fprintf(m.Out, "\n%s\n", m.Messages.SwitchHint())
	fmt.Fprintf(m.Out, "%s%s\n", shim.DirectivePrefix, path)

	if m.AutoSetup {
		setup.Auto(path, m.Out, m.Errw)
	}
	return nil
}

// Remove deletes the worktree for branch. The main checkout never lives
// under the worktree base, so it cannot be removed through here.
func (m *Manager) Remove(branch string, force bool) error {
	path := m.PathFor(branch)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no worktree for branch %s", branch)
	}
	fmt.Fprintf(m.Out, "%s %s\n", m.Messages.DeletingWorktree(), branch)
	if err := gitutil.RemoveWorktree(m.RepoRoot, path, force); err != nil {
		fmt.Fprintf(m.Errw, "%s\n", m.Messages.UncommittedChangesTip())
		return err
	}
	fmt.Fprintf(m.Out, "%s %s\n", colorOK("✓"), m.Messages.WorktreeDeleted())
	return nil
}
