// Package shim wraps an invocation of the wtman binary so that a directory
// change requested through its output can be applied to the calling process.
// A child process cannot move its parent's working directory, so the binary
// emits a single directive line on stdout and the shim, which runs in the
// caller's own process, applies it after the child exits. The shell-function
// form of the same protocol is printed by `wtman shell-init`.
package shim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// DirectivePrefix marks the one output line through which the binary asks
// its wrapper to change directory. The path follows the prefix verbatim.
const DirectivePrefix = "  cd "

// EnvWrapped is set by the shell wrapper so the binary can tell whether a
// directive it emits will actually be honored.
const EnvWrapped = "WTMAN_WRAPPED"

// Result is the externally observable outcome of one wrapped invocation.
// ExitCode always reflects the child process, never the directory change.
type Result struct {
	ExitCode   int
	ChangedDir bool
	Dir        string
}

// ErrBinaryNotFound indicates no wtman executable exists at any candidate
// location. No process is spawned and no capture buffer is created.
var ErrBinaryNotFound = errors.New("wtman binary not found; run the installer to place it in ~/.wtman/bin")

// SpawnError wraps a failure to start the located binary.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string { return fmt.Sprintf("spawn %s: %v", e.Path, e.Err) }
func (e *SpawnError) Unwrap() error { return e.Err }

// DirectoryChangeError reports a directive whose target directory exists but
// could not be entered. The child's exit code remains authoritative; callers
// should surface the error without letting it replace Result.ExitCode.
type DirectoryChangeError struct {
	Dir string
	Err error
}

func (e *DirectoryChangeError) Error() string { return fmt.Sprintf("cd %s: %v", e.Dir, e.Err) }
func (e *DirectoryChangeError) Unwrap() error { return e.Err }

var colorConfirm = color.New(color.FgGreen, color.Bold).SprintFunc()

// Wrapped reports whether the shell wrapper marked itself as active.
func Wrapped() bool {
	return os.Getenv(EnvWrapped) == "1"
}

// Locate resolves the wtman binary, checking the per-user install directory
// and then a release build next to the running executable.
func Locate() (string, error) {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".wtman", "bin", "wtman"))
	}
	if self, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(self), "target", "release", "wtman"))
	}
	return locateAmong(candidates)
}

func locateAmong(candidates []string) (string, error) {
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", ErrBinaryNotFound
}

// Run locates the wtman binary, invokes it with args, and applies any
// directory-change directive found in its output. The caller's working
// directory is mutated on success, which is why Run must execute in the
// caller's own process rather than as a subprocess.
func Run(args ...string) (Result, error) {
	bin, err := Locate()
	if err != nil {
		return Result{ExitCode: 127}, err
	}
	return Invoke(bin, args)
}

// Invoke runs bin with args, streaming combined output to the terminal while
// duplicating it into a capture buffer. It blocks until the child exits,
// then scans the capture for the first directive line and applies it.
func Invoke(bin string, args []string) (Result, error) {
	return invoke(bin, args, os.Stdout, os.Stderr)
}

func invoke(bin string, args []string, stdout, stderr io.Writer) (Result, error) {
	buf, err := os.CreateTemp("", "wtman-capture-*.log")
	if err != nil {
		return Result{ExitCode: 126}, fmt.Errorf("create capture buffer: %w", err)
	}
	defer cleanup(buf.Name(), stderr)
	defer buf.Close()

	cmd := exec.Command(bin, args...)
	cmd.Stdin = os.Stdin
	tee := io.MultiWriter(stdout, buf)
	cmd.Stdout = tee
	cmd.Stderr = tee

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{ExitCode: 126}, &SpawnError{Path: bin, Err: err}
		}
		exitCode = exitErr.ExitCode()
	}

	res := Result{ExitCode: exitCode}

	if _, err := buf.Seek(0, io.SeekStart); err != nil {
		fmt.Fprintf(stderr, "wtman: cannot reread capture buffer: %v\n", err)
		return res, nil
	}
	target, ok, err := extractDirective(buf)
	if err != nil {
		fmt.Fprintf(stderr, "wtman: cannot scan capture buffer: %v\n", err)
	}
	if !ok {
		return res, nil
	}

	// A vanished or bogus target is treated as no directive at all: the line
	// may have been informational text that happened to match the pattern.
	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		return res, nil
	}

	if err := os.Chdir(target); err != nil {
		cdErr := &DirectoryChangeError{Dir: target, Err: err}
		fmt.Fprintf(stderr, "wtman: %v\n", cdErr)
		return res, cdErr
	}

	dir, err := os.Getwd()
	if err != nil {
		dir = target
	}
	res.ChangedDir = true
	res.Dir = dir
	fmt.Fprintf(stdout, "%s %s\n", colorConfirm("→"), dir)
	return res, nil
}

// extractDirective returns the path from the first directive line in r.
// Later matches are ignored; the binary promises at most one per invocation.
// A non-nil error means the scan stopped early and later lines were not
// considered.
func extractDirective(r io.Reader) (string, bool, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.HasPrefix(line, DirectivePrefix) {
			return line[len(DirectivePrefix):], true, nil
		}
	}
	return "", false, sc.Err()
}

// cleanup disposes of the capture buffer, preferring a reversible delete
// when the host provides one. Failures never affect the invocation outcome.
func cleanup(path string, stderr io.Writer) {
	if bin, err := exec.LookPath("trash"); err == nil {
		if exec.Command(bin, path).Run() == nil {
			return
		}
	}
	if bin, err := exec.LookPath("gio"); err == nil {
		if exec.Command(bin, "trash", path).Run() == nil {
			return
		}
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, "wtman: leaving capture buffer %s: %v\n", path, err)
	}
}
