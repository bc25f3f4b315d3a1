// Package git runs the git executable for the renderer checkout.
//
// Every command runs in an explicit directory and returns trimmed stdout.
// Failures come back as *output.ExitError with the system exit code, so
// commands can return them as-is:
//
//	out, err := git.Run(ctx, dir, "status", "--short")
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/gorewood/lunchlady/internal/output"
)

// Run executes git with args in dir. An empty dir uses the working
// directory.
func Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git "+args[0]+" failed: "+msg, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Available reports whether a git executable is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether dir is the top level of a git work tree. A .git
// directory or a bare repository is not a work tree.
func IsRepo(ctx context.Context, dir string) bool {
	// Prints "true" then an empty prefix at the top level only.
	out, err := Run(ctx, dir, "rev-parse", "--is-inside-work-tree", "--show-prefix")
	return err == nil && out == "true"
}

// CurrentBranch returns the branch checked out in dir.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	return Run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
}

// HEAD returns the commit checked out in dir.
func HEAD(ctx context.Context, dir string) (string, error) {
	return Run(ctx, dir, "rev-parse", "HEAD")
}

// Clone clones remote into dir with branch checked out.
func Clone(ctx context.Context, remote, branch, dir string) error {
	_, err := Run(ctx, "", "clone", "--branch", branch, "--", remote, dir)
	return err
}

// Checkout switches dir to branch, creating a tracking branch from origin
// when it only exists there.
func Checkout(ctx context.Context, dir, branch string) error {
	if _, err := Run(ctx, dir, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch); err == nil {
		_, err := Run(ctx, dir, "checkout", branch)
		return err
	}
	_, err := Run(ctx, dir, "checkout", "-b", branch, "--track", "origin/"+branch)
	return err
}

// Fetch fetches from remote in dir.
func Fetch(ctx context.Context, dir, remote string) error {
	_, err := Run(ctx, dir, "fetch", remote)
	return err
}

// Merge merges ref into the current branch of dir without opening an
// editor.
func Merge(ctx context.Context, dir, ref string) error {
	_, err := Run(ctx, dir, "merge", "--no-edit", ref)
	return err
}
