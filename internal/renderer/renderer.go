// Package renderer keeps the local checkout of the site renderer current.
package renderer

import (
	"context"
	"fmt"

	"github.com/gorewood/lunchlady/internal/fsutil"
	"github.com/gorewood/lunchlady/internal/git"
	"github.com/gorewood/lunchlady/internal/output"
)

// Result describes what FetchOrUpdate did.
type Result struct {
	Dir    string `json:"dir"`
	Remote string `json:"remote"`
	Branch string `json:"branch"`
	Cloned bool   `json:"cloned"`
	Head   string `json:"head"`
}

// FetchOrUpdate makes dir a checkout of branch from remote. A missing or
// empty dir is cloned into; an existing checkout is fetched, switched to
// branch and merged with origin/branch. Any other existing directory is
// refused.
func FetchOrUpdate(ctx context.Context, dir, remote, branch string, r output.Reporter) (Result, error) {
	res := Result{Dir: dir, Remote: remote, Branch: branch}

	empty, err := fsutil.IsEmptyDir(dir)
	if err != nil {
		return res, output.NewSystemErrorWithCause("checking renderer directory "+dir, err)
	}

	switch {
	case empty:
		r.Info("Cloning %s (%s) into %s", remote, branch, dir)
		if err := git.Clone(ctx, remote, branch, dir); err != nil {
			return res, err
		}
		res.Cloned = true
	case git.IsRepo(ctx, dir):
		r.Info("Updating %s from branch %s", dir, branch)
		if err := git.Fetch(ctx, dir, "origin"); err != nil {
			return res, err
		}
		if current, err := git.CurrentBranch(ctx, dir); err == nil && current != branch {
			r.Info("Switching %s from %s to %s", dir, current, branch)
		}
		if err := git.Checkout(ctx, dir, branch); err != nil {
			return res, err
		}
		r.Info("Merging with origin/%s", branch)
		if err := git.Merge(ctx, dir, "origin/"+branch); err != nil {
			return res, err
		}
	default:
		return res, output.NewUserError(fmt.Sprintf("%s exists but is not a git checkout; move it aside or configure another renderer directory", dir))
	}

	head, err := git.HEAD(ctx, dir)
	if err != nil {
		return res, err
	}
	res.Head = head
	return res, nil
}
