// Package git shells out to the git binary for the handful of repository
// operations the version workflow needs. It is orchestration-only: the fork
// core consumes a resolved tag string and never touches a repository.
package git

import (
	"context"
	"os/exec"
	"strings"

	"golang.org/x/xerrors"
)

// Repo is a working copy at Dir ("" means the process working directory).
type Repo struct {
	Dir string
}

func (r Repo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", xerrors.Errorf("git %s: %w (%s)", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// Tags lists all tags of the repository.
func (r Repo) Tags(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "tag")
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}

// CurrentBranch returns the checked-out branch name, "" in detached state.
func (r Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsDirty reports whether the working copy has uncommitted changes.
func (r Repo) IsDirty(ctx context.Context) (bool, error) {
	out, err := r.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Stash saves uncommitted changes.
func (r Repo) Stash(ctx context.Context) error {
	_, err := r.run(ctx, "stash")
	return err
}

// Checkout switches the working copy to ref.
func (r Repo) Checkout(ctx context.Context, ref string) error {
	_, err := r.run(ctx, "checkout", ref)
	return err
}
