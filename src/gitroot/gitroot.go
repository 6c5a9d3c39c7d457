// Package gitroot resolves paths against the enclosing git worktree.
package gitroot

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Repo is an opened worktree.
type Repo struct {
	Root string
	repo *git.Repository
}

// Open finds the worktree containing dir, walking up to the nearest .git.
// Returns git.ErrRepositoryNotExists outside a repository.
func Open(dir string) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}
	return &Repo{Root: wt.Filesystem.Root(), repo: repo}, nil
}

// ResolveRoot returns the worktree root containing dir, or dir itself when
// it is not inside a repository.
func ResolveRoot(dir string) (string, error) {
	r, err := Open(dir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return filepath.Abs(dir)
		}
		return "", err
	}
	return r.Root, nil
}

// Dirty reports whether path has uncommitted modifications, staged or not.
// Untracked files are not dirty: there is nothing committed to lose.
func (r *Repo) Dirty(path string) (bool, error) {
	rel, err := r.rel(path)
	if err != nil {
		return false, err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return false, err
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}

	st, ok := status[rel]
	if !ok {
		return false, nil
	}
	if st.Worktree == git.Untracked && st.Staging == git.Untracked {
		return false, nil
	}
	return st.Worktree != git.Unmodified || st.Staging != git.Unmodified, nil
}

func (r *Repo) rel(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.Root, path)
	}
	rel, err := filepath.Rel(r.Root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
