package gitroot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository with README.md committed.
func initRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# repo\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "cli"), 0o755))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "ci", Email: "ci@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestResolveRoot_FromSubdir(t *testing.T) {
	dir := initRepo(t)

	root, err := ResolveRoot(filepath.Join(dir, "docs", "cli"))
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveRoot_OutsideRepo(t *testing.T) {
	dir := t.TempDir()

	root, err := ResolveRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestDirty(t *testing.T) {
	dir := initRepo(t)
	r, err := Open(dir)
	require.NoError(t, err)

	dirty, err := r.Dirty("README.md")
	require.NoError(t, err)
	assert.False(t, dirty, "freshly committed file")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# edited\n"), 0o644))
	dirty, err = r.Dirty(filepath.Join(r.Root, "README.md"))
	require.NoError(t, err)
	assert.True(t, dirty, "modified in worktree")
}

func TestDirty_Untracked(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "NOTES.md"), []byte("scratch\n"), 0o644))

	r, err := Open(dir)
	require.NoError(t, err)

	dirty, err := r.Dirty("NOTES.md")
	require.NoError(t, err)
	assert.False(t, dirty)
}
