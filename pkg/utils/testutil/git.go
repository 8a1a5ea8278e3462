package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/gt"
)

// GitRepo is a local repository usable as a clone source through a file:// URL
type GitRepo struct {
	Dir  string
	Repo *git.Repository
	Head plumbing.Hash
}

func (x *GitRepo) URL() string {
	return "file://" + filepath.ToSlash(x.Dir)
}

// NewGitRepo creates a repository in a temp directory with files committed on branch "main"
func NewGitRepo(t *testing.T, files map[string]string) *GitRepo {
	t.Helper()
	dir := t.TempDir()
	repo := gt.R1(git.PlainInit(dir, false)).NoError(t)
	wt := gt.R1(repo.Worktree()).NoError(t)

	for name, body := range files {
		path := filepath.Join(dir, name)
		gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		gt.NoError(t, os.WriteFile(path, []byte(body), 0644))
		gt.R1(wt.Add(name)).NoError(t)
	}

	x := &GitRepo{Dir: dir, Repo: repo}
	x.commit(t, wt, "initial commit")
	return x
}

func (x *GitRepo) commit(t *testing.T, wt *git.Worktree, msg string) {
	t.Helper()
	hash := gt.R1(wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "tester",
			Email: "tester@example.com",
			When:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		},
	})).NoError(t)

	gt.NoError(t, x.Repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName("main"), hash)))
	x.Head = hash
}

// AddSubmodule commits a submodule at path that points at the current head of sub
func (x *GitRepo) AddSubmodule(t *testing.T, path string, sub *GitRepo) {
	t.Helper()
	wt := gt.R1(x.Repo.Worktree()).NoError(t)

	modules := fmt.Sprintf("[submodule %q]\n\tpath = %s\n\turl = %s\n", path, path, sub.URL())
	gt.NoError(t, os.WriteFile(filepath.Join(x.Dir, ".gitmodules"), []byte(modules), 0644))
	gt.R1(wt.Add(".gitmodules")).NoError(t)

	idx := gt.R1(x.Repo.Storer.Index()).NoError(t)
	idx.Entries = append(idx.Entries, &index.Entry{
		Name: path,
		Mode: filemode.Submodule,
		Hash: sub.Head,
	})
	gt.NoError(t, x.Repo.Storer.SetIndex(idx))

	x.commit(t, wt, "add submodule "+path)
}

// TagExists reports whether the repository has tag name
func (x *GitRepo) TagExists(t *testing.T, name string) bool {
	t.Helper()
	_, err := x.Repo.Tag(name)
	return err == nil
}
