package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/relpack/pkg/domain/model"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/infra"
	"github.com/secmon-lab/relpack/pkg/infra/archive"
	"github.com/secmon-lab/relpack/pkg/infra/fsutil"
	"github.com/secmon-lab/relpack/pkg/usecase"
	"github.com/secmon-lab/relpack/pkg/utils/testutil"
)

func writeCleanFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clean_patterns.txt")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestBuildWithLocalRepository(t *testing.T) {
	src := testutil.NewGitRepo(t, map[string]string{
		"README.md":       "# proj",
		"main.go":         "package main",
		"cache.tmp":       "x",
		"nested/data.tmp": "y",
		"nested/keep.txt": "z",
	})
	uc := usecase.New(infra.New())
	ctx := testContext()

	t.Run("clone, clean and archive", func(t *testing.T) {
		input := newBuildInput(t)
		input.Source = model.RepositorySource{URL: src.URL(), Branch: "main"}
		input.Depth = 0
		input.CleanFile = writeCleanFile(t, "# temporary files\n*.tmp\n")

		// stale content in a reused clone directory must not survive
		writeFiles(t, input.CloneDir, map[string]string{"stale.txt": "old"})

		result := gt.R1(uc.Build(ctx, input)).NoError(t)
		gt.V(t, result.Archive.FileName).Equal("archive-20261017.zip")
		gt.V(t, result.RunID).NotEqual(types.RunID(""))
		gt.True(t, fsutil.IsFile(result.Archive.Path()))

		names := gt.R1(archive.List(result.Archive.Path())).NoError(t)
		gt.V(t, names).Equal([]string{"README.md", "main.go", "nested/keep.txt"})

		gt.False(t, fsutil.Exists(filepath.Join(input.CloneDir, "stale.txt")))
		gt.False(t, fsutil.Exists(filepath.Join(input.CloneDir, "cache.tmp")))
		gt.True(t, fsutil.IsDirectory(filepath.Join(input.CloneDir, "nested")))
	})

	t.Run("include .git directory", func(t *testing.T) {
		input := newBuildInput(t)
		input.Source = model.RepositorySource{URL: src.URL(), Branch: "main"}
		input.Depth = 0
		input.IncludeGitDir = true

		result := gt.R1(uc.Build(ctx, input)).NoError(t)
		names := gt.R1(archive.List(result.Archive.Path())).NoError(t)
		gt.True(t, slices.Contains(names, ".git/HEAD"))
	})

	t.Run("clone failure produces no archive", func(t *testing.T) {
		input := newBuildInput(t)
		input.Source = model.RepositorySource{URL: src.URL(), Branch: "no-such-branch"}
		input.Depth = 0

		_, err := uc.Build(ctx, input)
		gt.True(t, goerr.HasTag(err, types.ErrTagVCS))
		gt.False(t, fsutil.Exists(filepath.Join(input.ReleaseDir, input.ReleaseName)))
	})

	t.Run("vcs method archives committed content only", func(t *testing.T) {
		input := newBuildInput(t)
		input.Source = model.RepositorySource{URL: src.URL(), Branch: "main"}
		input.Depth = 0
		input.Method = model.ArchiveMethodVCS
		input.CleanFile = writeCleanFile(t, "*.tmp\n")

		result := gt.R1(uc.Build(ctx, input)).NoError(t)
		names := gt.R1(archive.List(result.Archive.Path())).NoError(t)
		gt.True(t, slices.Contains(names, "cache.tmp"))
		gt.False(t, slices.Contains(names, ".git/HEAD"))
	})
}

func TestBuild(t *testing.T) {
	ctx := testContext()

	t.Run("invalid input does not clone", func(t *testing.T) {
		git, _ := newGitMock(t, nil)
		uc := usecase.New(infra.New(infra.WithGit(git)))

		input := newBuildInput(t)
		input.Source.Branch = ""
		_, err := uc.Build(ctx, input)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfiguration))
		gt.A(t, git.CloneShallowCalls()).Length(0)
	})

	t.Run("missing clean file fails before cloning", func(t *testing.T) {
		git, _ := newGitMock(t, nil)
		uc := usecase.New(infra.New(infra.WithGit(git)))

		input := newBuildInput(t)
		input.CleanFile = filepath.Join(t.TempDir(), "missing.txt")
		_, err := uc.Build(ctx, input)
		gt.True(t, goerr.HasTag(err, types.ErrTagFileAccess))
		gt.A(t, git.CloneShallowCalls()).Length(0)
	})

	t.Run("missing overlay directory fails before cloning", func(t *testing.T) {
		git, _ := newGitMock(t, nil)
		uc := usecase.New(infra.New(infra.WithGit(git)))

		input := newBuildInput(t)
		input.OverlayDir = filepath.Join(t.TempDir(), "missing")
		_, err := uc.Build(ctx, input)
		gt.True(t, goerr.HasTag(err, types.ErrTagFileAccess))
		gt.A(t, git.CloneShallowCalls()).Length(0)
	})

	t.Run("clone directory that is a file is rejected", func(t *testing.T) {
		git, _ := newGitMock(t, nil)
		uc := usecase.New(infra.New(infra.WithGit(git)))

		input := newBuildInput(t)
		gt.NoError(t, os.WriteFile(input.CloneDir, []byte("file"), 0644))
		_, err := uc.Build(ctx, input)
		gt.True(t, goerr.HasTag(err, types.ErrTagFileAccess))
		gt.A(t, git.CloneShallowCalls()).Length(0)

		body := gt.R1(os.ReadFile(input.CloneDir)).NoError(t)
		gt.V(t, string(body)).Equal("file")
	})

	t.Run("clone arguments are passed through", func(t *testing.T) {
		git, repo := newGitMock(t, map[string]string{"a.txt": "a"})
		uc := usecase.New(infra.New(infra.WithGit(git)))

		input := newBuildInput(t)
		input.Depth = 3
		gt.R1(uc.Build(ctx, input)).NoError(t)

		calls := git.CloneShallowCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].Src).Equal(input.Source)
		gt.V(t, calls[0].Dir).Equal(input.CloneDir)
		gt.V(t, calls[0].Depth).Equal(3)
		gt.A(t, repo.InitSubmodulesCalls()).Length(1)
		gt.A(t, repo.CreateAndPushTagCalls()).Length(0)
	})

	t.Run("overlay is copied after cleaning", func(t *testing.T) {
		git, _ := newGitMock(t, map[string]string{"app.js": "x", "config.tmp": "dev"})
		uc := usecase.New(infra.New(infra.WithGit(git)))

		overlay := t.TempDir()
		writeFiles(t, overlay, map[string]string{"config.tmp": "prod", "extra/env.json": "{}"})

		input := newBuildInput(t)
		input.CleanFile = writeCleanFile(t, "*.tmp")
		input.OverlayDir = overlay

		result := gt.R1(uc.Build(ctx, input)).NoError(t)
		names := gt.R1(archive.List(result.Archive.Path())).NoError(t)
		gt.V(t, names).Equal([]string{"app.js", "config.tmp", "extra/env.json"})

		body := gt.R1(os.ReadFile(filepath.Join(input.CloneDir, "config.tmp"))).NoError(t)
		gt.V(t, string(body)).Equal("prod")
	})

	t.Run("existing archive is replaced", func(t *testing.T) {
		git, _ := newGitMock(t, map[string]string{"new.txt": "new"})
		uc := usecase.New(infra.New(infra.WithGit(git)))

		input := newBuildInput(t)
		writeFiles(t, input.ReleaseDir, map[string]string{
			input.ReleaseName: "not a zip",
			"other.zip":       "kept",
		})

		result := gt.R1(uc.Build(ctx, input)).NoError(t)
		names := gt.R1(archive.List(result.Archive.Path())).NoError(t)
		gt.V(t, names).Equal([]string{"new.txt"})
		gt.True(t, fsutil.IsFile(filepath.Join(input.ReleaseDir, "other.zip")))
	})

	t.Run("tag is pushed before archiving", func(t *testing.T) {
		git, repo := newGitMock(t, map[string]string{"a.txt": "a"})
		uc := usecase.New(infra.New(infra.WithGit(git)))

		input := newBuildInput(t)
		input.Tag = &model.ReleaseTag{Name: "v1.0.0", Description: "first release"}

		var archivedBeforeTag bool
		repo.CreateAndPushTagFunc = func(ctx context.Context, tag model.ReleaseTag) error {
			archivedBeforeTag = fsutil.Exists(filepath.Join(input.ReleaseDir, input.ReleaseName))
			return nil
		}

		result := gt.R1(uc.Build(ctx, input)).NoError(t)
		gt.False(t, archivedBeforeTag)
		calls := repo.CreateAndPushTagCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].Tag).Equal(*input.Tag)
		gt.V(t, result.Tag).Equal(input.Tag)
	})

	t.Run("tag failure produces no archive", func(t *testing.T) {
		git, repo := newGitMock(t, map[string]string{"a.txt": "a"})
		repo.CreateAndPushTagFunc = func(ctx context.Context, tag model.ReleaseTag) error {
			return goerr.New("push rejected", goerr.T(types.ErrTagVCS))
		}
		uc := usecase.New(infra.New(infra.WithGit(git)))

		input := newBuildInput(t)
		input.Tag = &model.ReleaseTag{Name: "v1.0.0", Description: "first release"}

		_, err := uc.Build(ctx, input)
		gt.True(t, goerr.HasTag(err, types.ErrTagVCS))
		gt.False(t, fsutil.Exists(filepath.Join(input.ReleaseDir, input.ReleaseName)))
	})

	t.Run("vcs method skips cleaning", func(t *testing.T) {
		git, repo := newGitMock(t, map[string]string{"a.tmp": "a"})
		repo.ArchiveViaVCSFunc = func(ctx context.Context, outputDir, name string, format model.ArchiveFormat) (string, error) {
			path := filepath.Join(outputDir, name)
			return path, os.WriteFile(path, []byte("tar"), 0644)
		}
		uc := usecase.New(infra.New(infra.WithGit(git)))

		input := newBuildInput(t)
		input.Method = model.ArchiveMethodVCS
		input.Format = model.ArchiveFormatTarGz
		input.ReleaseName = "archive.tar.gz"
		input.CleanFile = writeCleanFile(t, "*.tmp")

		result := gt.R1(uc.Build(ctx, input)).NoError(t)
		calls := repo.ArchiveViaVCSCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].OutputDir).Equal(input.ReleaseDir)
		gt.V(t, calls[0].Name).Equal("archive.tar.gz")
		gt.V(t, calls[0].Format).Equal(model.ArchiveFormatTarGz)
		gt.V(t, result.Archive.Path()).Equal(filepath.Join(input.ReleaseDir, "archive.tar.gz"))
		gt.True(t, fsutil.IsFile(filepath.Join(input.CloneDir, "a.tmp")))
	})
}
