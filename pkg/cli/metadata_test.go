package cli_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/relpack/pkg/cli"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/testutil"
)

func annotate(t *testing.T, repo *testutil.GitRepo, name, message string) {
	t.Helper()
	gt.R1(repo.Repo.CreateTag(name, repo.Head, &git.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  "tester",
			Email: "tester@example.com",
			When:  time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
		},
		Message: message,
	})).NoError(t)
}

func TestDetectHeadTag(t *testing.T) {
	ctx := context.Background()

	t.Run("annotated tag carries its message", func(t *testing.T) {
		repo := testutil.NewGitRepo(t, map[string]string{"a.txt": "a"})
		annotate(t, repo, "v1.0.0", "first release\n")

		tag := gt.R1(cli.DetectHeadTag(ctx, repo.Dir)).NoError(t)
		gt.V(t, tag.Name).Equal(types.TagName("v1.0.0"))
		gt.V(t, tag.Message).Equal("first release")
	})

	t.Run("lightweight tag has no message", func(t *testing.T) {
		repo := testutil.NewGitRepo(t, map[string]string{"a.txt": "a"})
		gt.R1(repo.Repo.CreateTag("nightly", repo.Head, nil)).NoError(t)

		tag := gt.R1(cli.DetectHeadTag(ctx, repo.Dir)).NoError(t)
		gt.V(t, tag.Name).Equal(types.TagName("nightly"))
		gt.V(t, tag.Message).Equal("")
	})

	t.Run("greatest name wins", func(t *testing.T) {
		repo := testutil.NewGitRepo(t, map[string]string{"a.txt": "a"})
		annotate(t, repo, "v1.0.0", "one")
		annotate(t, repo, "v1.0.1", "two")

		tag := gt.R1(cli.DetectHeadTag(ctx, repo.Dir)).NoError(t)
		gt.V(t, tag.Name).Equal(types.TagName("v1.0.1"))
	})

	t.Run("no tag at HEAD", func(t *testing.T) {
		repo := testutil.NewGitRepo(t, map[string]string{"a.txt": "a"})

		_, err := cli.DetectHeadTag(ctx, repo.Dir)
		gt.True(t, goerr.HasTag(err, types.ErrTagVCS))
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := cli.DetectHeadTag(ctx, t.TempDir())
		gt.True(t, goerr.HasTag(err, types.ErrTagVCS))
	})
}
