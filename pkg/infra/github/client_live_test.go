package github_test

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/relpack/pkg/domain/interfaces"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	githubinfra "github.com/secmon-lab/relpack/pkg/infra/github"
	"github.com/secmon-lab/relpack/pkg/utils/testutil"
	"golang.org/x/oauth2"
)

// Creates a real release and tag in TEST_GITHUB_REPO and deletes both afterwards
func TestLiveReleaseAndUpload(t *testing.T) {
	sandbox := testutil.LoadGitHubSandbox(t)
	ctx := context.Background()

	client := gt.R1(githubinfra.New(sandbox.Token)).NoError(t)
	tag := types.TagName(fmt.Sprintf("relpack-test-%d", time.Now().UnixNano()))

	release := gt.R1(client.CreateRelease(ctx, &interfaces.CreateReleaseInput{
		Identity:    &sandbox.Identity,
		Name:        tag.String(),
		Description: "created by relpack live test",
		Tag:         tag,
	})).NoError(t)

	t.Cleanup(func() {
		admin := github.NewClient(&http.Client{
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(sandbox.Token)}),
			},
		})
		id := sandbox.Identity
		if _, err := admin.Repositories.DeleteRelease(ctx, id.Owner, id.Name, release.ID); err != nil {
			t.Errorf("failed to delete release %d: %v", release.ID, err)
		}
		if _, err := admin.Git.DeleteRef(ctx, id.Owner, id.Name, "tags/"+tag.String()); err != nil {
			t.Errorf("failed to delete tag %s: %v", tag, err)
		}
	})

	gt.V(t, release.Tag).Equal(tag)
	gt.False(t, release.Draft)
	gt.False(t, release.Prerelease)
	gt.S(t, release.HTMLURL).Contains(sandbox.Identity.String())

	assetPath := filepath.Join(t.TempDir(), "archive-"+tag.String()+".zip")
	gt.NoError(t, os.WriteFile(assetPath, []byte("relpack live test"), 0644))

	asset := gt.R1(client.UploadAsset(ctx, &interfaces.UploadAssetInput{
		Release:     release,
		FileName:    filepath.Base(assetPath),
		FilePath:    assetPath,
		ContentType: "application/zip",
	})).NoError(t)
	gt.V(t, asset.Name).Equal(filepath.Base(assetPath))
	gt.V(t, asset.Size).Equal(len("relpack live test"))
}
