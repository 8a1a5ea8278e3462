package testutil_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/testutil"
)

func TestGetEnvOrSkip(t *testing.T) {
	t.Setenv("RELPACK_TEST_ENV", "value")
	gt.V(t, testutil.GetEnvOrSkip(t, "RELPACK_TEST_ENV")).Equal("value")
}

func TestLoadGitHubSandbox(t *testing.T) {
	t.Setenv("TEST_GITHUB_TOKEN", "ghp_sandbox")
	t.Setenv("TEST_GITHUB_REPO", "secmon-lab/relpack-sandbox")

	sandbox := testutil.LoadGitHubSandbox(t)
	gt.V(t, sandbox.Token).Equal(types.GitHubToken("ghp_sandbox"))
	gt.V(t, sandbox.Identity.Owner).Equal("secmon-lab")
	gt.V(t, sandbox.Identity.Name).Equal("relpack-sandbox")
}
