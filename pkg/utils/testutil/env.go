package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/secmon-lab/relpack/pkg/domain/model"
	"github.com/secmon-lab/relpack/pkg/domain/types"
)

// GetEnvOrSkip returns the value of key and skips the test when it is unset
func GetEnvOrSkip(t *testing.T, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s is not set, skipping test", key)
	}
	return value
}

// GitHubSandbox is a repository that live tests may create releases and tags in
type GitHubSandbox struct {
	Token    types.GitHubToken
	Identity model.RepositoryIdentity
}

// LoadGitHubSandbox reads TEST_GITHUB_TOKEN and TEST_GITHUB_REPO ("owner/name"). The test is
// skipped unless both are set, and fails on a malformed repository name.
func LoadGitHubSandbox(t *testing.T) *GitHubSandbox {
	t.Helper()
	token := GetEnvOrSkip(t, "TEST_GITHUB_TOKEN")
	repo := GetEnvOrSkip(t, "TEST_GITHUB_REPO")

	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		t.Fatalf("TEST_GITHUB_REPO must be owner/name, got %q", repo)
	}

	return &GitHubSandbox{
		Token:    types.GitHubToken(token),
		Identity: model.RepositoryIdentity{Owner: owner, Name: name},
	}
}
