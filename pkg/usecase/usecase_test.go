package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/relpack/pkg/domain/interfaces"
	"github.com/secmon-lab/relpack/pkg/domain/mock"
	"github.com/secmon-lab/relpack/pkg/domain/model"
	"github.com/secmon-lab/relpack/pkg/infra"
	"github.com/secmon-lab/relpack/pkg/usecase"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
)

var testNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)

func testContext() context.Context {
	return logging.CtxWithTime(context.Background(), func() time.Time { return testNow })
}

func TestNew(t *testing.T) {
	uc := usecase.New(infra.New())
	var _ interfaces.UseCase = uc
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(dir, name)
		gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		gt.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}
}

// newGitMock returns a git mock whose clone writes files into the target directory
func newGitMock(t *testing.T, files map[string]string) (*mock.GitMock, *mock.ClonedRepositoryMock) {
	t.Helper()
	repo := &mock.ClonedRepositoryMock{
		InitSubmodulesFunc:   func(ctx context.Context) error { return nil },
		CreateAndPushTagFunc: func(ctx context.Context, tag model.ReleaseTag) error { return nil },
		OriginURLFunc: func() (string, error) {
			return "https://github.com/secmon-lab/relpack.git", nil
		},
	}
	git := &mock.GitMock{
		CloneShallowFunc: func(ctx context.Context, src model.RepositorySource, dir string, depth int) (interfaces.ClonedRepository, error) {
			writeFiles(t, dir, files)
			repo.PathFunc = func() string { return dir }
			return repo, nil
		},
		OpenFunc: func(ctx context.Context, dir string) (interfaces.ClonedRepository, error) {
			repo.PathFunc = func() string { return dir }
			return repo, nil
		},
	}
	return git, repo
}

func newBuildInput(t *testing.T) *model.BuildInput {
	t.Helper()
	root := t.TempDir()
	return &model.BuildInput{
		Source:      model.RepositorySource{URL: "https://github.com/secmon-lab/relpack.git", Branch: "main"},
		CloneDir:    filepath.Join(root, "clone"),
		ReleaseDir:  filepath.Join(root, "release"),
		ReleaseName: model.DefaultArchiveName(testNow, model.ArchiveFormatZip),
		Depth:       1,
		Method:      model.ArchiveMethodFiles,
		Format:      model.ArchiveFormatZip,
	}
}
