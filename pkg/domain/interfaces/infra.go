package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . Git ClonedRepository Hosting

import (
	"context"

	"github.com/secmon-lab/relpack/pkg/domain/model"
	"github.com/secmon-lab/relpack/pkg/domain/types"
)

type Git interface {
	// CloneShallow clones a single branch into an existing directory. depth 0 means full history.
	CloneShallow(ctx context.Context, src model.RepositorySource, dir string, depth int) (ClonedRepository, error)
	// Open opens a clone that already exists on disk
	Open(ctx context.Context, dir string) (ClonedRepository, error)
}

// RemoteSource provides the origin remote URL of a local repository
type RemoteSource interface {
	OriginURL() (string, error)
}

type ClonedRepository interface {
	RemoteSource
	Path() string
	InitSubmodules(ctx context.Context) error
	CreateAndPushTag(ctx context.Context, tag model.ReleaseTag) error
	// ArchiveViaVCS packs committed, tracked content of HEAD only
	ArchiveViaVCS(ctx context.Context, outputDir, name string, format model.ArchiveFormat) (string, error)
}

type Hosting interface {
	// ParseIdentity derives owner/name from a remote URL without touching the network
	ParseIdentity(remoteURL string) (*model.RepositoryIdentity, error)
	ResolveIdentity(ctx context.Context, repo RemoteSource) (*model.RepositoryIdentity, error)
	CreateRelease(ctx context.Context, input *CreateReleaseInput) (*model.RemoteRelease, error)
	UploadAsset(ctx context.Context, input *UploadAssetInput) (*model.ReleaseAsset, error)
}

type CreateReleaseInput struct {
	Identity    *model.RepositoryIdentity
	Name        string
	Description string
	Tag         types.TagName
}

type UploadAssetInput struct {
	Release  *model.RemoteRelease
	FileName string
	FilePath string
	// ContentType is omitted from the upload when empty
	ContentType string
}
