package model

import (
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
)

// ReleaseArchive is the packaged output of a run
type ReleaseArchive struct {
	Directory string
	FileName  string
}

func (x ReleaseArchive) Path() string {
	return filepath.Join(x.Directory, x.FileName)
}

// ReleaseTag is an annotated tag created at the head of a clone and pushed to origin
type ReleaseTag struct {
	Name        types.TagName
	Description string
}

func (x *ReleaseTag) Validate() error {
	if x.Name == "" {
		return goerr.New("tag name is required", goerr.T(types.ErrTagConfiguration))
	}
	if x.Description == "" {
		return goerr.New("tag description is required",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("tag", x.Name),
		)
	}
	return nil
}

// RemoteRelease is a release object on the hosting platform
type RemoteRelease struct {
	ID          int64
	Tag         types.TagName
	Name        string
	Description string
	Draft       bool
	Prerelease  bool
	HTMLURL     string
	Identity    RepositoryIdentity
}

// ReleaseAsset is a file attached to a RemoteRelease
type ReleaseAsset struct {
	ID          int64
	Name        string
	ContentType string
	Size        int
	DownloadURL string
}
