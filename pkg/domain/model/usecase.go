package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
)

// ArchiveMethod selects the packaging route
type ArchiveMethod string

const (
	// ArchiveMethodFiles archives whatever is on disk after cleaning
	ArchiveMethodFiles ArchiveMethod = "files"
	// ArchiveMethodVCS archives committed, tracked content of HEAD only. Clean patterns and the
	// overlay directory have no effect on it.
	ArchiveMethodVCS ArchiveMethod = "vcs"
)

type ArchiveFormat string

const (
	ArchiveFormatZip   ArchiveFormat = "zip"
	ArchiveFormatTar   ArchiveFormat = "tar"
	ArchiveFormatTarGz ArchiveFormat = "tar.gz"
)

func (x ArchiveFormat) Validate() error {
	switch x {
	case ArchiveFormatZip, ArchiveFormatTar, ArchiveFormatTarGz:
		return nil
	}
	return goerr.New("unsupported archive format",
		goerr.T(types.ErrTagConfiguration),
		goerr.V("format", x),
	)
}

// Extension returns the file suffix including the leading dot
func (x ArchiveFormat) Extension() string {
	return "." + string(x)
}

// DefaultArchiveName is the date stamped name used when no release name is given,
// e.g. archive-20261017.zip
func DefaultArchiveName(now time.Time, format ArchiveFormat) string {
	return "archive-" + now.Format("20060102") + format.Extension()
}

// TagArchiveName is the default archive name of a tagged release, e.g. archive-v1.2.0.zip
func TagArchiveName(tag types.TagName, format ArchiveFormat) string {
	return "archive-" + string(tag) + format.Extension()
}

// BuildInput is everything the Release Orchestrator needs for one clone→clean→archive run
type BuildInput struct {
	Source      RepositorySource
	CloneDir    string
	ReleaseDir  string
	ReleaseName string

	// CleanFile is a pattern list file. Empty means no cleaning.
	CleanFile string
	// OverlayDir contents are copied into the clone after cleaning. Empty means none.
	OverlayDir string

	Depth         int
	Method        ArchiveMethod
	Format        ArchiveFormat
	IncludeGitDir bool

	// Tag is created and pushed right after cloning when set
	Tag *ReleaseTag
}

func (x *BuildInput) Validate() error {
	if err := x.Source.Validate(); err != nil {
		return err
	}
	if x.CloneDir == "" {
		return goerr.New("clone directory is required", goerr.T(types.ErrTagConfiguration))
	}
	if x.ReleaseDir == "" {
		return goerr.New("release directory is required", goerr.T(types.ErrTagConfiguration))
	}
	if x.ReleaseName == "" {
		return goerr.New("release name is required", goerr.T(types.ErrTagConfiguration))
	}
	if x.Depth < 0 {
		return goerr.New("clone depth must not be negative",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("depth", x.Depth),
		)
	}

	switch x.Method {
	case ArchiveMethodFiles:
		if x.Format != ArchiveFormatZip {
			return goerr.New("files archive method only supports zip",
				goerr.T(types.ErrTagConfiguration),
				goerr.V("format", x.Format),
			)
		}
	case ArchiveMethodVCS:
		if err := x.Format.Validate(); err != nil {
			return err
		}
	default:
		return goerr.New("unsupported archive method",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("method", x.Method),
		)
	}

	if x.Tag != nil {
		if err := x.Tag.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ReleaseInput extends BuildInput with the publish step. Tag is mandatory.
type ReleaseInput struct {
	BuildInput
	ReleaseTitle       string
	ReleaseDescription string
	ContentType        string
}

func (x *ReleaseInput) Validate() error {
	if x.Tag == nil {
		return goerr.New("tag is required for release", goerr.T(types.ErrTagConfiguration))
	}
	if err := x.BuildInput.Validate(); err != nil {
		return err
	}
	if x.ReleaseTitle == "" {
		return goerr.New("release title is required", goerr.T(types.ErrTagConfiguration))
	}
	if x.ReleaseDescription == "" {
		return goerr.New("release description is required", goerr.T(types.ErrTagConfiguration))
	}
	return nil
}

// PublishInput publishes an already built archive from an existing clone
type PublishInput struct {
	RepoDir            string
	ReleaseDir         string
	Pattern            string
	Tag                types.TagName
	ReleaseTitle       string
	ReleaseDescription string
	ContentType        string
}

func (x *PublishInput) Validate() error {
	if x.RepoDir == "" {
		return goerr.New("repository directory is required", goerr.T(types.ErrTagConfiguration))
	}
	if x.ReleaseDir == "" {
		return goerr.New("release directory is required", goerr.T(types.ErrTagConfiguration))
	}
	if x.Pattern == "" {
		return goerr.New("archive pattern is required", goerr.T(types.ErrTagConfiguration))
	}
	if x.Tag == "" {
		return goerr.New("tag is required", goerr.T(types.ErrTagConfiguration))
	}
	if x.ReleaseTitle == "" {
		return goerr.New("release title is required", goerr.T(types.ErrTagConfiguration))
	}
	if x.ReleaseDescription == "" {
		return goerr.New("release description is required", goerr.T(types.ErrTagConfiguration))
	}
	return nil
}

// BuildResult is what a Build or BuildAndRelease run leaves behind
type BuildResult struct {
	RunID   types.RunID
	Archive ReleaseArchive
	Tag     *ReleaseTag
	Release *RemoteRelease
	Asset   *ReleaseAsset
}
