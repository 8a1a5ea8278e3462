package usecase

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/interfaces"
	"github.com/secmon-lab/relpack/pkg/domain/model"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/infra/fsutil"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
)

// BuildAndRelease runs Build with a tag and publishes the archive as an asset of a new
// release for that tag. The hosting client and the source's repository identity are checked
// before anything is cloned or tagged.
func (x *UseCase) BuildAndRelease(ctx context.Context, input *model.ReleaseInput) (*model.BuildResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	hosting, err := x.hosting()
	if err != nil {
		return nil, err
	}
	// The clone's origin is the source URL, so this is the identity publish will resolve
	if _, err := hosting.ParseIdentity(input.Source.URL); err != nil {
		return nil, goerr.Wrap(err, "source repository cannot be released on the hosting platform",
			goerr.V("url", input.Source.URL),
		)
	}

	ctx, runID := withRun(ctx)
	result, repo, err := x.build(ctx, &input.BuildInput)
	if err != nil {
		return nil, err
	}
	result.RunID = runID

	release, asset, err := publish(ctx, hosting, repo, &publishTarget{
		tag:         input.Tag.Name,
		title:       input.ReleaseTitle,
		description: input.ReleaseDescription,
		contentType: input.ContentType,
		archive:     result.Archive,
	})
	if err != nil {
		return nil, err
	}
	result.Release = release
	result.Asset = asset

	logging.From(ctx).Info("release finished",
		slog.String("archive", result.Archive.Path()),
		slog.String("tag", input.Tag.Name.String()),
		slog.String("url", release.HTMLURL),
	)
	return result, nil
}

// Publish uploads the newest archive in input.ReleaseDir matching input.Pattern as the
// asset of a new release. The repository identity comes from the clone at input.RepoDir.
func (x *UseCase) Publish(ctx context.Context, input *model.PublishInput) (*model.BuildResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	hosting, err := x.hosting()
	if err != nil {
		return nil, err
	}

	ctx, runID := withRun(ctx)
	repo, err := x.clients.Git().Open(ctx, input.RepoDir)
	if err != nil {
		return nil, err
	}

	newest, err := fsutil.FindNewestFile(input.ReleaseDir, input.Pattern)
	if err != nil {
		return nil, err
	}
	archive := model.ReleaseArchive{
		Directory: filepath.Dir(newest),
		FileName:  filepath.Base(newest),
	}
	logging.From(ctx).Info("found archive to publish", slog.String("path", newest))

	release, asset, err := publish(ctx, hosting, repo, &publishTarget{
		tag:         input.Tag,
		title:       input.ReleaseTitle,
		description: input.ReleaseDescription,
		contentType: input.ContentType,
		archive:     archive,
	})
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("publish finished",
		slog.String("archive", archive.Path()),
		slog.String("tag", input.Tag.String()),
		slog.String("url", release.HTMLURL),
	)
	return &model.BuildResult{
		RunID:   runID,
		Archive: archive,
		Release: release,
		Asset:   asset,
	}, nil
}

type publishTarget struct {
	tag         types.TagName
	title       string
	description string
	contentType string
	archive     model.ReleaseArchive
}

func publish(ctx context.Context, hosting interfaces.Hosting, repo interfaces.RemoteSource, target *publishTarget) (*model.RemoteRelease, *model.ReleaseAsset, error) {
	identity, err := hosting.ResolveIdentity(ctx, repo)
	if err != nil {
		return nil, nil, err
	}

	release, err := hosting.CreateRelease(ctx, &interfaces.CreateReleaseInput{
		Identity:    identity,
		Name:        target.title,
		Description: target.description,
		Tag:         target.tag,
	})
	if err != nil {
		return nil, nil, err
	}

	asset, err := hosting.UploadAsset(ctx, &interfaces.UploadAssetInput{
		Release:     release,
		FileName:    target.archive.FileName,
		FilePath:    target.archive.Path(),
		ContentType: target.contentType,
	})
	if err != nil {
		return nil, nil, err
	}

	return release, asset, nil
}
