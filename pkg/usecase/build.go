package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/interfaces"
	"github.com/secmon-lab/relpack/pkg/domain/model"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/infra/archive"
	"github.com/secmon-lab/relpack/pkg/infra/fsutil"
	"github.com/secmon-lab/relpack/pkg/infra/pattern"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
)

const gitDirName = ".git"

// Build clones input.Source, optionally tags it, cleans it and packs it into
// input.ReleaseDir/input.ReleaseName. Any failure aborts the run; artifacts produced by
// earlier steps are left in place.
func (x *UseCase) Build(ctx context.Context, input *model.BuildInput) (*model.BuildResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx, runID := withRun(ctx)
	result, _, err := x.build(ctx, input)
	if err != nil {
		return nil, err
	}
	result.RunID = runID

	logging.From(ctx).Info("build finished",
		slog.String("archive", result.Archive.Path()),
	)
	return result, nil
}

// withRun assigns a run ID to ctx and binds it to the context logger
func withRun(ctx context.Context) (context.Context, types.RunID) {
	runID, ctx := logging.CtxRunID(ctx)
	logger := logging.From(ctx).With(slog.String("run_id", string(runID)))
	return logging.With(ctx, logger), runID
}

func (x *UseCase) build(ctx context.Context, input *model.BuildInput) (*model.BuildResult, interfaces.ClonedRepository, error) {
	logger := logging.From(ctx)

	var patterns []string
	if input.CleanFile != "" {
		loaded, err := pattern.Load(input.CleanFile)
		if err != nil {
			return nil, nil, err
		}
		patterns = loaded
		logger.Debug("clean patterns loaded",
			slog.String("file", input.CleanFile),
			slog.Any("patterns", patterns),
		)
	}

	if input.OverlayDir != "" && !fsutil.IsDirectory(input.OverlayDir) {
		return nil, nil, goerr.Wrap(types.ErrNotFound, "overlay directory not found",
			goerr.T(types.ErrTagFileAccess),
			goerr.V("path", input.OverlayDir),
			goerr.V("reason", types.ReasonNotFound),
		)
	}

	if err := fsutil.PrepareDirectory(input.CloneDir); err != nil {
		return nil, nil, err
	}
	if err := fsutil.EnsureDirectory(input.ReleaseDir); err != nil {
		return nil, nil, err
	}

	repo, err := x.clients.Git().CloneShallow(ctx, input.Source, input.CloneDir, input.Depth)
	if err != nil {
		return nil, nil, err
	}

	if err := repo.InitSubmodules(ctx); err != nil {
		return nil, nil, err
	}

	if input.Tag != nil {
		if err := repo.CreateAndPushTag(ctx, *input.Tag); err != nil {
			return nil, nil, err
		}
	}

	result := &model.BuildResult{
		Archive: model.ReleaseArchive{
			Directory: input.ReleaseDir,
			FileName:  input.ReleaseName,
		},
		Tag: input.Tag,
	}

	if fsutil.Exists(result.Archive.Path()) {
		logger.Info("removing existing archive", slog.String("path", result.Archive.Path()))
		if err := fsutil.DeletePath(result.Archive.Path()); err != nil {
			return nil, nil, err
		}
	}

	switch input.Method {
	case model.ArchiveMethodVCS:
		if len(patterns) > 0 || input.OverlayDir != "" {
			logger.Warn("clean patterns and overlay are not applied to VCS archives")
		}
		if _, err := repo.ArchiveViaVCS(ctx, input.ReleaseDir, input.ReleaseName, input.Format); err != nil {
			return nil, nil, err
		}

	default:
		if err := cleanAndOverlay(ctx, repo.Path(), patterns, input.OverlayDir); err != nil {
			return nil, nil, err
		}

		var opts []archive.Option
		if !input.IncludeGitDir {
			opts = append(opts, archive.WithExcludeDirs(gitDirName))
		}
		if _, err := archive.Archive(repo.Path(), input.ReleaseDir, input.ReleaseName, opts...); err != nil {
			return nil, nil, err
		}
		logger.Info("archived working tree", slog.String("path", result.Archive.Path()))
	}

	return result, repo, nil
}

func cleanAndOverlay(ctx context.Context, dir string, patterns []string, overlayDir string) error {
	logger := logging.From(ctx)

	if len(patterns) > 0 {
		removed, err := fsutil.RemoveMatchingFiles(dir, patterns)
		if err != nil {
			return err
		}
		logger.Info("cleaned working tree",
			slog.String("dir", dir),
			slog.Int("removed", len(removed)),
		)
		for _, path := range removed {
			logger.Debug("removed file", slog.String("path", path))
		}
	}

	if overlayDir != "" {
		if err := fsutil.CopyTreeContentsInto(overlayDir, dir); err != nil {
			return err
		}
		logger.Info("overlay copied", slog.String("src", overlayDir), slog.String("dst", dir))
	}

	return nil
}
