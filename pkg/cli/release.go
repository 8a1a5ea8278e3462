package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/relpack/pkg/cli/config"
	"github.com/secmon-lab/relpack/pkg/domain/model"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type releaseFlags struct {
	title       string
	description string
	contentType string
}

func (x *releaseFlags) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "release-title",
			Usage:       "Release name on GitHub (default: tag name)",
			Category:    "Release",
			Destination: &x.title,
		},
		&cli.StringFlag{
			Name:        "release-description",
			Usage:       "Release notes on GitHub (default: tag description)",
			Category:    "Release",
			Destination: &x.description,
		},
		&cli.StringFlag{
			Name:        "content-type",
			Usage:       "Content type of the uploaded asset. Inferred when empty",
			Category:    "Release",
			Destination: &x.contentType,
		},
	}
}

func (x *releaseFlags) resolve(tag types.TagName, tagDescription string) (title, description string) {
	title, description = x.title, x.description
	if title == "" {
		title = tag.String()
	}
	if description == "" {
		description = tagDescription
	}
	return title, description
}

func buildAndReleaseCommand() *cli.Command {
	var (
		build   buildFlags
		release releaseFlags
		git     gitFlags
		github  config.GitHub
		targets config.Target
		target  string
	)

	return &cli.Command{
		Name:    "build-and-release",
		Aliases: []string{"build_and_release", "release"},
		Usage:   "Build a release archive, tag the repository and publish the archive on GitHub",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "target",
				Usage:       "Use the defaults of a fixed repository [frontend|backend]",
				Destination: &target,
			},
		}, build.Flags(), release.Flags(), targets.Flags(), git.Flags(), github.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			defaults := genericDefaults
			if target != "" {
				loaded, err := targets.Load(config.TargetName(target))
				if err != nil {
					return err
				}
				defaults = *loaded
			}
			// A tagged release names its archive after the tag unless told otherwise
			if build.releaseName == "" && target == "" && build.tagName != "" {
				build.releaseName = model.TagArchiveName(types.TagName(build.tagName), model.ArchiveFormat(strings.ToLower(build.format)))
			}

			input := &model.ReleaseInput{
				BuildInput:  *build.buildInput(ctx, &defaults),
				ContentType: release.contentType,
			}
			if input.Tag != nil {
				input.ReleaseTitle, input.ReleaseDescription = release.resolve(input.Tag.Name, input.Tag.Description)
			}
			if err := input.Validate(); err != nil {
				return err
			}

			logging.From(ctx).Info("starting build and release",
				slog.String("repo", input.Source.URL),
				slog.String("branch", input.Source.Branch.String()),
				slog.String("tag", input.Tag.Name.String()),
				slog.Any("github", &github),
			)

			uc, err := newUseCase(ctx, &github, &git, true)
			if err != nil {
				return err
			}
			if _, err := uc.BuildAndRelease(ctx, input); err != nil {
				return err
			}
			return nil
		},
	}
}

func publishCommand() *cli.Command {
	var (
		dir        string
		releaseDir string
		pattern    string
		tag        string
		release    releaseFlags
		git        gitFlags
		github     config.GitHub
	)

	return &cli.Command{
		Name:  "publish",
		Usage: "Publish the newest archive in the release directory as a GitHub release",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "Local clone whose origin identifies the GitHub repository",
				Value:       ".",
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "release-target-dir",
				Aliases:     []string{"t", "release_target_dir"},
				Usage:       "Directory holding built archives",
				Sources:     cli.EnvVars("RELPACK_RELEASE_DIR"),
				Value:       config.DefaultReleaseDir,
				Destination: &releaseDir,
			},
			&cli.StringFlag{
				Name:        "pattern",
				Usage:       "Glob pattern selecting archives; the newest match is published",
				Value:       "*.zip",
				Destination: &pattern,
			},
			&cli.StringFlag{
				Name:        "tag",
				Usage:       "Existing tag to release (default: the tag at HEAD of --dir)",
				Destination: &tag,
			},
		}, release.Flags(), git.Flags(), github.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			input := &model.PublishInput{
				RepoDir:     dir,
				ReleaseDir:  releaseDir,
				Pattern:     pattern,
				Tag:         types.TagName(tag),
				ContentType: release.contentType,
			}

			var tagDescription string
			if input.Tag == "" {
				head, err := DetectHeadTag(ctx, dir)
				if err != nil {
					return goerr.Wrap(err, "--tag is not given and no tag points at HEAD",
						goerr.T(types.ErrTagConfiguration),
					)
				}
				input.Tag = head.Name
				tagDescription = head.Message
			}
			input.ReleaseTitle, input.ReleaseDescription = release.resolve(input.Tag, tagDescription)
			if input.ReleaseDescription == "" {
				input.ReleaseDescription = input.ReleaseTitle
			}

			logging.From(ctx).Info("starting publish",
				slog.String("dir", input.RepoDir),
				slog.String("release_dir", input.ReleaseDir),
				slog.String("pattern", input.Pattern),
				slog.String("tag", input.Tag.String()),
			)

			uc, err := newUseCase(ctx, &github, &git, true)
			if err != nil {
				return err
			}
			if _, err := uc.Publish(ctx, input); err != nil {
				return err
			}
			return nil
		},
	}
}
