package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/relpack/pkg/cli/config"
	"github.com/secmon-lab/relpack/pkg/domain/model"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// genericDefaults apply to the build command, which has no fixed repository
var genericDefaults = config.TargetDefaults{
	Branch:     string(types.DefaultBranch),
	CloneDir:   filepath.Join("build", "repo"),
	ReleaseDir: config.DefaultReleaseDir,
}

type buildFlags struct {
	repo          string
	branch        string
	cloneDir      string
	releaseDir    string
	releaseName   string
	cleanFile     string
	overlayDir    string
	depth         int64
	method        string
	format        string
	includeGitDir bool

	tagName        string
	tagDescription string
}

func (x *buildFlags) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repo",
			Aliases:     []string{"r"},
			Usage:       "Repository URL to clone",
			Destination: &x.repo,
		},
		&cli.StringFlag{
			Name:        "branch",
			Aliases:     []string{"b"},
			Usage:       "Branch to clone (default: main)",
			Destination: &x.branch,
		},
		&cli.StringFlag{
			Name:        "repo-target-dir",
			Aliases:     []string{"c", "repo_target_dir"},
			Usage:       "Where to clone the repository. An existing directory is emptied first",
			Destination: &x.cloneDir,
		},
		&cli.StringFlag{
			Name:        "release-target-dir",
			Aliases:     []string{"t", "release_target_dir"},
			Usage:       "Where to put the archive",
			Sources:     cli.EnvVars("RELPACK_RELEASE_DIR"),
			Destination: &x.releaseDir,
		},
		&cli.StringFlag{
			Name:        "release-name",
			Aliases:     []string{"n", "release_name"},
			Usage:       "Archive file name",
			Destination: &x.releaseName,
		},
		&cli.StringFlag{
			Name:        "clean-patterns",
			Aliases:     []string{"p", "clean_patterns"},
			Usage:       "File listing glob patterns of files to remove before archiving",
			Sources:     cli.EnvVars("RELPACK_CLEAN_PATTERNS"),
			Destination: &x.cleanFile,
		},
		&cli.StringFlag{
			Name:        "overlay-dir",
			Usage:       "Directory whose contents are copied into the clone after cleaning",
			Destination: &x.overlayDir,
		},
		&cli.Int64Flag{
			Name:        "depth",
			Usage:       "Clone depth, 0 for full history",
			Value:       types.DefaultCloneDepth,
			Destination: &x.depth,
		},
		&cli.StringFlag{
			Name:        "archive-method",
			Usage:       "Packaging route [files|vcs]. vcs archives committed content of HEAD only",
			Value:       string(model.ArchiveMethodFiles),
			Destination: &x.method,
		},
		&cli.StringFlag{
			Name:        "archive-format",
			Usage:       "Archive format [zip|tar|tar.gz]. The files method supports zip only",
			Value:       string(model.ArchiveFormatZip),
			Destination: &x.format,
		},
		&cli.BoolFlag{
			Name:        "include-git-dir",
			Usage:       "Keep the .git directory in the files archive",
			Destination: &x.includeGitDir,
		},
		&cli.StringFlag{
			Name:        "tag-name",
			Usage:       "Create and push this annotated tag right after cloning",
			Category:    "Tag",
			Destination: &x.tagName,
		},
		&cli.StringFlag{
			Name:        "tag-description",
			Usage:       "Annotation message of the tag",
			Category:    "Tag",
			Destination: &x.tagDescription,
		},
	}
}

// buildInput resolves flags over defaults. An empty release name becomes
// archive-<date> for untagged builds.
func (x *buildFlags) buildInput(ctx context.Context, defaults *config.TargetDefaults) *model.BuildInput {
	pick := func(flag, fallback string) string {
		if flag != "" {
			return flag
		}
		return fallback
	}

	input := &model.BuildInput{
		Source: model.RepositorySource{
			URL:    pick(x.repo, defaults.URL),
			Branch: types.BranchName(pick(x.branch, defaults.Branch)),
		},
		CloneDir:      pick(x.cloneDir, defaults.CloneDir),
		ReleaseDir:    pick(x.releaseDir, defaults.ReleaseDir),
		ReleaseName:   pick(x.releaseName, defaults.ReleaseName),
		CleanFile:     pick(x.cleanFile, defaults.CleanFile),
		OverlayDir:    x.overlayDir,
		Depth:         int(x.depth),
		Method:        model.ArchiveMethod(strings.ToLower(x.method)),
		Format:        model.ArchiveFormat(strings.ToLower(x.format)),
		IncludeGitDir: x.includeGitDir,
	}

	if x.tagName != "" || x.tagDescription != "" {
		input.Tag = &model.ReleaseTag{
			Name:        types.TagName(x.tagName),
			Description: x.tagDescription,
		}
	}

	if input.ReleaseName == "" {
		input.ReleaseName = model.DefaultArchiveName(logging.CtxTime(ctx), input.Format)
	}

	return input
}

func buildCommand() *cli.Command {
	var (
		build  buildFlags
		git    gitFlags
		github config.GitHub
	)

	return &cli.Command{
		Name:    "build",
		Aliases: []string{"b"},
		Usage:   "Build a release archive of the given repository",
		Flags:   slice.Flatten(build.Flags(), git.Flags(), github.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			defaults := genericDefaults
			return runBuild(ctx, build.buildInput(ctx, &defaults), &git, &github)
		},
	}
}

// buildTargetCommand builds one of the fixed sibling repositories. Its defaults come from
// the built-in table or the --config file.
func buildTargetCommand(target config.TargetName) *cli.Command {
	var (
		build   buildFlags
		git     gitFlags
		github  config.GitHub
		targets config.Target
	)

	name := "build-" + string(target)
	return &cli.Command{
		Name:    name,
		Aliases: []string{strings.ReplaceAll(name, "-", "_")},
		Usage:   "Build the " + string(target) + " release archive",
		Flags:   slice.Flatten(build.Flags(), targets.Flags(), git.Flags(), github.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			defaults, err := targets.Load(target)
			if err != nil {
				return err
			}
			logging.From(ctx).Debug("target defaults",
				slog.String("target", string(target)),
				slog.Any("defaults", defaults),
			)
			return runBuild(ctx, build.buildInput(ctx, defaults), &git, &github)
		},
	}
}

func runBuild(ctx context.Context, input *model.BuildInput, git *gitFlags, github *config.GitHub) error {
	if err := input.Validate(); err != nil {
		return err
	}

	logging.From(ctx).Info("starting build",
		slog.String("repo", input.Source.URL),
		slog.String("branch", input.Source.Branch.String()),
		slog.String("clone_dir", input.CloneDir),
		slog.String("release", filepath.Join(input.ReleaseDir, input.ReleaseName)),
		slog.Any("github", github),
	)

	uc, err := newUseCase(ctx, github, git, false)
	if err != nil {
		return err
	}

	if _, err := uc.Build(ctx, input); err != nil {
		return err
	}
	return nil
}
