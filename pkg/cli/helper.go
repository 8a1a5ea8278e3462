package cli

import (
	"context"
	"os"

	"github.com/secmon-lab/relpack/pkg/cli/config"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/infra"
	"github.com/secmon-lab/relpack/pkg/infra/vcs"
	"github.com/secmon-lab/relpack/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type gitFlags struct {
	taggerName  string
	taggerEmail string
	progress    bool
}

func (x *gitFlags) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "tagger-name",
			Usage:       "Name recorded as tagger of release tags",
			Category:    "Git",
			Destination: &x.taggerName,
			Sources:     cli.EnvVars("RELPACK_TAGGER_NAME"),
			Value:       types.DefaultTaggerName,
		},
		&cli.StringFlag{
			Name:        "tagger-email",
			Usage:       "Email recorded as tagger of release tags",
			Category:    "Git",
			Destination: &x.taggerEmail,
			Sources:     cli.EnvVars("RELPACK_TAGGER_EMAIL"),
			Value:       types.DefaultTaggerEmail,
		},
		&cli.BoolFlag{
			Name:        "progress",
			Usage:       "Show git transfer progress on stderr",
			Category:    "Git",
			Destination: &x.progress,
		},
	}
}

// newUseCase wires clients from flags. The hosting client is only built when needHosting is
// set, and a missing credential fails here before anything is cloned.
func newUseCase(ctx context.Context, gh *config.GitHub, git *gitFlags, needHosting bool) (*usecase.UseCase, error) {
	token, err := gh.Token(ctx)
	if err != nil {
		return nil, err
	}

	vcsOptions := []vcs.Option{
		vcs.WithToken(token),
		vcs.WithTokenHost(gh.Domain()),
		vcs.WithTagger(git.taggerName, git.taggerEmail),
	}
	if git.progress {
		vcsOptions = append(vcsOptions, vcs.WithProgress(os.Stderr))
	}
	infraOptions := []infra.Option{
		infra.WithGit(vcs.New(vcsOptions...)),
	}

	if needHosting {
		hosting, err := gh.NewHosting(token)
		if err != nil {
			return nil, err
		}
		infraOptions = append(infraOptions, infra.WithHosting(hosting))
	}

	return usecase.New(infra.New(infraOptions...)), nil
}
