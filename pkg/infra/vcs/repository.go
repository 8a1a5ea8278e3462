package vcs

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/interfaces"
	"github.com/secmon-lab/relpack/pkg/domain/model"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
)

// Repository is a clone on local disk
type Repository struct {
	repo   *git.Repository
	path   string
	client *Client
}

var _ interfaces.ClonedRepository = (*Repository)(nil)

func (x *Repository) Path() string {
	return x.path
}

// Handle returns the underlying go-git repository
func (x *Repository) Handle() *git.Repository {
	return x.repo
}

func (x *Repository) OriginURL() (string, error) {
	remote, err := x.repo.Remote(types.DefaultRemoteName)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get remote origin",
			goerr.T(types.ErrTagVCS),
			goerr.V("dir", x.path),
		)
	}
	if len(remote.Config().URLs) == 0 {
		return "", goerr.New("no remote URL found",
			goerr.T(types.ErrTagVCS),
			goerr.V("dir", x.path),
		)
	}
	return remote.Config().URLs[0], nil
}

// InitSubmodules initializes and updates all submodules recursively. No-op without submodules.
func (x *Repository) InitSubmodules(ctx context.Context) error {
	wt, err := x.repo.Worktree()
	if err != nil {
		return goerr.Wrap(err, "failed to get worktree",
			goerr.T(types.ErrTagVCS),
			goerr.V("dir", x.path),
		)
	}

	origin, _ := x.OriginURL()
	count, err := x.updateSubmodules(ctx, wt, origin, 0)
	if err != nil {
		return err
	}
	if count > 0 {
		logging.From(ctx).Info("submodules initialized", slog.Int("count", count))
	}
	return nil
}

// updateSubmodules updates the submodules of wt one by one so that each fetch gets the
// credential decided by its own URL, then descends into them.
func (x *Repository) updateSubmodules(ctx context.Context, wt *git.Worktree, parentURL string, depth int) (int, error) {
	subs, err := wt.Submodules()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list submodules",
			goerr.T(types.ErrTagVCS),
			goerr.V("dir", wt.Filesystem.Root()),
		)
	}
	if len(subs) == 0 {
		return 0, nil
	}
	if depth >= int(git.DefaultSubmoduleRecursionDepth) {
		return 0, goerr.New("submodules are nested too deeply",
			goerr.T(types.ErrTagVCS),
			goerr.V("dir", wt.Filesystem.Root()),
		)
	}

	count := 0
	for _, sub := range subs {
		cfg := sub.Config()
		subURL := resolveSubmoduleURL(parentURL, cfg.URL)

		if err := sub.UpdateContext(ctx, &git.SubmoduleUpdateOptions{
			Init: true,
			Auth: x.client.authFor(subURL),
		}); err != nil {
			return count, goerr.Wrap(err, "failed to update submodule",
				goerr.T(types.ErrTagVCS),
				goerr.V("dir", wt.Filesystem.Root()),
				goerr.V("submodule", cfg.Path),
				goerr.V("url", cfg.URL),
			)
		}
		count++

		subRepo, err := sub.Repository()
		if err != nil {
			return count, goerr.Wrap(err, "failed to open submodule",
				goerr.T(types.ErrTagVCS),
				goerr.V("submodule", cfg.Path),
			)
		}
		subWt, err := subRepo.Worktree()
		if err != nil {
			return count, goerr.Wrap(err, "failed to get submodule worktree",
				goerr.T(types.ErrTagVCS),
				goerr.V("submodule", cfg.Path),
			)
		}

		nested, err := x.updateSubmodules(ctx, subWt, subURL, depth+1)
		count += nested
		if err != nil {
			return count, err
		}
	}

	return count, nil
}

// resolveSubmoduleURL resolves a relative submodule URL ("../lib.git") against the URL of the
// repository declaring it
func resolveSubmoduleURL(parentURL, subURL string) string {
	if !strings.HasPrefix(subURL, "./") && !strings.HasPrefix(subURL, "../") {
		return subURL
	}
	base, err := url.Parse(strings.TrimSuffix(parentURL, "/") + "/")
	if err != nil {
		return subURL
	}
	ref, err := url.Parse(subURL)
	if err != nil {
		return subURL
	}
	return base.ResolveReference(ref).String()
}

// CreateAndPushTag creates an annotated tag at HEAD and pushes it to origin
func (x *Repository) CreateAndPushTag(ctx context.Context, tag model.ReleaseTag) error {
	if err := tag.Validate(); err != nil {
		return goerr.Wrap(err, "invalid release tag", goerr.T(types.ErrTagVCS))
	}

	head, err := x.repo.Head()
	if err != nil {
		return goerr.Wrap(err, "failed to get HEAD",
			goerr.T(types.ErrTagVCS),
			goerr.V("dir", x.path),
		)
	}

	if _, err := x.repo.CreateTag(tag.Name.String(), head.Hash(), &git.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  x.client.taggerName,
			Email: x.client.taggerEmail,
			When:  logging.CtxTime(ctx),
		},
		Message: tag.Description,
	}); err != nil {
		return goerr.Wrap(err, "failed to create tag",
			goerr.T(types.ErrTagVCS),
			goerr.V("tag", tag.Name),
			goerr.V("commit", head.Hash().String()),
		)
	}

	origin, err := x.OriginURL()
	if err != nil {
		return err
	}

	refSpec := config.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag.Name, tag.Name))
	if err := x.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: types.DefaultRemoteName,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       x.client.authFor(origin),
		Progress:   x.client.progress,
	}); err != nil && err != git.NoErrAlreadyUpToDate {
		return goerr.Wrap(err, "failed to push tag",
			goerr.T(types.ErrTagVCS),
			goerr.V("tag", tag.Name),
			goerr.V("remote", origin),
		)
	}

	logging.From(ctx).Info("tag pushed",
		slog.String("tag", tag.Name.String()),
		slog.String("commit", head.Hash().String()),
	)
	return nil
}
