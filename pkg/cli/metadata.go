package cli

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
)

// HeadTag is a tag pointing at HEAD of a local clone
type HeadTag struct {
	Name types.TagName
	// Message is the annotation, empty for lightweight tags
	Message string
}

// DetectHeadTag finds the tag pointing at HEAD of the repository in dir. When several tags
// point at HEAD, the lexicographically greatest name wins.
func DetectHeadTag(ctx context.Context, dir string) (*HeadTag, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open git repository",
			goerr.T(types.ErrTagVCS),
			goerr.V("dir", dir),
		)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get HEAD", goerr.T(types.ErrTagVCS), goerr.V("dir", dir))
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tags", goerr.T(types.ErrTagVCS), goerr.V("dir", dir))
	}

	var found []HeadTag
	if err := iter.ForEach(func(ref *plumbing.Reference) error {
		tag := HeadTag{Name: types.TagName(ref.Name().Short())}

		target := ref.Hash()
		if obj, err := repo.TagObject(ref.Hash()); err == nil {
			target = obj.Target
			tag.Message = strings.TrimSpace(obj.Message)
		}

		if target == head.Hash() {
			found = append(found, tag)
		}
		return nil
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to walk tags", goerr.T(types.ErrTagVCS), goerr.V("dir", dir))
	}

	if len(found) == 0 {
		return nil, goerr.Wrap(types.ErrNotFound, "no tag points at HEAD",
			goerr.T(types.ErrTagVCS),
			goerr.V("dir", dir),
			goerr.V("head", head.Hash().String()),
		)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name > found[j].Name })

	logging.From(ctx).Debug("detected tag at HEAD",
		slog.String("tag", found[0].Name.String()),
		slog.String("head", head.Hash().String()),
	)
	return &found[0], nil
}
