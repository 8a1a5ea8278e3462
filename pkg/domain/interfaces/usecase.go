package interfaces

import (
	"context"

	"github.com/secmon-lab/relpack/pkg/domain/model"
)

type UseCase interface {
	Build(ctx context.Context, input *model.BuildInput) (*model.BuildResult, error)
	BuildAndRelease(ctx context.Context, input *model.ReleaseInput) (*model.BuildResult, error)
	Publish(ctx context.Context, input *model.PublishInput) (*model.BuildResult, error)
}
