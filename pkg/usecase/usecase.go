package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/interfaces"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/infra"
)

type UseCase struct {
	clients *infra.Clients
}

var _ interfaces.UseCase = (*UseCase)(nil)

func New(clients *infra.Clients) *UseCase {
	return &UseCase{
		clients: clients,
	}
}

func (x *UseCase) hosting() (interfaces.Hosting, error) {
	h := x.clients.Hosting()
	if h == nil {
		return nil, goerr.New("hosting client is not configured, GitHub token is required",
			goerr.T(types.ErrTagConfiguration),
			goerr.T(types.ErrTagHosting),
		)
	}
	return h, nil
}
