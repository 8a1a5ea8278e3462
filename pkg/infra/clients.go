package infra

import (
	"github.com/secmon-lab/relpack/pkg/domain/interfaces"
	"github.com/secmon-lab/relpack/pkg/infra/vcs"
)

type Clients struct {
	git     interfaces.Git
	hosting interfaces.Hosting
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		git: vcs.New(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) Git() interfaces.Git {
	return x.git
}

// Hosting returns nil unless a hosting client was configured. Operations that publish
// releases must check it.
func (x *Clients) Hosting() interfaces.Hosting {
	return x.hosting
}

func WithGit(client interfaces.Git) Option {
	return func(x *Clients) {
		x.git = client
	}
}

func WithHosting(client interfaces.Hosting) Option {
	return func(x *Clients) {
		x.hosting = client
	}
}
