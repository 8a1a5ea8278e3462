// Package vcs is the version control client of relpack, built on go-git.
package vcs

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/interfaces"
	"github.com/secmon-lab/relpack/pkg/domain/model"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
)

type Client struct {
	token       types.GitHubToken
	tokenHost   string
	taggerName  string
	taggerEmail string
	progress    io.Writer
}

var _ interfaces.Git = (*Client)(nil)

type Option func(*Client)

// WithToken authenticates https remotes on the token host with the token as basic auth password
func WithToken(token types.GitHubToken) Option {
	return func(x *Client) {
		x.token = token
	}
}

// WithTokenHost sets the only host the token is sent to. Default is github.com.
func WithTokenHost(host string) Option {
	return func(x *Client) {
		x.tokenHost = host
	}
}

func WithTagger(name, email string) Option {
	return func(x *Client) {
		x.taggerName = name
		x.taggerEmail = email
	}
}

// WithProgress streams git transfer progress to w
func WithProgress(w io.Writer) Option {
	return func(x *Client) {
		x.progress = w
	}
}

func New(options ...Option) *Client {
	client := &Client{
		tokenHost:   types.DefaultGitHubHost,
		taggerName:  types.DefaultTaggerName,
		taggerEmail: types.DefaultTaggerEmail,
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// authFor returns basic auth only for https remotes on the token host. Any other remote gets
// no credential from relpack; SSH and local transports use their own.
func (x *Client) authFor(remoteURL string) transport.AuthMethod {
	if x.token == "" || x.tokenHost == "" {
		return nil
	}
	u, err := url.Parse(remoteURL)
	if err != nil || u.Scheme != "https" || !strings.EqualFold(u.Hostname(), x.tokenHost) {
		return nil
	}
	return &githttp.BasicAuth{
		Username: "x-access-token",
		Password: string(x.token),
	}
}

// CloneShallow clones a single branch of src into dir, which must already exist. depth 0
// clones the full history. Every failure, including argument validation, is tagged as a VCS
// error.
func (x *Client) CloneShallow(ctx context.Context, src model.RepositorySource, dir string, depth int) (interfaces.ClonedRepository, error) {
	if err := src.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid repository source", goerr.T(types.ErrTagVCS))
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return nil, goerr.New("clone target directory does not exist",
			goerr.T(types.ErrTagVCS),
			goerr.V("dir", dir),
		)
	}
	if depth < 0 {
		return nil, goerr.New("clone depth must not be negative",
			goerr.T(types.ErrTagVCS),
			goerr.V("depth", depth),
		)
	}

	logging.From(ctx).Info("cloning repository",
		slog.String("url", src.URL),
		slog.String("branch", src.Branch.String()),
		slog.String("dir", dir),
		slog.Int("depth", depth),
	)

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           src.URL,
		ReferenceName: plumbing.NewBranchReferenceName(src.Branch.String()),
		SingleBranch:  true,
		Depth:         depth,
		Tags:          git.NoTags,
		Auth:          x.authFor(src.URL),
		Progress:      x.progress,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to clone repository",
			goerr.T(types.ErrTagVCS),
			goerr.V("url", src.URL),
			goerr.V("branch", src.Branch),
			goerr.V("dir", dir),
		)
	}

	return x.newRepository(repo, dir), nil
}

// Open opens an existing clone on disk
func (x *Client) Open(ctx context.Context, dir string) (interfaces.ClonedRepository, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open git repository",
			goerr.T(types.ErrTagVCS),
			goerr.V("dir", dir),
		)
	}

	logging.From(ctx).Debug("opened repository", slog.String("dir", dir))
	return x.newRepository(repo, dir), nil
}

func (x *Client) newRepository(repo *git.Repository, dir string) *Repository {
	return &Repository{
		repo:   repo,
		path:   dir,
		client: x,
	}
}
