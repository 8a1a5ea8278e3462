package github

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/interfaces"
	"github.com/secmon-lab/relpack/pkg/domain/model"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/infra/fsutil"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
	"github.com/secmon-lab/relpack/pkg/utils/safe"
	"golang.org/x/oauth2"
)

type Client struct {
	client *github.Client
	domain string
}

var _ interfaces.Hosting = (*Client)(nil)

type config struct {
	domain    string
	baseURL   string
	uploadURL string
	transport http.RoundTripper
}

type Option func(*config)

// WithDomain sets the host that remote URLs must point at, e.g. "github.example.com"
func WithDomain(domain string) Option {
	return func(c *config) {
		c.domain = domain
	}
}

// WithBaseURL sets the REST API endpoint, e.g. "https://github.example.com/api/v3/"
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithUploadURL sets the asset upload endpoint, e.g. "https://github.example.com/api/uploads/"
func WithUploadURL(uploadURL string) Option {
	return func(c *config) {
		c.uploadURL = uploadURL
	}
}

// WithTransport replaces the base HTTP transport under the bearer token transport
func WithTransport(tr http.RoundTripper) Option {
	return func(c *config) {
		c.transport = tr
	}
}

// New creates a hosting client authenticated with a bearer token. An empty token fails
// immediately.
func New(token types.GitHubToken, options ...Option) (*Client, error) {
	if token == "" {
		return nil, goerr.New("GitHub token is required",
			goerr.T(types.ErrTagConfiguration),
			goerr.T(types.ErrTagHosting),
		)
	}

	cfg := &config{
		domain:    types.DefaultGitHubHost,
		transport: http.DefaultTransport,
	}
	for _, opt := range options {
		opt(cfg)
	}

	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(token)}),
			Base:   cfg.transport,
		},
	}
	client := github.NewClient(httpClient)

	if cfg.baseURL != "" {
		u, err := parseEndpoint(cfg.baseURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = u
	}
	if cfg.uploadURL != "" {
		u, err := parseEndpoint(cfg.uploadURL)
		if err != nil {
			return nil, err
		}
		client.UploadURL = u
	}

	return &Client{
		client: client,
		domain: cfg.domain,
	}, nil
}

func parseEndpoint(s string) (*url.URL, error) {
	if !strings.HasSuffix(s, "/") {
		s += "/"
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, goerr.New("invalid GitHub endpoint URL",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("url", s),
		)
	}
	return u, nil
}

// ParseIdentity derives owner/name from remoteURL, which must point at the configured domain
func (x *Client) ParseIdentity(remoteURL string) (*model.RepositoryIdentity, error) {
	return model.ParseRepositoryIdentity(remoteURL, x.domain)
}

// ResolveIdentity derives owner/name from the origin remote of repo
func (x *Client) ResolveIdentity(ctx context.Context, repo interfaces.RemoteSource) (*model.RepositoryIdentity, error) {
	if repo == nil {
		return nil, goerr.New("repository is required", goerr.T(types.ErrTagConfiguration))
	}

	remoteURL, err := repo.OriginURL()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read origin remote", goerr.T(types.ErrTagHosting))
	}

	identity, err := x.ParseIdentity(remoteURL)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("resolved repository identity",
		slog.String("remote", remoteURL),
		slog.String("identity", identity.String()),
	)
	return identity, nil
}

// CreateRelease creates a published (non-draft, non-prerelease) release for an existing tag
func (x *Client) CreateRelease(ctx context.Context, input *interfaces.CreateReleaseInput) (*model.RemoteRelease, error) {
	if input == nil || input.Identity == nil {
		return nil, goerr.New("repository identity is required", goerr.T(types.ErrTagConfiguration))
	}
	if input.Name == "" {
		return nil, goerr.New("release name is required", goerr.T(types.ErrTagConfiguration))
	}
	if input.Description == "" {
		return nil, goerr.New("release description is required", goerr.T(types.ErrTagConfiguration))
	}
	if input.Tag == "" {
		return nil, goerr.New("release tag is required", goerr.T(types.ErrTagConfiguration))
	}

	id := input.Identity
	created, _, err := x.client.Repositories.CreateRelease(ctx, id.Owner, id.Name, &github.RepositoryRelease{
		TagName:    github.String(input.Tag.String()),
		Name:       github.String(input.Name),
		Body:       github.String(input.Description),
		Draft:      github.Bool(false),
		Prerelease: github.Bool(false),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release",
			goerr.T(types.ErrTagHosting),
			goerr.V("repo", id.String()),
			goerr.V("tag", input.Tag),
		)
	}

	release := &model.RemoteRelease{
		ID:          created.GetID(),
		Tag:         types.TagName(created.GetTagName()),
		Name:        created.GetName(),
		Description: created.GetBody(),
		Draft:       created.GetDraft(),
		Prerelease:  created.GetPrerelease(),
		HTMLURL:     created.GetHTMLURL(),
		Identity:    *id,
	}

	logging.From(ctx).Info("release created",
		slog.String("repo", id.String()),
		slog.String("tag", input.Tag.String()),
		slog.Int64("release_id", release.ID),
		slog.String("url", release.HTMLURL),
	)
	return release, nil
}

// UploadAsset attaches a local regular file to release. An empty ContentType is left to the
// platform to infer.
func (x *Client) UploadAsset(ctx context.Context, input *interfaces.UploadAssetInput) (*model.ReleaseAsset, error) {
	if input == nil || input.Release == nil {
		return nil, goerr.New("release is required", goerr.T(types.ErrTagConfiguration))
	}
	if input.FileName == "" {
		return nil, goerr.New("asset file name is required", goerr.T(types.ErrTagConfiguration))
	}
	if input.FilePath == "" {
		return nil, goerr.New("asset file path is required", goerr.T(types.ErrTagConfiguration))
	}

	if !fsutil.IsFile(input.FilePath) {
		return nil, goerr.New("cannot upload file to release",
			goerr.T(types.ErrTagHosting),
			goerr.V("path", input.FilePath),
			goerr.V("exists", fsutil.Exists(input.FilePath)),
		)
	}

	fd, err := os.Open(filepath.Clean(input.FilePath))
	if err != nil {
		return nil, goerr.Wrap(err, "cannot upload file to release",
			goerr.T(types.ErrTagHosting),
			goerr.V("path", input.FilePath),
		)
	}
	defer safe.Close(fd)

	rel := input.Release
	opts := &github.UploadOptions{Name: input.FileName}
	if input.ContentType != "" {
		opts.MediaType = input.ContentType
	}

	asset, _, err := x.client.Repositories.UploadReleaseAsset(ctx, rel.Identity.Owner, rel.Identity.Name, rel.ID, opts, fd)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload release asset",
			goerr.T(types.ErrTagHosting),
			goerr.V("repo", rel.Identity.String()),
			goerr.V("release_id", rel.ID),
			goerr.V("file", input.FileName),
		)
	}

	result := &model.ReleaseAsset{
		ID:          asset.GetID(),
		Name:        asset.GetName(),
		ContentType: asset.GetContentType(),
		Size:        asset.GetSize(),
		DownloadURL: asset.GetBrowserDownloadURL(),
	}

	logging.From(ctx).Info("release asset uploaded",
		slog.String("repo", rel.Identity.String()),
		slog.Int64("release_id", rel.ID),
		slog.String("name", result.Name),
		slog.Int("size", result.Size),
	)
	return result, nil
}
