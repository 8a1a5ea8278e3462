package config

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	githubinfra "github.com/secmon-lab/relpack/pkg/infra/github"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// GitHub holds hosting platform credentials. A personal or workflow token is used as is;
// otherwise a GitHub App installation token is minted when the App is configured.
type GitHub struct {
	token          types.GitHubToken
	domain         string
	apiURL         string
	uploadURL      string
	appID          int64
	installationID int64
	privateKey     string `masq:"secret"`
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token used for cloning over HTTPS, pushing tags and creating releases",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("RELPACK_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-domain",
			Usage:       "Host that origin remotes must point at",
			Category:    "GitHub",
			Destination: &x.domain,
			Sources:     cli.EnvVars("RELPACK_GITHUB_DOMAIN"),
			Value:       types.DefaultGitHubHost,
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "REST API endpoint for GitHub Enterprise, e.g. https://github.example.com/api/v3/",
			Category:    "GitHub",
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("RELPACK_GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "github-upload-url",
			Usage:       "Upload endpoint for GitHub Enterprise, e.g. https://github.example.com/api/uploads/",
			Category:    "GitHub",
			Destination: &x.uploadURL,
			Sources:     cli.EnvVars("RELPACK_GITHUB_UPLOAD_URL"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID, used when no token is given",
			Category:    "GitHub App",
			Destination: &x.appID,
			Sources:     cli.EnvVars("RELPACK_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID",
			Category:    "GitHub App",
			Destination: &x.installationID,
			Sources:     cli.EnvVars("RELPACK_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Category:    "GitHub App",
			Destination: &x.privateKey,
			Sources:     cli.EnvVars("RELPACK_GITHUB_APP_PRIVATE_KEY"),
		},
	}
}

func (x *GitHub) appConfigured() bool {
	return x.appID != 0 || x.installationID != 0 || x.privateKey != ""
}

// Token returns the configured token, or mints an installation token from the GitHub App.
// It returns an empty token without error when neither is configured.
func (x *GitHub) Token(ctx context.Context) (types.GitHubToken, error) {
	if x.token != "" {
		return x.token, nil
	}
	if !x.appConfigured() {
		return "", nil
	}

	if x.appID == 0 || x.installationID == 0 || x.privateKey == "" {
		return "", goerr.New("GitHub App requires app ID, installation ID and private key",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("app_id", x.appID),
			goerr.V("installation_id", x.installationID),
		)
	}

	itr, err := ghinstallation.New(http.DefaultTransport, x.appID, x.installationID, []byte(x.privateKey))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("app_id", x.appID),
		)
	}
	if x.apiURL != "" {
		itr.BaseURL = strings.TrimSuffix(x.apiURL, "/")
	}

	token, err := itr.Token(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get GitHub App installation token",
			goerr.T(types.ErrTagHosting),
			goerr.V("app_id", x.appID),
			goerr.V("installation_id", x.installationID),
		)
	}

	logging.From(ctx).Debug("minted GitHub App installation token",
		slog.Int64("app_id", x.appID),
		slog.Int64("installation_id", x.installationID),
	)
	return types.GitHubToken(token), nil
}

// Domain is the GitHub host. The token is only ever sent to this host.
func (x *GitHub) Domain() string {
	if x.domain == "" {
		return types.DefaultGitHubHost
	}
	return x.domain
}

// NewHosting builds the hosting client. An empty token fails here, before any clone.
func (x *GitHub) NewHosting(token types.GitHubToken) (*githubinfra.Client, error) {
	opts := []githubinfra.Option{
		githubinfra.WithDomain(x.Domain()),
	}
	if x.apiURL != "" {
		opts = append(opts, githubinfra.WithBaseURL(x.apiURL))
	}
	if x.uploadURL != "" {
		opts = append(opts, githubinfra.WithUploadURL(x.uploadURL))
	}
	return githubinfra.New(token, opts...)
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
		slog.String("domain", x.domain),
		slog.String("apiURL", x.apiURL),
		slog.String("uploadURL", x.uploadURL),
		slog.Int64("appID", x.appID),
		slog.Int64("installationID", x.installationID),
		slog.Int("privateKey.len", len(x.privateKey)),
	)
}
