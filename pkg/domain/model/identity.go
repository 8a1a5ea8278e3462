package model

import (
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
)

// RepositoryIdentity is the "owner/name" pair of a repository on the hosting platform
type RepositoryIdentity struct {
	Owner string
	Name  string
}

func (x RepositoryIdentity) String() string {
	return x.Owner + "/" + x.Name
}

// ParseRepositoryIdentity extracts owner and name from a remote URL. Accepted forms are
// https://<host>/<owner>/<name>(.git)?/? and git@<host>:<owner>/<name>(.git)?. The host
// must equal domain.
func ParseRepositoryIdentity(remoteURL, domain string) (*RepositoryIdentity, error) {
	var host, path string

	switch {
	case strings.HasPrefix(remoteURL, "git@"):
		rest := strings.TrimPrefix(remoteURL, "git@")
		idx := strings.Index(rest, ":")
		if idx < 0 {
			return nil, goerr.New("malformed SSH remote URL",
				goerr.T(types.ErrTagHosting),
				goerr.V("url", remoteURL),
			)
		}
		host, path = rest[:idx], rest[idx+1:]

	case strings.HasPrefix(remoteURL, "https://"):
		u, err := url.Parse(remoteURL)
		if err != nil {
			return nil, goerr.Wrap(err, "malformed HTTPS remote URL",
				goerr.T(types.ErrTagHosting),
				goerr.V("url", remoteURL),
			)
		}
		host, path = u.Host, u.Path

	default:
		return nil, goerr.New("unsupported remote URL scheme",
			goerr.T(types.ErrTagHosting),
			goerr.V("url", remoteURL),
		)
	}

	if !strings.EqualFold(host, domain) {
		return nil, goerr.New("remote host does not match hosting platform",
			goerr.T(types.ErrTagHosting),
			goerr.V("url", remoteURL),
			goerr.V("host", host),
			goerr.V("domain", domain),
		)
	}

	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, goerr.New("failed to extract owner/name from remote URL",
			goerr.T(types.ErrTagHosting),
			goerr.V("url", remoteURL),
		)
	}

	return &RepositoryIdentity{Owner: parts[0], Name: parts[1]}, nil
}
