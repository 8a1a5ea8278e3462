package model

import (
	"net/url"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
)

// RepositorySource identifies what to clone
type RepositorySource struct {
	URL    string
	Branch types.BranchName
}

var scpLikeURL = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9.-]+:[^/].*$`)

func (x *RepositorySource) Validate() error {
	if x.URL == "" {
		return goerr.New("repository URL is required", goerr.T(types.ErrTagConfiguration))
	}
	if !isValidRepositoryURL(x.URL) {
		return goerr.New("repository URL is malformed",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("url", x.URL),
		)
	}
	if x.Branch == "" {
		return goerr.New("branch is required",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("url", x.URL),
		)
	}
	return nil
}

func isValidRepositoryURL(s string) bool {
	if scpLikeURL.MatchString(s) {
		return true
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	switch u.Scheme {
	case "file":
		return u.Path != ""
	case "http", "https", "ssh", "git":
		return u.Host != "" && u.Path != "" && u.Path != "/"
	default:
		return false
	}
}
