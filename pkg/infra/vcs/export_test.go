package vcs

import "github.com/go-git/go-git/v5/plumbing/transport"

func (x *Client) AuthFor(remoteURL string) transport.AuthMethod {
	return x.authFor(remoteURL)
}

var ResolveSubmoduleURL = resolveSubmoduleURL
