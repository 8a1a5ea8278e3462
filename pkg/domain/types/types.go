package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	GitHubToken string
	BranchName  string
	TagName     string
	RunID       string
)

// Version is overwritten at build time with -ldflags
var Version = "dev"

const (
	DefaultBranch      BranchName = "main"
	DefaultGitHubHost             = "github.com"
	DefaultRemoteName             = "origin"
	DefaultCloneDepth             = 1
	DefaultTaggerName             = "relpack"
	DefaultTaggerEmail            = "relpack@localhost"
)

func NewRunID() RunID {
	return RunID(uuid.NewString())
}

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

func (x BranchName) String() string { return string(x) }
func (x TagName) String() string    { return string(x) }
