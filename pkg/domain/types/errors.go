package types

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Error kinds. Errors returned by relpack carry one of these tags.
var (
	ErrTagConfiguration = goerr.NewTag("configuration")
	ErrTagFileAccess    = goerr.NewTag("file_access")
	ErrTagVCS           = goerr.NewTag("vcs")
	ErrTagArchive       = goerr.NewTag("archive")
	ErrTagHosting       = goerr.NewTag("hosting")
)

var (
	ErrInvalidOption = errors.New("invalid option")
	ErrNotFound      = errors.New("not found")
	ErrWrongType     = errors.New("wrong file type")
)

// FileAccess reasons, set as the "reason" value of ErrTagFileAccess errors
const (
	ReasonNotFound   = "not_found"
	ReasonWrongType  = "wrong_type"
	ReasonPermission = "permission"
	ReasonIO         = "io"
)
