package fsutil

import (
	"errors"
	"io/fs"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
)

func wrapFileAccess(err error, msg, path string) error {
	reason := types.ReasonIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		reason = types.ReasonNotFound
	case errors.Is(err, fs.ErrPermission):
		reason = types.ReasonPermission
	}

	return goerr.Wrap(err, msg,
		goerr.T(types.ErrTagFileAccess),
		goerr.V("path", path),
		goerr.V("reason", reason),
	)
}

func notFound(msg, path string) error {
	return goerr.Wrap(types.ErrNotFound, msg,
		goerr.T(types.ErrTagFileAccess),
		goerr.V("path", path),
		goerr.V("reason", types.ReasonNotFound),
	)
}

func wrongType(msg, path string) error {
	return goerr.Wrap(types.ErrWrongType, msg,
		goerr.T(types.ErrTagFileAccess),
		goerr.V("path", path),
		goerr.V("reason", types.ReasonWrongType),
	)
}
