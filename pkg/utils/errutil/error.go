package errutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
)

// kindEntry is generic because goerr's tag type is unexported and cannot be named here
type kindEntry[T any] struct {
	tag  T
	name string
}

func newKind[T any](tag T, name string) kindEntry[T] {
	return kindEntry[T]{tag: tag, name: name}
}

func kindList[T any](entries ...kindEntry[T]) []kindEntry[T] {
	return entries
}

var kinds = kindList(
	newKind(types.ErrTagConfiguration, "configuration"),
	newKind(types.ErrTagFileAccess, "file_access"),
	newKind(types.ErrTagVCS, "vcs"),
	newKind(types.ErrTagArchive, "archive"),
	newKind(types.ErrTagHosting, "hosting"),
)

// Kind returns the name of the outermost error kind tagged in the chain of err, or "unknown"
func Kind(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		for _, k := range kinds {
			if goerr.HasTag(e, k.tag) {
				return k.name
			}
		}
	}
	return "unknown"
}

func HandleError(ctx context.Context, msg string, err error) {
	runID, _ := logging.CtxRunID(ctx)

	// Sending error to Sentry
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("run_id", string(runID))
		scope.SetTag("error_kind", Kind(err))
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(fmt.Sprintf("%v", k), v)
			}
		}
	})
	evID := hub.CaptureException(err)

	logging.From(ctx).Error(msg,
		"error", err,
		"kind", Kind(err),
		"run_id", runID,
		"sentry.EventID", evID,
	)
}
