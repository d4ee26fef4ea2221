// Package aeerr holds the error kinds the service reports. Every error
// produced by the stores, the cycle controller and the effect dispatcher is
// joined with one of the sentinels below so callers can branch with errors.Is.
package aeerr

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

var (
	// ErrConfiguration is an invalid or unsaveable variant configuration.
	ErrConfiguration = stderrors.New("configuration error")

	// ErrDisplayUpdate is a token that no longer exists or rejected an update.
	ErrDisplayUpdate = stderrors.New("display update error")

	// ErrEffectPlayback is a missing effect asset or renderer failure.
	ErrEffectPlayback = stderrors.New("effect playback error")

	// ErrPersistence is a failed write to the backing store.
	ErrPersistence = stderrors.New("persistence error")

	// ErrNotFound marks a lookup of a record that does not exist. It is
	// joined alongside the kinds above, never used on its own by callers.
	ErrNotFound = stderrors.New("not found")
)

func wrap(kind, cause error, format string, args ...any) error {
	if cause == nil {
		return stderrors.Join(kind, errors.Errorf(format, args...))
	}

	return stderrors.Join(kind, errors.Wrapf(cause, format, args...))
}

func Configuration(cause error, format string, args ...any) error {
	return wrap(ErrConfiguration, cause, format, args...)
}

func DisplayUpdate(cause error, format string, args ...any) error {
	return wrap(ErrDisplayUpdate, cause, format, args...)
}

func EffectPlayback(cause error, format string, args ...any) error {
	return wrap(ErrEffectPlayback, cause, format, args...)
}

func Persistence(cause error, format string, args ...any) error {
	return wrap(ErrPersistence, cause, format, args...)
}

// NotFound builds a lookup failure for the named record.
func NotFound(format string, args ...any) error {
	return stderrors.Join(ErrNotFound, errors.Errorf(format, args...))
}
