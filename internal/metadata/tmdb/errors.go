package tmdb

import (
	"errors"
	"fmt"
)

var ErrAccessTokenMissing = errors.New("TMDB access token is not configured")

// FailureKind classifies a Failure for logging. Callers do not branch on it:
// recovery above the client is the same for every kind.
type FailureKind string

const (
	FailureNetwork   FailureKind = "network"
	FailureProvider  FailureKind = "provider"
	FailureMalformed FailureKind = "malformed"
)

// Failure is the single error type returned by Client for any failed request.
type Failure struct {
	Kind    FailureKind
	Path    string
	Status  int
	Message string
	Err     error
}

func (f *Failure) Error() string {
	switch {
	case f.Status != 0 && f.Message != "":
		return fmt.Sprintf("tmdb %s %s: status %d: %s", f.Kind, f.Path, f.Status, f.Message)
	case f.Status != 0:
		return fmt.Sprintf("tmdb %s %s: status %d", f.Kind, f.Path, f.Status)
	case f.Err != nil:
		return fmt.Sprintf("tmdb %s %s: %v", f.Kind, f.Path, f.Err)
	default:
		return fmt.Sprintf("tmdb %s %s", f.Kind, f.Path)
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// IsFailure reports whether err is (or wraps) a *Failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

// IsRateLimited reports whether err is a provider failure with status 429.
func IsRateLimited(err error) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == FailureProvider && f.Status == 429
}
