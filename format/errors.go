package format

import (
	"errors"
	"fmt"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeUnknownFormat indicates no extension or media type matched.
	ErrCodeUnknownFormat ErrorCode = "UNKNOWN_FORMAT"
	// ErrCodeAmbiguousHint indicates an explicit hint named an unregistered format.
	ErrCodeAmbiguousHint ErrorCode = "AMBIGUOUS_HINT"
	// ErrCodeNetworkFailure indicates a remote fetch failed.
	ErrCodeNetworkFailure ErrorCode = "NETWORK_FAILURE"
)

var (
	// ErrUnknownFormat indicates that no registered format matched the source.
	ErrUnknownFormat = errors.New("no registered format matches source")
	// ErrAmbiguousHint indicates an explicit format hint that the registry
	// does not know. This is a configuration error, never silently defaulted.
	ErrAmbiguousHint = errors.New("format hint not present in registry")
	// ErrNetworkFailure indicates a failed remote fetch. It is produced by
	// the HTTP collaborator and passed through unmodified; the resolver
	// never retries.
	ErrNetworkFailure = errors.New("remote fetch failed")
)

// Code returns the error code for an error, or empty for nil errors and
// errors outside this package's taxonomy.
func Code(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownFormat):
		return ErrCodeUnknownFormat
	case errors.Is(err, ErrAmbiguousHint):
		return ErrCodeAmbiguousHint
	case errors.Is(err, ErrNetworkFailure):
		return ErrCodeNetworkFailure
	default:
		return ""
	}
}

// ResolveError carries the failure kind together with the source that
// failed to resolve, for diagnostics.
type ResolveError struct {
	// Source is the descriptor that failed to resolve.
	Source Source
	// Err is the underlying sentinel error.
	Err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Source)
}

func (e *ResolveError) Unwrap() error { return e.Err }

func resolveError(src Source, err error) error {
	return &ResolveError{Source: src, Err: err}
}
