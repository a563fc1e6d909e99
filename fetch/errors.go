package fetch

import (
	"fmt"

	"github.com/geoknoesis/rdfany/format"
)

// FetchError reports a failed remote fetch. It wraps
// format.ErrNetworkFailure so callers can classify it with format.Code.
type FetchError struct {
	// URL is the request URL.
	URL string
	// StatusCode is the HTTP status, or 0 when the request never completed.
	StatusCode int
	// Err is the underlying transport or status error.
	Err error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is classifies every fetch failure as a network failure, so
// errors.Is(err, format.ErrNetworkFailure) holds while the transport error
// remains reachable through Unwrap.
func (e *FetchError) Is(target error) bool { return target == format.ErrNetworkFailure }
