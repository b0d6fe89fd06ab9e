package analyzer

import (
	"errors"
	"fmt"
)

// ErrInsufficientComparison is returned when fewer than two URLs could be
// analyzed in comparison mode.
var ErrInsufficientComparison = errors.New("comparison requires at least 2 successfully analyzed URLs")

// FetchError reports a failed page fetch: transport error, timeout, or a
// non-2xx status. It is terminal for the affected URL.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
