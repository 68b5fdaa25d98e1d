package scraper

import (
	"fmt"

	"github.com/pauljones0/garden-stock-bot/internal/util"
)

// FailureKind categorizes a failed fetch for logging.
type FailureKind string

const (
	FailureTimeout       FailureKind = "timeout"
	FailureHTTPStatus    FailureKind = "http-status"
	FailureNetwork       FailureKind = "network"
	FailureMalformedBody FailureKind = "malformed-body"
)

// FetchError is returned by every Fetcher when no fragments could be produced.
type FetchError struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FailureHTTPStatus {
		return fmt.Sprintf("fetch failed (%s %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func transportError(err error) *FetchError {
	if util.IsTimeout(err) {
		return &FetchError{Kind: FailureTimeout, Err: err}
	}
	return &FetchError{Kind: FailureNetwork, Err: err}
}

func statusError(code int, body []byte) *FetchError {
	return &FetchError{
		Kind:       FailureHTTPStatus,
		StatusCode: code,
		Err:        fmt.Errorf("unexpected status, body: %s", util.Snippet(body, 200)),
	}
}

func malformedError(format string, args ...any) *FetchError {
	return &FetchError{Kind: FailureMalformedBody, Err: fmt.Errorf(format, args...)}
}
