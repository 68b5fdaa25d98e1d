package util

import (
	"context"
	"errors"
	"net"
)

// IsTimeout reports whether err came from an expired deadline or client timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Snippet shortens a response body for log and error messages.
func Snippet(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
