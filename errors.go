package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorRateLimited is the error code Slack returns when a request was throttled.
const ErrorRateLimited = "ratelimited"

var (
	ErrNilClient    = errors.New("slack client is nil")
	ErrNotConnected = errors.New("client not connected - call Connect() first")
)

// TransportError is an HTTP-level failure: an unexpected status code, a
// request that never got a response, or a body that is not valid JSON. It is
// never retried by the client.
type TransportError struct {
	Method     string
	StatusCode int
	Body       string
	Header     http.Header
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("slack API call to %s failed: %v", e.Method, e.Err)
	}

	if e.Err != nil {
		return fmt.Sprintf("slack API call to %s returned an unreadable response (status %d): %v", e.Method, e.StatusCode, e.Err)
	}

	body := e.Body
	if body == "" {
		body = "(empty error body)"
	}

	return fmt.Sprintf("slack API call to %s failed with status code %d: '%s'. Headers: %v", e.Method, e.StatusCode, body, e.Header)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError is an API-level error reported in the "error" field of a
// response, other than a rate limit. Code holds the server's error code
// verbatim, e.g. "channel_not_found".
type RemoteError struct {
	Method string
	Code   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("slack API call to %s returned an error: %s", e.Method, e.Code)
}

// RateLimitedError is returned when Slack throttled a request. RetryAfter is
// the delay requested by the server and Result is the decoded response.
type RateLimitedError struct {
	Method     string
	RetryAfter time.Duration
	Result     Result
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("slack API request to %s rate-limited; retry after %v", e.Method, e.RetryAfter)
}

// IsRateLimited reports whether err is, or wraps, a [RateLimitedError].
func IsRateLimited(err error) bool {
	var rl *RateLimitedError
	return errors.As(err, &rl)
}
