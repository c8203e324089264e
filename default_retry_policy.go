package client

import (
	"context"
	"errors"
	"net"

	"github.com/go-resty/resty/v2"
)

// DefaultRetryPolicy is the transport retry condition used by [Client]. It
// only retries requests that failed before any response arrived, such as a
// reset or refused connection, and only when [WithRetryCount] is above zero.
// A received response is never retried here: rate limits are handled by
// [Client.CallPaginated] using the server's Retry-After delay, and every other
// status is reported to the caller as a [TransportError].
//
// Context cancellation, deadline exceeded, and DNS resolution errors are
// never retried. Supply a custom function via [WithRetryPolicy] to override
// this behaviour.
func DefaultRetryPolicy(r *resty.Response, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return false
	}

	// A response means the server answered; never replay it.
	if r != nil && r.RawResponse != nil {
		return false
	}

	return true
}
