package client

import (
	"context"
	"errors"
	"fmt"
)

// CallPaginated calls a cursor-paginated list method and follows
// response_metadata.next_cursor until it runs out, concatenating resultField
// across pages in arrival order. All other fields come from the first page.
//
// Rate-limited pages are retried after the server's Retry-After delay, up to
// the configured number of consecutive attempts per page (10 by default).
// Any other error aborts the whole call and no partial result is returned.
// A cursor repeated by the server ends pagination.
func (c *Client) CallPaginated(ctx context.Context, method string, params Params, resultField string) (Result, error) {
	restyClient, err := c.transport()
	if err != nil {
		return nil, err
	}

	params = params.clone()
	maxRetries := c.options.maxRateLimitRetries

	var result Result
	for retries := 1; ; retries++ {
		result, err = c.call(ctx, restyClient, method, params)
		if err == nil {
			break
		}

		if err := c.backoff(ctx, method, err, retries, maxRetries); err != nil {
			return nil, err
		}
	}

	accumulated, err := result.List(resultField)
	if err != nil {
		return nil, fmt.Errorf("slack API call to %s: %w", method, err)
	}

	nextCursor := result.NextCursor()
	oldCursor := ""
	retries := 0

	for nextCursor != "" && nextCursor != oldCursor {
		retries++
		oldCursor = nextCursor
		params["cursor"] = nextCursor

		page, err := c.call(ctx, restyClient, method, params)
		if err != nil {
			if err := c.backoff(ctx, method, err, retries, maxRetries); err != nil {
				return nil, err
			}

			// Retry the same cursor without tripping the repeat guard.
			oldCursor = ""
			continue
		}

		retries = 0

		items, err := page.List(resultField)
		if err != nil {
			return nil, fmt.Errorf("slack API call to %s: %w", method, err)
		}

		accumulated = append(accumulated, items...)
		nextCursor = page.NextCursor()
	}

	if accumulated != nil || result[resultField] != nil {
		result[resultField] = accumulated
	}

	return result, nil
}

// backoff sleeps for the delay requested by a rate-limited response. It
// returns err unchanged when err is not a rate limit, and a wrapped err once
// the attempt count exceeds maxRetries.
func (c *Client) backoff(ctx context.Context, method string, err error, attempt, maxRetries int) error {
	var rl *RateLimitedError
	if !errors.As(err, &rl) {
		return err
	}

	if attempt > maxRetries {
		return fmt.Errorf("giving up on %s after %d rate-limited attempts: %w", method, attempt, err)
	}

	c.options.requestLogger.Debugf("Rate-limited request to %s; retrying in %v", method, rl.RetryAfter)

	if err := c.options.sleep(ctx, rl.RetryAfter); err != nil {
		return fmt.Errorf("waiting to retry %s: %w", method, err)
	}

	return nil
}
