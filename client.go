package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// Client is a Slack Web API client. Create it with [New] and call
// [Client.Connect] once before issuing requests. A connected client holds no
// mutable state and is safe for concurrent use.
type Client struct {
	token       string
	options     *Options
	restyClient atomic.Pointer[resty.Client]
	connectMu   sync.Mutex
}

// New returns a client authenticating with token. Options are applied in
// order; invalid option values are ignored.
func New(token string, opts ...Option) *Client {
	options := newClientOptions()

	for _, o := range opts {
		o(options)
	}

	return &Client{
		token:   token,
		options: options,
	}
}

// Connect validates the configuration, sets up the HTTP transport and checks
// the token with auth.test. Calling Connect on a connected client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	if c == nil {
		return ErrNilClient
	}

	c.connectMu.Lock()
	defer c.connectMu.Unlock()

	if c.restyClient.Load() != nil {
		return nil
	}

	if c.token == "" {
		return errors.New("token must be set")
	}

	if err := c.options.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	restyClient := resty.New().
		SetBaseURL(c.options.baseURL).
		SetTimeout(c.options.timeout).
		SetRetryCount(c.options.retryCount).
		SetRetryWaitTime(c.options.retryWaitTime).
		SetRetryMaxWaitTime(c.options.retryMaxWaitTime).
		AddRetryCondition(c.options.retryPolicy).
		SetLogger(c.options.requestLogger).
		SetHeaders(c.options.requestHeaders)

	if c.options.proxyURL != "" {
		restyClient.SetProxy(c.options.proxyURL)
	}

	if _, err := c.call(ctx, restyClient, "auth.test", nil); err != nil {
		return fmt.Errorf("failed to verify Slack API token: %w", err)
	}

	c.restyClient.Store(restyClient)

	return nil
}

// Call posts one API method and classifies the outcome. It returns a
// [*RateLimitedError] when Slack throttled the request, a [*RemoteError] for
// any other "error" in the response and a [*TransportError] for HTTP-level
// failures. Call never retries.
func (c *Client) Call(ctx context.Context, method string, params Params) (Result, error) {
	restyClient, err := c.transport()
	if err != nil {
		return nil, err
	}

	return c.call(ctx, restyClient, method, params)
}

func (c *Client) transport() (*resty.Client, error) {
	if c == nil {
		return nil, ErrNilClient
	}

	restyClient := c.restyClient.Load()
	if restyClient == nil {
		return nil, ErrNotConnected
	}

	return restyClient, nil
}

func (c *Client) call(ctx context.Context, restyClient *resty.Client, method string, params Params) (Result, error) {
	if method == "" {
		return nil, errors.New("method must not be empty")
	}

	body := params.clone()
	body["token"] = c.token

	form, err := body.formData()
	if err != nil {
		return nil, fmt.Errorf("slack API call to %s: %w", method, err)
	}

	c.options.requestLogger.Debugf("Making Slack API request: %s", method)

	resp, err := restyClient.R().
		SetContext(ctx).
		SetFormData(form).
		Post("/api/" + method)
	if err != nil {
		return nil, &TransportError{Method: method, Err: fmt.Errorf("POST /api/%s: %w", method, err)}
	}

	c.options.requestLogger.Debugf("Finished Slack API request: %s (status %d)", method, resp.StatusCode())

	result, err := decodeResponse(method, resp)
	if err != nil {
		return nil, err
	}

	switch code := result.ErrorCode(); code {
	case "":
		return result, nil
	case ErrorRateLimited:
		return nil, &RateLimitedError{
			Method:     method,
			RetryAfter: retryAfter(resp.Header()),
			Result:     result,
		}
	default:
		return nil, &RemoteError{Method: method, Code: code}
	}
}
