package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultBaseURL is the Slack Web API host. Methods are posted to <base>/api/<method>.
	DefaultBaseURL = "https://slack.com"

	// DefaultMaxRateLimitRetries is the number of consecutive rate-limited
	// responses tolerated for a single page before giving up.
	DefaultMaxRateLimitRetries = 10
)

type Option func(*Options)

type Options struct {
	baseURL             string
	proxyURL            string
	timeout             time.Duration
	retryCount          int
	retryWaitTime       time.Duration
	retryMaxWaitTime    time.Duration
	maxRateLimitRetries int
	requestLogger       RequestLogger
	retryPolicy         func(*resty.Response, error) bool
	requestHeaders      map[string]string
	postMessage         postMessageOptions
	sleep               func(context.Context, time.Duration) error
}

// postMessageOptions holds the chat.postMessage defaults. A nil field means
// "not configured" and is never sent.
type postMessageOptions struct {
	parse       *string
	linkNames   *bool
	unfurlLinks *bool
	unfurlMedia *bool
}

func newClientOptions() *Options {
	return &Options{
		baseURL:             DefaultBaseURL,
		timeout:             30 * time.Second,
		retryCount:          0,
		retryWaitTime:       500 * time.Millisecond,
		retryMaxWaitTime:    3 * time.Second,
		maxRateLimitRetries: DefaultMaxRateLimitRetries,
		requestLogger:       &NoopLogger{},
		retryPolicy:         DefaultRetryPolicy,
		requestHeaders: map[string]string{
			"Accept": "application/json",
		},
		sleep: sleepContext,
	}
}

func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithProxy routes all requests through the given proxy URL.
func WithProxy(proxyURL string) Option {
	return func(o *Options) {
		o.proxyURL = strings.TrimSpace(proxyURL)
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithRetryCount sets how many times the transport retries a request that
// failed without any HTTP response. Responses are never retried by the
// transport; rate limits are handled by [Client.CallPaginated].
func WithRetryCount(count int) Option {
	return func(o *Options) {
		if count >= 0 {
			o.retryCount = count
		}
	}
}

func WithRetryWaitTime(waitTime time.Duration) Option {
	return func(o *Options) {
		if waitTime >= 100*time.Millisecond {
			o.retryWaitTime = waitTime
		}
	}
}

func WithRetryMaxWaitTime(maxWaitTime time.Duration) Option {
	return func(o *Options) {
		if maxWaitTime >= 100*time.Millisecond {
			o.retryMaxWaitTime = maxWaitTime
		}
	}
}

// WithMaxRateLimitRetries sets the number of consecutive rate-limited
// responses tolerated for one page of a paginated call.
func WithMaxRateLimitRetries(count int) Option {
	return func(o *Options) {
		if count >= 0 {
			o.maxRateLimitRetries = count
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

func WithRetryPolicy(policy func(*resty.Response, error) bool) Option {
	return func(o *Options) {
		if policy != nil {
			o.retryPolicy = policy
		}
	}
}

func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" || strings.EqualFold(header, "Content-Type") || strings.EqualFold(header, "Accept") {
			return
		}

		o.requestHeaders[header] = value
	}
}

// WithParse sets the parse mode sent with [Client.SendMessages].
func WithParse(mode string) Option {
	return func(o *Options) {
		o.postMessage.parse = &mode
	}
}

// WithLinkNames sets link_names (sent as 1 or 0) for [Client.SendMessages].
func WithLinkNames(enabled bool) Option {
	return func(o *Options) {
		o.postMessage.linkNames = &enabled
	}
}

func WithUnfurlLinks(enabled bool) Option {
	return func(o *Options) {
		o.postMessage.unfurlLinks = &enabled
	}
}

func WithUnfurlMedia(enabled bool) Option {
	return func(o *Options) {
		o.postMessage.unfurlMedia = &enabled
	}
}

// Validate reports the first invalid setting, if any.
func (o *Options) Validate() error {
	if o.baseURL == "" {
		return errors.New("baseURL must not be empty")
	}

	if _, err := url.ParseRequestURI(o.baseURL); err != nil {
		return fmt.Errorf("baseURL is not a valid URL: %w", err)
	}

	if o.proxyURL != "" {
		if _, err := url.ParseRequestURI(o.proxyURL); err != nil {
			return fmt.Errorf("proxyURL is not a valid URL: %w", err)
		}
	}

	if o.timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if o.retryCount < 0 {
		return errors.New("retryCount must be non-negative")
	}

	if o.retryCount > 100 {
		return errors.New("retryCount must not exceed 100")
	}

	if o.retryWaitTime < 100*time.Millisecond {
		return errors.New("retryWaitTime must be at least 100ms")
	}

	if o.retryWaitTime > time.Minute {
		return fmt.Errorf("retryWaitTime must not exceed %v", time.Minute)
	}

	if o.retryMaxWaitTime < 100*time.Millisecond {
		return errors.New("retryMaxWaitTime must be at least 100ms")
	}

	if o.retryMaxWaitTime > 5*time.Minute {
		return fmt.Errorf("retryMaxWaitTime must not exceed %v", 5*time.Minute)
	}

	if o.retryMaxWaitTime < o.retryWaitTime {
		return fmt.Errorf("retryMaxWaitTime (%v) must be greater than or equal to retryWaitTime (%v)", o.retryMaxWaitTime, o.retryWaitTime)
	}

	if o.maxRateLimitRetries < 0 {
		return errors.New("maxRateLimitRetries must be non-negative")
	}

	if o.requestLogger == nil {
		return errors.New("requestLogger must not be nil")
	}

	if o.retryPolicy == nil {
		return errors.New("retryPolicy must not be nil")
	}

	if o.sleep == nil {
		return errors.New("sleep must not be nil")
	}

	return nil
}

// params returns the configured chat.postMessage defaults. Unset values are
// left out so the API applies its own defaults.
func (p postMessageOptions) params() Params {
	params := Params{}

	if p.parse != nil {
		params["parse"] = *p.parse
	}

	if p.linkNames != nil {
		params["link_names"] = *p.linkNames
	}

	if p.unfurlLinks != nil {
		params["unfurl_links"] = *p.unfurlLinks
	}

	if p.unfurlMedia != nil {
		params["unfurl_media"] = *p.unfurlMedia
	}

	return params
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
