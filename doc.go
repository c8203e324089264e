// Package client provides a resilient client for the Slack Web API.
//
// The client wraps [github.com/go-resty/resty/v2] for transport, follows
// cursor pagination on list methods, backs off on rate limits as instructed
// by the server, and assembles the workspace snapshot a bot needs before
// opening a real-time session.
//
// # Basic Usage
//
//	c := client.New("xoxb-...",
//	    client.WithLinkNames(true),
//	    client.WithRequestLogger(client.NewSlogLogger(slog.Default())),
//	)
//
//	if err := c.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	snapshot, err := c.BuildSnapshot(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration
//
// All configuration is supplied as [Option] functions passed to [New].
// Invalid values are silently ignored and the default is retained;
// all configuration is validated when [Client.Connect] is called.
//
// The posting defaults [WithParse], [WithLinkNames], [WithUnfurlLinks] and
// [WithUnfurlMedia] are only sent when set. Slack treats a missing flag as
// "use the workspace default", which is not the same as false.
//
// # Errors
//
// Every method returns one of three error types (possibly wrapped):
// [*TransportError] for HTTP-level failures, [*RemoteError] for an error code
// reported by Slack, and [*RateLimitedError] when Slack throttled the request.
// Use [errors.As] to tell them apart.
//
// # Pagination and Rate Limits
//
// [Client.CallPaginated] and the list methods built on it fetch pages one at
// a time. A rate-limited page is retried with the same cursor after the
// Retry-After delay, up to 10 consecutive times by default
// ([WithMaxRateLimitRetries]). The wait honours context cancellation. Single
// calls made with [Client.Call] are never retried.
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger] to
// integrate with your logging library, or use [NewSlogLogger]. The default
// [NoopLogger] discards all log output. The client logs method names only,
// never the token or response bodies.
package client
