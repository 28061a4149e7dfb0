package piwik

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samvad-hq/piwik-bridge/pkg/httpclient"
)

const defaultTimeout = 15 * time.Second

// Config holds the startup defaults for a Client. It is read-only after
// construction; per-call parameters override individual fields for that
// call only.
type Config struct {
	// URL is the base analytics endpoint (host plus optional path, the
	// scheme is chosen per call from the secure flag).
	URL string
	// SiteID is the default tracked site, used when a call supplies
	// neither site_id nor idSite.
	SiteID string
	// TokenAuth is the default API auth token; "anonymous" is used when
	// both this and the per-call token are absent.
	TokenAuth string
	// Embed controls whether Tag renders the tracking snippet.
	Embed bool
}

// Logger is the minimal logging surface the client needs.
// zap's SugaredLogger satisfies it directly.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}

// Cache stores raw API response bodies keyed by the serialized query URL.
type Cache interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, body []byte) error
}

// Client issues analytics API queries against a Piwik endpoint.
// It is safe for concurrent use; each call owns its own Params bag.
type Client struct {
	cfg   Config
	http  httpclient.Client
	cache Cache
	log   Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport.
func WithHTTPClient(c httpclient.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithCache enables response caching.
func WithCache(c Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithLogger attaches a logger; without one the client stays silent.
func WithLogger(l Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.log = l
		}
	}
}

// WithTimeout sets the transport timeout for the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.http = httpclient.NewRestyClient(d, maxRedirects)
		}
	}
}

// New builds a Client around the given configuration.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:  cfg,
		http: httpclient.NewRestyClient(defaultTimeout, maxRedirects),
		log:  nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the outcome of an API call.
type Result struct {
	// URL is the fully serialized query URL.
	URL string
	// Body is the raw JSON reply; nil for dry-run results.
	Body json.RawMessage
	// DryRun marks a result produced by api_test mode (no network call).
	DryRun bool
	// Cached marks a body served from the response cache.
	Cached bool
}

// Decode unmarshals the JSON body into v.
func (r *Result) Decode(v interface{}) error {
	if r == nil || len(r.Body) == 0 {
		return fmt.Errorf("piwik: result has no body")
	}
	return json.Unmarshal(r.Body, v)
}

// Do builds the query for method and dispatches it, blocking until the
// round-trip completes. The strict error channel: a nil error with a nil
// result means the call was suppressed (dnt); transport and HTTP-status
// failures come back as *TransportError; a missing endpoint as
// ErrNoEndpoint. When api_test is truthy the returned result carries only
// the URL and no network activity happens.
func (c *Client) Do(ctx context.Context, method string, params Params) (*Result, error) {
	if params == nil {
		params = Params{}
	}

	if v, ok := params.take("dnt"); ok && v.True() {
		c.log.Debugf("piwik: dnt set, suppressing %s", method)
		return nil, nil
	}

	dryRun, _ := params.take("api_test")

	u, err := c.BuildURL(method, params)
	if err != nil {
		return nil, err
	}

	if dryRun.True() {
		return &Result{URL: u, DryRun: true}, nil
	}

	if c.cache != nil {
		body, ok, err := c.cache.Get(u)
		if err != nil {
			c.log.Warnf("piwik: cache read failed: %v", err)
		} else if ok {
			return &Result{URL: u, Body: body, Cached: true}, nil
		}
	}

	resp, err := c.http.Get(ctx, u, nil)
	if err != nil {
		return nil, &TransportError{URL: u, Err: err}
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, &TransportError{URL: u, StatusCode: code}
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, &TransportError{URL: u, Err: fmt.Errorf("invalid JSON reply")}
	}

	if c.cache != nil {
		if err := c.cache.Put(u, body); err != nil {
			c.log.Warnf("piwik: cache write failed: %v", err)
		}
	}

	return &Result{URL: u, Body: body}, nil
}

// API is the compatibility surface: any failure degrades to a nil result,
// so "request failed" and "no data" are indistinguishable here. Errors are
// logged and swallowed; callers needing the distinction use Do.
func (c *Client) API(ctx context.Context, method string, params Params) *Result {
	res, err := c.Do(ctx, method, params)
	if err != nil {
		c.log.Warnf("piwik: %s failed: %v", method, err)
		return nil
	}
	return res
}

// APIAsync dispatches the call in the background and returns immediately.
// The callback is invoked exactly once, with the result or nil on failure.
func (c *Client) APIAsync(ctx context.Context, method string, params Params, fn func(*Result)) {
	if fn == nil {
		return
	}
	go func() {
		fn(c.API(ctx, method, params))
	}()
}
