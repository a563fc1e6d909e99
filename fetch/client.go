package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/geoknoesis/rdfany/format"
	"github.com/geoknoesis/rdfany/internal/version"
)

// DefaultTimeout bounds a single fetch when the caller supplies no
// http.Client of its own.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps response bodies read into memory.
const maxBodyBytes = 256 << 20

// Response is the outcome of a negotiated fetch.
type Response struct {
	// Body is the response payload.
	Body []byte
	// ContentType is the raw Content-Type header value, parameters included.
	ContentType string
	// StatusCode is the HTTP status of the final response.
	StatusCode int
	// FromCache reports whether the response was served from the in-memory cache.
	FromCache bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRegistry sets the format registry used to build the Accept header.
func WithRegistry(reg *format.Registry) Option {
	return func(c *Client) { c.registry = reg }
}

// WithHeaders adds extra request headers sent on every fetch.
// Accept and User-Agent may be overridden here.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithLogger sets the structured logger. Default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithoutCache disables the in-memory response cache.
func WithoutCache() Option {
	return func(c *Client) { c.cache = nil }
}

// Client fetches remote RDF sources with content negotiation. It is the
// HTTP collaborator of the format resolver: it sends the registry's Accept
// header and reports the observed Content-Type back to the caller.
//
// A Client is safe for concurrent use.
type Client struct {
	http     *http.Client
	registry *format.Registry
	headers  map[string]string
	log      *zap.Logger
	cache    *responseCache
}

// NewClient returns a Client with the default registry, a 30 second
// timeout, and response caching enabled.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		registry: format.Default(),
		headers:  make(map[string]string),
		log:      zap.NewNop(),
		cache:    newResponseCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs a negotiated GET of url. Network errors and non-2xx
// statuses are reported as NetworkFailure errors; they are never retried
// here, and never absorbed.
func (c *Client) Fetch(ctx context.Context, url string) (*Response, error) {
	return c.fetch(ctx, url, c.registry.AcceptHeaderValue())
}

// FetchWithAccept performs a GET with an explicit Accept header, bypassing
// the registry's negotiation list.
func (c *Client) FetchWithAccept(ctx context.Context, url, accept string) (*Response, error) {
	return c.fetch(ctx, url, accept)
}

func (c *Client) fetch(ctx context.Context, url, accept string) (*Response, error) {
	if c.cache != nil {
		if cached, ok := c.cache.get(url); ok {
			c.log.Debug("cache hit", zap.String("url", url))
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", "rdfany/"+version.Version)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	c.log.Debug("fetching", zap.String("url", url), zap.String("accept", accept))
	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(httpResp.Body, 4096))
		return nil, &FetchError{URL: url, StatusCode: httpResp.StatusCode, Err: fmt.Errorf("unexpected status %s", httpResp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: httpResp.StatusCode, Err: err}
	}

	resp := &Response{
		Body:        body,
		ContentType: httpResp.Header.Get("Content-Type"),
		StatusCode:  httpResp.StatusCode,
	}
	c.log.Debug("fetched",
		zap.String("url", url),
		zap.String("content_type", resp.ContentType),
		zap.Int("bytes", len(body)))

	if c.cache != nil {
		c.cache.store(url, req, httpResp, resp)
	}
	return resp, nil
}

// Source builds a format.Source for a fetched URL, carrying the observed
// Content-Type for resolution.
func (r *Response) Source(url string, hint format.Format) format.Source {
	return format.Source{URL: url, Hint: hint, ContentType: r.ContentType}
}
