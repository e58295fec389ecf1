package client

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	http_transport "github.com/oshokin/curl-logger/internal/transport/http"
	"github.com/oshokin/curl-logger/internal/utils"
	"github.com/oshokin/curl-logger/pkg/curl"
)

// Client sends HTTP requests and logs each of them as a curl command.
type Client struct {
	// httpClient is the HTTP client with the logging transport.
	httpClient *http.Client
	// formatter builds requests and renders commands.
	formatter *curl.Formatter
	// defaultHeaders are merged into every request description.
	defaultHeaders curl.Pairs
}

// New creates and returns a new Client.
func New(options ...Option) *Client {
	s := newSettings(options)

	httpClient := s.httpClient
	if httpClient == nil {
		timeout := s.timeout
		if timeout <= 0 {
			timeout = http_transport.DefaultTimeout
		}

		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient:     instrument(httpClient, s),
		formatter:      s.formatter,
		defaultHeaders: headerPairs(s.headers),
	}
}

// Instrument returns a copy of httpClient whose transport logs every request.
// Only the logging options (formatter, configuration, max log length, default headers) apply.
func Instrument(httpClient *http.Client, options ...Option) *http.Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return instrument(httpClient, newSettings(options))
}

// instrument chains HeaderInjector -> CurlTransport -> base transport,
// so the logged command carries the injected headers too.
// A base *http.Transport is cloned and routed through the described proxy.
func instrument(httpClient *http.Client, s *settings) *http.Client {
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	if transport, ok := base.(*http.Transport); ok {
		transport = transport.Clone()
		transport.Proxy = http_transport.ProxyFunc(s.formatter, transport.Proxy)
		base = transport
	}

	wrapped := *httpClient
	wrapped.Transport = http_transport.NewHeaderInjector(
		http_transport.NewCurlTransport(base, s.formatter, s.configuration, s.maxLogLength),
		utils.NewStaticHeaderProvider(s.headers))

	return &wrapped
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Do sends a request described by method, uri and opts.
// The caller must close the response body.
func (c *Client) Do(ctx context.Context, method curl.Method, uri string, opts *curl.Options) (*http.Response, error) {
	req, err := c.formatter.NewRequest(ctx, method, uri, c.withDefaultHeaders(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", method, err)
	}

	return resp, nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, uri string, opts *curl.Options) (*http.Response, error) {
	return c.Do(ctx, curl.MethodGet, uri, opts)
}

// Post sends a POST request.
func (c *Client) Post(ctx context.Context, uri string, opts *curl.Options) (*http.Response, error) {
	return c.Do(ctx, curl.MethodPost, uri, opts)
}

// Put sends a PUT request.
func (c *Client) Put(ctx context.Context, uri string, opts *curl.Options) (*http.Response, error) {
	return c.Do(ctx, curl.MethodPut, uri, opts)
}

// Patch sends a PATCH request.
func (c *Client) Patch(ctx context.Context, uri string, opts *curl.Options) (*http.Response, error) {
	return c.Do(ctx, curl.MethodPatch, uri, opts)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, uri string, opts *curl.Options) (*http.Response, error) {
	return c.Do(ctx, curl.MethodDelete, uri, opts)
}

// ApplyDefaultHeaders returns opts with the headers the caller did not set
// appended after its own, sorted by canonical name. opts itself is never modified.
func ApplyDefaultHeaders(opts *curl.Options, headers map[string]string) *curl.Options {
	return opts.WithDefaultHeaders(headerPairs(headers))
}

// DefaultHeaders returns the headers a Client adds to every request:
// User-Agent set to DefaultUserAgent, overridden and extended by headers.
// Keys are canonicalized.
func DefaultHeaders(headers map[string]string) map[string]string {
	result := map[string]string{"User-Agent": http_transport.DefaultUserAgent}

	for key, value := range headers {
		if key = strings.TrimSpace(key); key != "" {
			result[http.CanonicalHeaderKey(key)] = value
		}
	}

	return result
}

func (c *Client) withDefaultHeaders(opts *curl.Options) *curl.Options {
	return opts.WithDefaultHeaders(c.defaultHeaders)
}

// headerPairs converts headers into pairs sorted by canonical name.
func headerPairs(headers map[string]string) curl.Pairs {
	if len(headers) == 0 {
		return nil
	}

	canonical := make(http.Header, len(headers))
	for key, value := range headers {
		if key = strings.TrimSpace(key); key != "" {
			canonical.Set(key, value)
		}
	}

	keys := make([]string, 0, len(canonical))
	for key := range canonical {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	pairs := make(curl.Pairs, 0, len(keys))
	for _, key := range keys {
		pairs = pairs.Add(key, canonical.Get(key))
	}

	return pairs
}
