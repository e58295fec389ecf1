package http

import (
	"net/http"
	"slices"

	"github.com/oshokin/curl-logger/internal/utils"
	"github.com/oshokin/curl-logger/pkg/curl"
)

// HeaderInjector is a custom http.RoundTripper that adds default headers to HTTP requests.
// It wraps another http.RoundTripper and sets every default header the request does not carry yet.
type HeaderInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// headerProvider supplies the default headers.
	headerProvider utils.HeaderProvider
}

// NewHeaderInjector creates and returns a new instance of HeaderInjector.
// It takes an underlying http.RoundTripper and a HeaderProvider to supply the headers.
func NewHeaderInjector(next http.RoundTripper, headerProvider utils.HeaderProvider) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &HeaderInjector{
		next:           next,
		headerProvider: headerProvider,
	}
}

// RoundTrip executes a single HTTP transaction after injecting missing headers.
// The request is cloned before it is changed, as RoundTrippers must not modify their input.
// When the request carries a description (see curl.SpecFromContext), the injected
// headers are added to it too, so a CurlTransport further down logs them.
// It implements the http.RoundTripper interface.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	headers := t.headerProvider.GetHeaders()

	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	var (
		clone    *http.Request
		injected curl.Pairs
	)

	for _, key := range keys {
		if hasHeader(req.Header, key) {
			continue
		}

		if clone == nil {
			clone = req.Clone(req.Context())
		}

		for _, value := range headers[key] {
			clone.Header.Add(key, value)
			injected = injected.Add(key, value)
		}
	}

	if clone == nil {
		return t.next.RoundTrip(req)
	}

	if spec, ok := curl.SpecFromContext(req.Context()); ok && req.Response == nil {
		spec.Options = spec.Options.WithDefaultHeaders(injected)
		clone = clone.WithContext(curl.WithSpec(clone.Context(), spec))
	}

	return t.next.RoundTrip(clone)
}

// hasHeader reports whether h has a non-empty value for key,
// matching keys case-insensitively as requests may carry non-canonical ones.
func hasHeader(h http.Header, key string) bool {
	if h.Get(key) != "" {
		return true
	}

	for existing, values := range h {
		if http.CanonicalHeaderKey(existing) == http.CanonicalHeaderKey(key) && len(values) > 0 && values[0] != "" {
			return true
		}
	}

	return false
}
