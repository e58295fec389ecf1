package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/oshokin/curl-logger/internal/logger"
	"github.com/oshokin/curl-logger/pkg/curl"
	"github.com/oshokin/curl-logger/pkg/curllog"
)

// CurlTransport is a custom http.RoundTripper that logs every request as a curl
// command before handing it to the next RoundTripper.
//
// The command is built from the description stored in the request context by
// curl.Formatter.NewRequest. Requests without one (built directly with net/http,
// or follow-ups of a redirect) are described from the *http.Request itself.
type CurlTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// formatter renders the commands.
	formatter *curl.Formatter
	// configuration returns the logging settings for each request.
	configuration func() curllog.Configuration
	// maxLogLength is the maximum length of a logged message.
	maxLogLength uint64
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewCurlTransport creates and returns a new instance of CurlTransport.
// A nil next means http.DefaultTransport, a nil formatter curl.DefaultFormatter
// and a nil configuration curllog.Current.
// If maxLogLength is 0, it defaults to DefaultMaxLogLength.
func NewCurlTransport(
	next http.RoundTripper,
	formatter *curl.Formatter,
	configuration func() curllog.Configuration,
	maxLogLength uint64,
) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	if formatter == nil {
		formatter = curl.DefaultFormatter
	}

	if configuration == nil {
		configuration = curllog.Current
	}

	if maxLogLength == 0 {
		maxLogLength = DefaultMaxLogLength
	}

	return &CurlTransport{
		next:          next,
		formatter:     formatter,
		configuration: configuration,
		maxLogLength:  maxLogLength,
	}
}

// RoundTrip logs the request and executes it.
// Formatting or sink errors abort the request before it is sent.
func (t *CurlTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	cfg := t.configuration()
	if !cfg.Enabled {
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()

	spec, err := t.describe(req)
	if err != nil {
		return nil, err
	}

	command, err := t.formatter.FormatSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to format request: %w", err)
	}

	if err = cfg.Emit(ctx, t.truncate(curllog.Message(command))); err != nil {
		return nil, err
	}

	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(startTime)

	if err != nil {
		logger.Debugf(ctx, "Request failed: %s %s | Error: %v", req.Method, spec.URI, err)

		return nil, err
	}

	logger.Debugf(ctx, "%s %s [%d] %s", req.Method, spec.URI, resp.StatusCode, duration)

	return resp, nil
}

// describe returns the description to log for req.
// A redirect reuses the original context, so its stored description is ignored.
func (t *CurlTransport) describe(req *http.Request) (curl.Spec, error) {
	if spec, ok := curl.SpecFromContext(req.Context()); ok && req.Response == nil {
		return spec, nil
	}

	spec, err := curl.FromRequest(req)
	if err != nil {
		return curl.Spec{}, fmt.Errorf("failed to describe request: %w", err)
	}

	return spec, nil
}

// truncate cuts message to at most maxLogLength bytes without splitting a rune.
func (t *CurlTransport) truncate(message string) string {
	if uint64(len(message)) <= t.maxLogLength {
		return message
	}

	cut := int(t.maxLogLength) //nolint:gosec // Bounded by len(message).
	for cut > 0 && !utf8.RuneStart(message[cut]) {
		cut--
	}

	return message[:cut] + truncatedSuffix
}
