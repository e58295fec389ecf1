package client

import (
	"net/http"
	"time"

	"github.com/oshokin/curl-logger/pkg/curl"
	"github.com/oshokin/curl-logger/pkg/curllog"
)

// Option configures a Client.
type Option func(*settings)

type settings struct {
	httpClient     *http.Client
	formatter      *curl.Formatter
	configuration  func() curllog.Configuration
	maxLogLength   uint64
	defaultHeaders map[string]string
	timeout        time.Duration
	// headers are the defaults actually sent and logged, User-Agent included.
	headers map[string]string
}

// WithHTTPClient makes the Client send requests through a copy of httpClient.
// The copy's transport is wrapped, httpClient itself is not modified.
// When the transport is an *http.Transport (or nil), a clone of it routes
// requests through the described proxy and keeps its own Proxy func as the fallback.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *settings) {
		s.httpClient = httpClient
	}
}

// WithFormatter sets the formatter used to build requests and render commands.
func WithFormatter(formatter *curl.Formatter) Option {
	return func(s *settings) {
		s.formatter = formatter
	}
}

// WithConfiguration sets a fixed logging configuration instead of the process-wide one.
func WithConfiguration(cfg curllog.Configuration) Option {
	return func(s *settings) {
		s.configuration = func() curllog.Configuration {
			return cfg
		}
	}
}

// WithMaxLogLength limits the length of a logged message.
func WithMaxLogLength(maxLogLength uint64) Option {
	return func(s *settings) {
		s.maxLogLength = maxLogLength
	}
}

// WithDefaultHeaders sets headers added to every request that does not carry them.
// They extend the default User-Agent, which they may override.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(s *settings) {
		s.defaultHeaders = headers
	}
}

// WithTimeout sets the request timeout. It is ignored together with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

func newSettings(options []Option) *settings {
	s := &settings{
		formatter:     curl.DefaultFormatter,
		configuration: curllog.Current,
	}

	for _, option := range options {
		option(s)
	}

	if s.formatter == nil {
		s.formatter = curl.DefaultFormatter
	}

	if s.configuration == nil {
		s.configuration = curllog.Current
	}

	s.headers = DefaultHeaders(s.defaultHeaders)

	return s
}
