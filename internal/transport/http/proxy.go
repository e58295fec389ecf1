package http

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/oshokin/curl-logger/pkg/curl"
)

// ProxyFunc returns a function for http.Transport.Proxy that routes a request
// through the proxy it was described with, then through the formatter's default
// proxy, and otherwise through fallback. A nil fallback means no proxy.
// The same precedence is used when the command is rendered.
func ProxyFunc(
	formatter *curl.Formatter,
	fallback func(*http.Request) (*url.URL, error),
) func(*http.Request) (*url.URL, error) {
	return func(req *http.Request) (*url.URL, error) {
		proxy := proxyFor(req, formatter)
		if proxy == nil {
			if fallback == nil {
				return nil, nil //nolint:nilnil // No proxy is a valid answer for http.Transport.Proxy.
			}

			return fallback(req)
		}

		proxyURL, err := url.Parse(proxy.URL())
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", proxy.Address, err)
		}

		return proxyURL, nil
	}
}

func proxyFor(req *http.Request, formatter *curl.Formatter) *curl.Proxy {
	if spec, ok := curl.SpecFromContext(req.Context()); ok && spec.Options != nil && spec.Options.Proxy.IsSet() {
		return spec.Options.Proxy
	}

	if formatter != nil && formatter.Proxy.IsSet() {
		return formatter.Proxy
	}

	return nil
}
