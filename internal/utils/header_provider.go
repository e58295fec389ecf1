package utils

//go:generate $MOCKGEN -source=header_provider.go -destination=mocks/header_provider_mock.go

import "net/http"

// HeaderProvider is an interface that defines a method for retrieving default request headers.
type HeaderProvider interface {
	// GetHeaders returns the headers to add to requests that lack them.
	GetHeaders() http.Header
}

// StaticHeaderProvider is a basic implementation of the HeaderProvider interface.
// It provides a fixed set of headers that is set during initialization.
type StaticHeaderProvider struct {
	// headers are the headers to return.
	headers http.Header
}

// NewStaticHeaderProvider creates and returns a new instance of StaticHeaderProvider.
// Keys of headers are canonicalized, empty keys are dropped.
func NewStaticHeaderProvider(headers map[string]string) HeaderProvider {
	result := make(http.Header, len(headers))

	for key, value := range headers {
		if key == "" {
			continue
		}

		result.Set(key, value)
	}

	return &StaticHeaderProvider{headers: result}
}

// GetHeaders returns a copy of the configured headers.
func (p *StaticHeaderProvider) GetHeaders() http.Header {
	return p.headers.Clone()
}
