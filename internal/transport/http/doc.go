// Package http provides the http.RoundTripper middleware of the client:
// logging every outgoing request as a curl command, injecting default headers
// and routing requests through the proxy they were described with.
package http
