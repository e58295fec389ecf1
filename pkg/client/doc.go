// Package client provides an HTTP client whose requests are logged as curl commands.
//
// Every verb helper (Get, Post, Put, Patch, Delete) goes through Client.Do, which builds
// the request with curl.Formatter.NewRequest. The formatter stores the request description
// in the context, and the transport chain logs it exactly once before the request is sent:
//
//	CurlTransport -> HeaderInjector -> http.Transport
//
// Whether anything is logged is decided by the curllog configuration at the time of the call.
// Instrument applies the same chain to an existing *http.Client.
package client
