// Package curllog decides whether outgoing requests are logged as curl
// commands and where those commands go.
//
// Configuration is process-wide and meant to be set once at startup through
// Configure and read afterwards. Reads are safe from any goroutine, but
// reconfiguring while requests are in flight gives no ordering guarantee
// between the change and those requests.
package curllog
