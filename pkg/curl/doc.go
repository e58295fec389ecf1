// Package curl renders an outgoing HTTP request description as an equivalent
// curl command line, suitable for pasting into a terminal while debugging.
//
// The package is pure: formatting never performs I/O and is safe to call from
// any number of goroutines. Values are interpolated inside single quotes as-is,
// embedded quotes are not shell-escaped.
package curl
