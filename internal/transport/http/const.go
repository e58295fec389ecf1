package http

import (
	"time"

	"github.com/oshokin/curl-logger/internal/version"
)

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxLogLength is the default maximum size (in bytes) of a logged command.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// truncatedSuffix marks a message that was cut at the maximum length.
	truncatedSuffix = "... [truncated]"
)

// DefaultUserAgent is the User-Agent sent when the caller does not set one.
//
//nolint:gochecknoglobals // Depends on the link-time version.
var DefaultUserAgent = "curl-logger/" + version.Short()
