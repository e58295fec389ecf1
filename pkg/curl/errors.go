package curl

import "errors"

// Static error definitions for better error handling.
var (
	// ErrEncodeBody indicates that a request body could not be serialized to JSON.
	ErrEncodeBody = errors.New("failed to encode request body")
	// ErrNilRequest indicates that a nil *http.Request was passed.
	ErrNilRequest = errors.New("request is nil")
	// ErrReadBody indicates that a request body could not be read for logging.
	ErrReadBody = errors.New("failed to read request body")
)
