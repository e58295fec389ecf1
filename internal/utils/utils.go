package utils

import (
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"strconv"
	"strings"
)

// Static error definitions for better error handling.
var (
	// ErrInvalidHeader indicates a header argument without a colon.
	ErrInvalidHeader = errors.New("header must look like 'Name: value'")
	// ErrInvalidKeyValue indicates a key/value argument without an equals sign.
	ErrInvalidKeyValue = errors.New("argument must look like 'key=value'")
	// ErrInvalidCredentials indicates a credentials argument without a colon.
	ErrInvalidCredentials = errors.New("credentials must look like 'user:password'")
	// ErrInvalidProxy indicates a malformed proxy argument.
	ErrInvalidProxy = errors.New("proxy must look like '[user:password@]host:port'")
)

// ParseHeader splits "Name: value" into its name and value.
// Spaces around both parts are trimmed; the name keeps its casing.
func ParseHeader(value string) (string, string, error) {
	name, headerValue, found := strings.Cut(value, ":")
	name = strings.TrimSpace(name)

	if !found || name == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidHeader, value)
	}

	return name, strings.TrimSpace(headerValue), nil
}

// ParseKeyValue splits "key=value" at the first equals sign.
func ParseKeyValue(value string) (string, string, error) {
	key, kvValue, found := strings.Cut(value, "=")
	if !found || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidKeyValue, value)
	}

	return key, kvValue, nil
}

// ParseCredentials splits "user:password" at the first colon.
func ParseCredentials(value string) (string, string, error) {
	username, password, found := strings.Cut(value, ":")
	if !found || username == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidCredentials, value)
	}

	return username, password, nil
}

// ParseProxy parses "[http://][user:password@]host:port" into its parts.
func ParseProxy(value string) (address string, port int, user, password string, err error) {
	rest := strings.TrimPrefix(strings.TrimSpace(value), "http://")

	if at := strings.LastIndex(rest, "@"); at >= 0 {
		user, password, err = ParseCredentials(rest[:at])
		if err != nil {
			return "", 0, "", "", fmt.Errorf("%w: %w", ErrInvalidProxy, err)
		}

		rest = rest[at+1:]
	}

	host, rawPort, err := net.SplitHostPort(rest)
	if err != nil || host == "" {
		return "", 0, "", "", fmt.Errorf("%w: %q", ErrInvalidProxy, value)
	}

	port, err = strconv.Atoi(rawPort)
	if err != nil || port <= 0 || port > math.MaxUint16 {
		return "", 0, "", "", fmt.Errorf("%w: bad port in %q", ErrInvalidProxy, value)
	}

	return host, port, user, password, nil
}

// IsFileExist checks if a file exists at the specified path.
// It returns true if the file exists and is not a directory, false if the file does not exist,
// and an error if there was an issue accessing the file.
func IsFileExist(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err == nil {
		return !stat.IsDir(), nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}
