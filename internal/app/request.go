package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"

	"github.com/oshokin/curl-logger/internal/constants"
	"github.com/oshokin/curl-logger/internal/utils"
	"github.com/oshokin/curl-logger/pkg/curl"
)

// RequestFlags holds the request arguments given on the command line.
type RequestFlags struct {
	// Headers are "Name: value" strings.
	Headers []string
	// Query holds "key=value" query parameters.
	Query []string
	// Data is a raw request body.
	Data string
	// Fields holds "key=value" form fields; "key=@path" uploads a file.
	Fields []string
	// User is "user:password".
	User string
	// Digest marks User as digest credentials.
	Digest bool
	// Proxy is "[user:password@]host:port".
	Proxy string
}

// Static error definitions for better error handling.
var (
	// ErrUnsupportedMethod indicates an HTTP method other than GET, POST, PUT, PATCH or DELETE.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
	// ErrDataWithFields indicates that both a raw body and form fields were given.
	ErrDataWithFields = errors.New("--data and --field cannot be used together")
	// ErrFileNotFound indicates a form field that references a missing file.
	ErrFileNotFound = errors.New("file not found")
)

// Request is a parsed request description together with the files it opened.
type Request struct {
	Method  curl.Method
	URI     string
	Options *curl.Options

	files []*os.File
}

// Close closes every file opened for form fields.
func (r *Request) Close() error {
	var err error

	for _, file := range r.files {
		err = multierr.Append(err, file.Close())
	}

	r.files = nil

	return err
}

// ParseRequest builds a request description from command-line arguments.
// Files referenced by form fields are opened, the caller must Close the result.
//
//nolint:cyclop // Each flag is converted in turn.
func ParseRequest(method, uri string, flags RequestFlags) (*Request, error) {
	parsedMethod, ok := curl.ParseMethod(method)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedMethod, method)
	}

	if flags.Data != "" && len(flags.Fields) > 0 {
		return nil, ErrDataWithFields
	}

	req := &Request{
		Method:  parsedMethod,
		URI:     uri,
		Options: &curl.Options{},
	}

	for _, header := range flags.Headers {
		name, value, err := utils.ParseHeader(header)
		if err != nil {
			return nil, err
		}

		req.Options.Headers = req.Options.Headers.Add(name, value)
	}

	for _, param := range flags.Query {
		key, value, err := utils.ParseKeyValue(param)
		if err != nil {
			return nil, err
		}

		req.Options.Query = req.Options.Query.Add(key, value)
	}

	if flags.User != "" {
		username, password, err := utils.ParseCredentials(flags.User)
		if err != nil {
			return nil, err
		}

		credentials := &curl.Credentials{Username: username, Password: password}
		if flags.Digest {
			req.Options.DigestAuth = credentials
		} else {
			req.Options.BasicAuth = credentials
		}
	}

	if flags.Proxy != "" {
		address, port, user, password, err := utils.ParseProxy(flags.Proxy)
		if err != nil {
			return nil, err
		}

		req.Options.Proxy = &curl.Proxy{Address: address, Port: port, User: user, Password: password}
	}

	if flags.Data != "" {
		req.Options.Body = flags.Data
	}

	if len(flags.Fields) > 0 {
		if err := req.parseFields(flags.Fields); err != nil {
			return nil, multierr.Append(err, req.Close())
		}
	}

	return req, nil
}

// parseFields turns form fields into a multipart body.
// Without an explicit Content-Type the multipart one is added, as curl -F does.
func (r *Request) parseFields(fields []string) error {
	var body curl.Fields

	for _, field := range fields {
		key, value, err := utils.ParseKeyValue(field)
		if err != nil {
			return err
		}

		path, isFile := strings.CutPrefix(value, constants.FileReferencePrefix)
		if !isFile {
			body = body.Add(key, value)

			continue
		}

		file, err := r.openFile(path)
		if err != nil {
			return err
		}

		body = body.Add(key, file)
	}

	r.Options.Body = body

	if curl.ContentType(r.Options.Headers) == "" {
		r.Options.Headers = r.Options.Headers.Add("Content-Type", curl.ContentTypeMultipartFormData)
	}

	return nil
}

func (r *Request) openFile(path string) (*os.File, error) {
	exists, err := utils.IsFileExist(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check file %s: %w", path, err)
	}

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	file, err := os.Open(path) //nolint:gosec // The path comes from the user on purpose.
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	r.files = append(r.files, file)

	return file, nil
}
