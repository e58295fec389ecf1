package curl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

const (
	authorizationHeader = "Authorization"
	contentTypeHeader   = "Content-Type"
)

// NewRequest builds the real *http.Request described by method, uri and opts,
// encoding the body the same way Format renders it. The returned request
// carries the description in its context (see SpecFromContext).
//
// Digest credentials only appear in the logged command; no digest handshake is made.
func (f *Formatter) NewRequest(ctx context.Context, method Method, uri string, opts *Options) (*http.Request, error) {
	if opts == nil {
		opts = &Options{}
	}

	body, multipartContentType, err := requestBody(opts.Body, opts.Headers)
	if err != nil {
		return nil, err
	}

	ctx = WithSpec(ctx, Spec{Method: method, URI: uri, Options: opts})

	req, err := http.NewRequestWithContext(ctx, method.String(), f.PrepareURI(uri, opts.Query), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Keys are stored as supplied, net/http writes them without canonicalizing.
	for _, header := range opts.Headers {
		req.Header[header.Key] = append(req.Header[header.Key], header.Value)
	}

	if multipartContentType != "" {
		for key := range req.Header {
			if strings.EqualFold(key, contentTypeHeader) {
				delete(req.Header, key)
			}
		}

		req.Header.Set(contentTypeHeader, multipartContentType)
	}

	if opts.BasicAuth != nil {
		req.SetBasicAuth(opts.BasicAuth.Username, opts.BasicAuth.Password)
	}

	return req, nil
}

// requestBody encodes body for the wire. For multipart bodies the second
// value is the Content-Type carrying the generated boundary.
func requestBody(body any, headers Pairs) (io.Reader, string, error) {
	if body == nil {
		return http.NoBody, "", nil
	}

	contentType := ContentType(headers)
	fields, isMapping := asFields(body)

	switch {
	case isMapping && contentType == ContentTypeFormURLEncoded:
		return strings.NewReader(encodeForm(fields)), "", nil
	case isMapping && contentType == ContentTypeMultipartFormData:
		return multipartBody(fields)
	}

	if text, ok := asText(body); ok {
		return strings.NewReader(text), "", nil
	}

	if isMapping {
		body = fields
	}

	data, err := encodeJSON(body)
	if err != nil {
		return nil, "", err
	}

	return strings.NewReader(data), "", nil
}

func multipartBody(fields Fields) (io.Reader, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, field := range fields {
		file, ok := field.Value.(File)
		if !ok {
			if err := writer.WriteField(field.Key, valueText(field.Value)); err != nil {
				return nil, "", fmt.Errorf("failed to write form field %q: %w", field.Key, err)
			}

			continue
		}

		part, err := writer.CreateFormFile(field.Key, filepath.Base(file.Name()))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %q: %w", field.Key, err)
		}

		if _, err = io.Copy(part, file); err != nil {
			return nil, "", fmt.Errorf("failed to copy form file %q: %w", field.Key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

// FromRequest describes an arbitrary *http.Request, for requests that did not
// go through NewRequest. Headers are listed in sorted key order, basic
// credentials are lifted out of the Authorization header and the body is
// read as text and then restored so the request can still be sent.
func FromRequest(req *http.Request) (Spec, error) {
	if req == nil {
		return Spec{}, ErrNilRequest
	}

	method := Method(req.Method)
	if method == "" {
		method = MethodGet
	}

	opts := &Options{}

	username, password, hasBasicAuth := req.BasicAuth()
	if hasBasicAuth {
		opts.BasicAuth = &Credentials{Username: username, Password: password}
	}

	keys := make([]string, 0, len(req.Header))
	for key := range req.Header {
		if hasBasicAuth && http.CanonicalHeaderKey(key) == authorizationHeader {
			continue
		}

		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		for _, value := range req.Header[key] {
			opts.Headers = opts.Headers.Add(key, value)
		}
	}

	body, err := peekBody(req)
	if err != nil {
		return Spec{}, err
	}

	if len(body) > 0 {
		opts.Body = string(body)
	}

	uri := ""
	if req.URL != nil {
		uri = req.URL.String()
	}

	return Spec{Method: method, URI: uri, Options: opts}, nil
}

// peekBody returns the request body without consuming it.
func peekBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}

	if req.GetBody != nil {
		reader, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadBody, err)
		}

		defer reader.Close() //nolint:errcheck // In-memory copy.

		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadBody, err)
		}

		return data, nil
	}

	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadBody, err)
	}

	_ = req.Body.Close()

	req.Body = io.NopCloser(bytes.NewReader(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	return data, nil
}
