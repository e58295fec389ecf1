package curl

import (
	"net/url"
	"strings"
)

const (
	// DefaultBaseURI is used to resolve relative URIs when the formatter has no base.
	DefaultBaseURI = "http://localhost"

	// LineSeparator joins the emitted command parts.
	LineSeparator = " \\\n"

	// ContentTypeFormURLEncoded selects -d with an urlencoded mapping body.
	ContentTypeFormURLEncoded = "application/x-www-form-urlencoded"
	// ContentTypeMultipartFormData selects one -F line per mapping entry.
	ContentTypeMultipartFormData = "multipart/form-data"
)

// DefaultFormatter resolves relative URIs against DefaultBaseURI and has no proxy.
//
//nolint:gochecknoglobals // Zero-configuration formatter used by the package-level Format.
var DefaultFormatter = &Formatter{BaseURI: DefaultBaseURI}

// Formatter converts request descriptions into curl command lines.
// The zero value is ready to use. A Formatter is never mutated by Format,
// so one instance may be shared between goroutines.
type Formatter struct {
	// BaseURI resolves URIs that do not start with a scheme.
	BaseURI string
	// Proxy is emitted for every request that does not carry its own.
	Proxy *Proxy
}

// Format renders the request with DefaultFormatter.
func Format(method Method, uri string, opts *Options) (string, error) {
	return DefaultFormatter.Format(method, uri, opts)
}

// Format renders method, uri and opts as a curl command line.
// A nil opts behaves exactly like an empty Options.
// The only possible error is a body that cannot be encoded as JSON.
func (f *Formatter) Format(method Method, uri string, opts *Options) (string, error) {
	if opts == nil {
		opts = &Options{}
	}

	command := []string{"curl -X " + method.String() + " '" + f.PrepareURI(uri, opts.Query) + "'"}

	if proxy := f.proxyFor(opts); proxy != nil {
		command = append(command, "--proxy '"+proxy.URL()+"'")
	}

	for _, header := range opts.Headers {
		command = append(command, "-H '"+header.Key+": "+header.Value+"'")
	}

	switch {
	case opts.BasicAuth != nil:
		command = append(command, "-u '"+opts.BasicAuth.Username+":"+opts.BasicAuth.Password+"'")
	case opts.DigestAuth != nil:
		command = append(command, "--digest -u '"+opts.DigestAuth.Username+":"+opts.DigestAuth.Password+"'")
	}

	bodyLines, err := formatBody(opts.Body, opts.Headers)
	if err != nil {
		return "", err
	}

	command = append(command, bodyLines...)

	return strings.Join(command, LineSeparator), nil
}

// FormatSpec renders a full request description.
func (f *Formatter) FormatSpec(spec Spec) (string, error) {
	return f.Format(spec.Method, spec.URI, spec.Options)
}

// PrepareURI resolves uri against the base URI when it has no scheme and
// appends query after the existing query parameters.
// URIs that cannot be parsed are returned unchanged.
func (f *Formatter) PrepareURI(uri string, query Pairs) string {
	if !strings.HasPrefix(uri, "http") {
		uri = f.resolve(uri)
	}

	if len(query) == 0 {
		return uri
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	existing, err := decodeQuery(parsed.RawQuery)
	if err != nil {
		return uri
	}

	parsed.RawQuery = encodeQuery(append(existing, query...))

	return parsed.String()
}

func (f *Formatter) resolve(uri string) string {
	baseURI := DefaultBaseURI
	if f != nil && f.BaseURI != "" {
		baseURI = f.BaseURI
	}

	base, err := url.Parse(baseURI)
	if err != nil {
		return uri
	}

	ref, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	return base.ResolveReference(ref).String()
}

func (f *Formatter) proxyFor(opts *Options) *Proxy {
	if opts.Proxy.IsSet() {
		return opts.Proxy
	}

	if f != nil && f.Proxy.IsSet() {
		return f.Proxy
	}

	return nil
}

// ContentType returns the Content-Type header, trying the canonical
// spelling first and the lower-case one second.
func ContentType(headers Pairs) string {
	if value, ok := headers.Lookup("Content-Type"); ok {
		return value
	}

	value, _ := headers.Lookup("content-type")

	return value
}

func formatBody(body any, headers Pairs) ([]string, error) {
	if body == nil {
		return nil, nil
	}

	contentType := ContentType(headers)
	fields, isMapping := asFields(body)

	switch {
	case isMapping && contentType == ContentTypeFormURLEncoded:
		return []string{"-d '" + encodeForm(fields) + "'"}, nil
	case isMapping && contentType == ContentTypeMultipartFormData:
		lines := make([]string, 0, len(fields))

		for _, field := range fields {
			if file, ok := field.Value.(File); ok {
				lines = append(lines, "-F '"+field.Key+"=@"+file.Name()+"'")

				continue
			}

			lines = append(lines, "-F '"+field.Key+"="+valueText(field.Value)+"'")
		}

		return lines, nil
	}

	if text, ok := asText(body); ok {
		return []string{"-d '" + text + "'"}, nil
	}

	if isMapping {
		body = fields
	}

	data, err := encodeJSON(body)
	if err != nil {
		return nil, err
	}

	return []string{"-d '" + data + "'"}, nil
}
