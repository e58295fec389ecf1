package curl

import (
	"io"
	"strconv"
	"strings"
)

// Pair is a single string key/value, used for headers and query parameters.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered list of key/value pairs.
// Order, key casing and duplicates are kept exactly as supplied.
type Pairs []Pair

// Add appends a pair and returns the extended list.
func (p Pairs) Add(key, value string) Pairs {
	return append(p, Pair{Key: key, Value: value})
}

// Lookup returns the value of the first pair whose key equals key exactly.
func (p Pairs) Lookup(key string) (string, bool) {
	for _, pair := range p {
		if pair.Key == key {
			return pair.Value, true
		}
	}

	return "", false
}

// HasKey reports whether any pair has key, ignoring case.
func (p Pairs) HasKey(key string) bool {
	for _, pair := range p {
		if strings.EqualFold(pair.Key, key) {
			return true
		}
	}

	return false
}

// Field is a single entry of a body mapping.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered body mapping. It marshals to a JSON object
// whose members keep the slice order.
type Fields []Field

// Add appends a field and returns the extended list.
func (f Fields) Add(key string, value any) Fields {
	return append(f, Field{Key: key, Value: value})
}

// File is a file-like body value: something readable that knows its path.
// *os.File satisfies it.
type File interface {
	io.Reader
	// Name returns the path of the file.
	Name() string
}

// Credentials holds a username and password for basic or digest auth.
type Credentials struct {
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
}

// Proxy describes an HTTP proxy.
type Proxy struct {
	Address  string `mapstructure:"address"  yaml:"address"`
	Port     int    `mapstructure:"port"     yaml:"port"`
	User     string `mapstructure:"user"     yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
}

// IsSet reports whether any proxy field has a value.
func (p *Proxy) IsSet() bool {
	if p == nil {
		return false
	}

	return p.Address != "" || p.Port != 0 || p.User != "" || p.Password != ""
}

// URL renders the proxy as http://[user:password@]address:port.
// Credentials are included only when both user and password are present.
func (p *Proxy) URL() string {
	result := "http://"
	if p.User != "" && p.Password != "" {
		result += p.User + ":" + p.Password + "@"
	}

	port := ""
	if p.Port != 0 {
		port = strconv.Itoa(p.Port)
	}

	return result + p.Address + ":" + port
}

// Options is the optional part of a request description.
// Every field may be left zero, in which case nothing is emitted for it.
type Options struct {
	// Query is appended after any query already present on the URI.
	Query Pairs
	// Headers are emitted in order with their original casing.
	Headers Pairs
	// Body is nil (absent), textual (string or []byte), a mapping
	// (Fields, map[string]string, map[string]any) or any JSON-serializable value.
	Body any
	// BasicAuth takes precedence over DigestAuth when both are set.
	BasicAuth *Credentials
	// DigestAuth is honored only when BasicAuth is nil.
	DigestAuth *Credentials
	// Proxy overrides the formatter's default proxy when set.
	Proxy *Proxy
}

// WithDefaultHeaders returns a copy of o with the defaults it does not carry
// yet appended after its own headers. o itself is never modified and is
// returned as is when there is nothing to add.
func (o *Options) WithDefaultHeaders(defaults Pairs) *Options {
	if len(defaults) == 0 {
		return o
	}

	merged := Options{}
	if o != nil {
		merged = *o
	}

	headers := make(Pairs, 0, len(merged.Headers)+len(defaults))
	headers = append(headers, merged.Headers...)

	for _, header := range defaults {
		if !headers.HasKey(header.Key) {
			headers = append(headers, header)
		}
	}

	merged.Headers = headers

	return &merged
}

// Spec is a full request description: the triple a client passes to the
// formatter before issuing the real call.
type Spec struct {
	Method  Method
	URI     string
	Options *Options
}
