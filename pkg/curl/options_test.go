package curl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseMethod tests method parsing and validation.
func TestParseMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Method
		valid    bool
	}{
		{input: "get", expected: MethodGet, valid: true},
		{input: " Post ", expected: MethodPost, valid: true},
		{input: "PUT", expected: MethodPut, valid: true},
		{input: "patch", expected: MethodPatch, valid: true},
		{input: "delete", expected: MethodDelete, valid: true},
		{input: "head", expected: Method("HEAD"), valid: false},
		{input: "", expected: Method(""), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			method, valid := ParseMethod(tt.input)
			assert.Equal(t, tt.expected, method)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

// TestPairs_Lookup tests exact-key first-match lookup.
func TestPairs_Lookup(t *testing.T) {
	t.Parallel()

	pairs := Pairs{}.Add("a", "1").Add("A", "2").Add("a", "3")

	value, ok := pairs.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	value, ok = pairs.Lookup("A")
	assert.True(t, ok)
	assert.Equal(t, "2", value)

	_, ok = pairs.Lookup("b")
	assert.False(t, ok)
}

// TestProxy tests proxy presence and rendering.
func TestProxy(t *testing.T) {
	t.Parallel()

	var nilProxy *Proxy

	assert.False(t, nilProxy.IsSet())
	assert.False(t, (&Proxy{}).IsSet())
	assert.True(t, (&Proxy{Port: 1}).IsSet())
	assert.True(t, (&Proxy{Password: "x"}).IsSet())

	assert.Equal(t, "http://host:", (&Proxy{Address: "host"}).URL())
	assert.Equal(t, "http://u:p@host:80", (&Proxy{Address: "host", Port: 80, User: "u", Password: "p"}).URL())
}

// TestFields_MarshalJSON tests ordered JSON encoding.
func TestFields_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := Fields{}.Add("b", nil).Add("a", 1.5).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":null,"a":1.5}`, string(data))
	assert.Equal(t, `{"b":null,"a":1.5}`, string(data))

	data, err = Fields{}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

// TestEncodeForm tests urlencoded rendering of mapping values.
func TestEncodeForm(t *testing.T) {
	t.Parallel()

	fields := Fields{}.
		Add("name", "John Doe").
		Add("flag", true).
		Add("n", 42).
		Add("empty", nil)

	assert.Equal(t, "name=John+Doe&flag=true&n=42&empty", encodeForm(fields))
}

// TestFormEscape tests the form-urlencoded character set.
func TestFormEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "plain", expected: "plain"},
		{input: "a*b~c", expected: "a*b%7Ec"},
		{input: "-._*", expected: "-._*"},
		{input: "John Doe", expected: "John+Doe"},
		{input: "a+b&c=d/e?", expected: "a%2Bb%26c%3Dd%2Fe%3F"},
		{input: "héllo", expected: "h%C3%A9llo"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formEscape(tt.input), tt.input)
	}

	assert.Equal(t, "q=a*b%7E&x", encodeForm(Fields{}.Add("q", "a*b~").Add("x", nil)))
	assert.Equal(t, "sel=*&path=%7Eroot", encodeQuery(Pairs{{Key: "sel", Value: "*"}, {Key: "path", Value: "~root"}}))
}

// TestPairs_HasKey tests case-insensitive key lookup.
func TestPairs_HasKey(t *testing.T) {
	t.Parallel()

	pairs := Pairs{{Key: "content-type", Value: "text/plain"}}

	assert.True(t, pairs.HasKey("Content-Type"))
	assert.False(t, pairs.HasKey("Accept"))
	assert.False(t, Pairs(nil).HasKey("Accept"))
}

// TestOptions_WithDefaultHeaders tests merging default headers into options.
func TestOptions_WithDefaultHeaders(t *testing.T) {
	t.Parallel()

	var empty *Options
	assert.Nil(t, empty.WithDefaultHeaders(nil))

	opts := &Options{Headers: Pairs{{Key: "accept", Value: "text/plain"}}, Body: "raw"}
	assert.Same(t, opts, opts.WithDefaultHeaders(nil))

	merged := opts.WithDefaultHeaders(Pairs{{Key: "Accept", Value: "*/*"}, {Key: "X-Team", Value: "core"}})
	assert.Equal(t, Pairs{{Key: "accept", Value: "text/plain"}, {Key: "X-Team", Value: "core"}}, merged.Headers)
	assert.Equal(t, "raw", merged.Body)
	assert.Len(t, opts.Headers, 1)

	merged = empty.WithDefaultHeaders(Pairs{{Key: "X-Team", Value: "core"}})
	require.NotNil(t, merged)
	assert.Equal(t, Pairs{{Key: "X-Team", Value: "core"}}, merged.Headers)
}

// TestSpecContext tests storing and retrieving a Spec in a context.
func TestSpecContext(t *testing.T) {
	t.Parallel()

	_, ok := SpecFromContext(context.Background())
	assert.False(t, ok)

	spec := Spec{Method: MethodPost, URI: "/x"}
	got, ok := SpecFromContext(WithSpec(context.Background(), spec))
	require.True(t, ok)
	assert.Equal(t, spec, got)
}
