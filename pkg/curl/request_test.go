package curl

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRequest_Basics tests URI, headers, auth and context of a built request.
func TestNewRequest_Basics(t *testing.T) {
	t.Parallel()

	opts := &Options{
		Query:     Pairs{{Key: "page", Value: "1"}},
		Headers:   Pairs{{Key: "x-custom", Value: "a"}, {Key: "Accept", Value: "application/json"}},
		BasicAuth: &Credentials{Username: "user", Password: "pass"},
	}

	req, err := newTestFormatter().NewRequest(context.Background(), Method("get"), "/items", opts)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "http://example.com/items?page=1", req.URL.String())
	assert.Equal(t, []string{"a"}, req.Header["x-custom"])
	assert.Equal(t, "application/json", req.Header.Get("Accept"))

	username, password, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "user", username)
	assert.Equal(t, "pass", password)

	spec, ok := SpecFromContext(req.Context())
	require.True(t, ok)
	assert.Equal(t, Method("get"), spec.Method)
	assert.Equal(t, "/items", spec.URI)
	assert.Same(t, opts, spec.Options)
}

// TestNewRequest_Bodies tests that the wire body matches the logged body.
func TestNewRequest_Bodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     *Options
		expected string
	}{
		{
			name:     "no body",
			opts:     nil,
			expected: "",
		},
		{
			name:     "text",
			opts:     &Options{Body: "plain"},
			expected: "plain",
		},
		{
			name:     "json mapping",
			opts:     &Options{Body: Fields{{Key: "b", Value: 2}, {Key: "a", Value: "x"}}},
			expected: `{"b":2,"a":"x"}`,
		},
		{
			name: "urlencoded mapping",
			opts: &Options{
				Headers: Pairs{{Key: "Content-Type", Value: ContentTypeFormURLEncoded}},
				Body:    map[string]string{"key1": "value1", "key2": "value2"},
			},
			expected: "key1=value1&key2=value2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := newTestFormatter().NewRequest(context.Background(), MethodPost, "/", tt.opts)
			require.NoError(t, err)

			data, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
			assert.Equal(t, int64(len(tt.expected)), req.ContentLength)
		})
	}
}

// TestNewRequest_Multipart tests multipart encoding with files and plain values.
func TestNewRequest_Multipart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "upload.txt")
	require.NoError(t, os.WriteFile(path, []byte("file content"), 0o600))

	file, err := os.Open(path)
	require.NoError(t, err)

	defer file.Close() //nolint:errcheck // Test cleanup.

	opts := &Options{
		Headers: Pairs{{Key: "content-type", Value: ContentTypeMultipartFormData}},
		Body:    Fields{{Key: "file", Value: file}, {Key: "key", Value: "value"}},
	}

	req, err := newTestFormatter().NewRequest(context.Background(), MethodPost, "/upload", opts)
	require.NoError(t, err)

	assert.NotContains(t, req.Header, "content-type")

	mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, ContentTypeMultipartFormData, mediaType)

	reader := multipart.NewReader(req.Body, params["boundary"])
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)

	assert.Equal(t, []string{"value"}, form.Value["key"])
	require.Len(t, form.File["file"], 1)
	assert.Equal(t, "upload.txt", form.File["file"][0].Filename)

	uploaded, err := form.File["file"][0].Open()
	require.NoError(t, err)

	defer uploaded.Close() //nolint:errcheck // Test cleanup.

	content, err := io.ReadAll(uploaded)
	require.NoError(t, err)
	assert.Equal(t, "file content", string(content))
}

// TestNewRequest_EncodeError tests that JSON failures surface before a request is built.
func TestNewRequest_EncodeError(t *testing.T) {
	t.Parallel()

	req, err := newTestFormatter().NewRequest(context.Background(), MethodPost, "/", &Options{Body: make(chan int)})
	require.ErrorIs(t, err, ErrEncodeBody)
	assert.Nil(t, req)
}

// TestFromRequest tests describing a request that was built with net/http directly.
func TestFromRequest(t *testing.T) {
	t.Parallel()

	req, err := http.NewRequestWithContext(
		context.Background(), http.MethodPut, "http://example.com/a?x=1", strings.NewReader(`{"k":"v"}`))
	require.NoError(t, err)

	req.Header.Set("X-B", "2")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("user", "pass")

	spec, err := FromRequest(req)
	require.NoError(t, err)

	assert.Equal(t, MethodPut, spec.Method)
	assert.Equal(t, "http://example.com/a?x=1", spec.URI)
	assert.Equal(t, Pairs{{Key: "Content-Type", Value: "application/json"}, {Key: "X-B", Value: "2"}}, spec.Options.Headers)
	assert.Equal(t, &Credentials{Username: "user", Password: "pass"}, spec.Options.BasicAuth)
	assert.Equal(t, `{"k":"v"}`, spec.Options.Body)

	// The body must still be readable after it was described.
	data, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"k":"v"}`, string(data))

	result, err := newTestFormatter().FormatSpec(spec)
	require.NoError(t, err)

	expected := "curl -X PUT 'http://example.com/a?x=1' \\\n" +
		"-H 'Content-Type: application/json' \\\n" +
		"-H 'X-B: 2' \\\n" +
		"-u 'user:pass' \\\n" +
		`-d '{"k":"v"}'`
	assert.Equal(t, expected, result)
}

// TestFromRequest_BodyWithoutGetBody tests that a plain reader body is restored.
func TestFromRequest_BodyWithoutGetBody(t *testing.T) {
	t.Parallel()

	req, err := http.NewRequestWithContext(
		context.Background(), http.MethodPost, "http://example.com/", io.NopCloser(strings.NewReader("payload")))
	require.NoError(t, err)
	require.Nil(t, req.GetBody)

	spec, err := FromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "payload", spec.Options.Body)

	data, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	require.NotNil(t, req.GetBody)
}

// TestFromRequest_Edges tests nil and empty requests.
func TestFromRequest_Edges(t *testing.T) {
	t.Parallel()

	_, err := FromRequest(nil)
	require.ErrorIs(t, err, ErrNilRequest)

	req := &http.Request{Header: http.Header{}}

	spec, err := FromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, MethodGet, spec.Method)
	assert.Empty(t, spec.URI)
	assert.Nil(t, spec.Options.Body)
	assert.Empty(t, spec.Options.Headers)
}
