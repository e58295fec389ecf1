package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/curl-logger/internal/constants"
	"github.com/oshokin/curl-logger/internal/utils"
	"github.com/oshokin/curl-logger/pkg/curl"
)

// TestParseRequest tests conversion of command-line arguments.
func TestParseRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		method      string
		flags       RequestFlags
		expected    *curl.Options
		expectError error
	}{
		{
			name:     "no flags",
			method:   "get",
			expected: &curl.Options{},
		},
		{
			name:   "headers and query keep their order",
			method: "POST",
			flags: RequestFlags{
				Headers: []string{"X-B: 2", "x-a:1"},
				Query:   []string{"b=2", "a=1", "a=3"},
			},
			expected: &curl.Options{
				Headers: curl.Pairs{{Key: "X-B", Value: "2"}, {Key: "x-a", Value: "1"}},
				Query:   curl.Pairs{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}, {Key: "a", Value: "3"}},
			},
		},
		{
			name:   "raw data",
			method: "PUT",
			flags:  RequestFlags{Data: `{"a":1}`},
			expected: &curl.Options{
				Body: `{"a":1}`,
			},
		},
		{
			name:   "basic auth",
			method: "GET",
			flags:  RequestFlags{User: "user:pass"},
			expected: &curl.Options{
				BasicAuth: &curl.Credentials{Username: "user", Password: "pass"},
			},
		},
		{
			name:   "digest auth",
			method: "GET",
			flags:  RequestFlags{User: "user:pass", Digest: true},
			expected: &curl.Options{
				DigestAuth: &curl.Credentials{Username: "user", Password: "pass"},
			},
		},
		{
			name:   "proxy",
			method: "DELETE",
			flags:  RequestFlags{Proxy: "u:p@proxy.local:8080"},
			expected: &curl.Options{
				Proxy: &curl.Proxy{Address: "proxy.local", Port: 8080, User: "u", Password: "p"},
			},
		},
		{
			name:   "fields add the multipart content type",
			method: "POST",
			flags:  RequestFlags{Fields: []string{"name=widget", "size=2"}},
			expected: &curl.Options{
				Headers: curl.Pairs{{Key: "Content-Type", Value: curl.ContentTypeMultipartFormData}},
				Body:    curl.Fields{{Key: "name", Value: "widget"}, {Key: "size", Value: "2"}},
			},
		},
		{
			name:   "fields keep an explicit content type",
			method: "POST",
			flags: RequestFlags{
				Headers: []string{"content-type: " + curl.ContentTypeFormURLEncoded},
				Fields:  []string{"name=widget"},
			},
			expected: &curl.Options{
				Headers: curl.Pairs{{Key: "content-type", Value: curl.ContentTypeFormURLEncoded}},
				Body:    curl.Fields{{Key: "name", Value: "widget"}},
			},
		},
		{
			name:        "unsupported method",
			method:      "HEAD",
			expectError: ErrUnsupportedMethod,
		},
		{
			name:        "bad header",
			method:      "GET",
			flags:       RequestFlags{Headers: []string{"no colon"}},
			expectError: utils.ErrInvalidHeader,
		},
		{
			name:        "bad query",
			method:      "GET",
			flags:       RequestFlags{Query: []string{"novalue"}},
			expectError: utils.ErrInvalidKeyValue,
		},
		{
			name:        "bad credentials",
			method:      "GET",
			flags:       RequestFlags{User: "user"},
			expectError: utils.ErrInvalidCredentials,
		},
		{
			name:        "bad proxy",
			method:      "GET",
			flags:       RequestFlags{Proxy: "proxy.local"},
			expectError: utils.ErrInvalidProxy,
		},
		{
			name:        "data with fields",
			method:      "POST",
			flags:       RequestFlags{Data: "x", Fields: []string{"a=b"}},
			expectError: ErrDataWithFields,
		},
		{
			name:        "missing file",
			method:      "POST",
			flags:       RequestFlags{Fields: []string{"file=@/definitely/not/here.txt"}},
			expectError: ErrFileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := ParseRequest(tt.method, "/items", tt.flags)

			if tt.expectError != nil {
				require.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, req)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, req)

			defer req.Close() //nolint:errcheck // Test cleanup, error is not critical.

			assert.True(t, req.Method.Valid())
			assert.Equal(t, "/items", req.URI)
			assert.Equal(t, tt.expected, req.Options)
		})
	}
}

// TestParseRequest_FileField tests that file fields are opened and closed.
func TestParseRequest_FileField(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), constants.DefaultFilePermissions))

	req, err := ParseRequest("POST", "/upload", RequestFlags{
		Fields: []string{"title=report", "file=" + constants.FileReferencePrefix + path},
	})
	require.NoError(t, err)

	body, ok := req.Options.Body.(curl.Fields)
	require.True(t, ok)
	require.Len(t, body, 2)

	file, ok := body[1].Value.(curl.File)
	require.True(t, ok)
	assert.Equal(t, path, file.Name())

	command, err := curl.Format(req.Method, req.URI, req.Options)
	require.NoError(t, err)
	assert.Contains(t, command, "-F 'file=@"+path+"'")
	assert.Contains(t, command, "-F 'title=report'")

	require.NoError(t, req.Close())
	require.NoError(t, req.Close())

	// The file is closed now.
	_, err = body[1].Value.(*os.File).Read(make([]byte, 1))
	require.ErrorIs(t, err, os.ErrClosed)
}
