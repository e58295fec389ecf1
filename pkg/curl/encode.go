package curl

import (
	"bytes"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// MarshalJSON encodes the fields as a JSON object in slice order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.MarshalNoEscape(field.Key)
		if err != nil {
			return nil, err
		}

		value, err := json.MarshalNoEscape(field.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Key, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// asFields reports whether body is a mapping and returns it as ordered fields.
// Go maps have no insertion order, so their keys are sorted.
func asFields(body any) (Fields, bool) {
	switch b := body.(type) {
	case Fields:
		return b, true
	case map[string]string:
		fields := make(Fields, 0, len(b))
		for _, key := range sortedKeys(b) {
			fields = fields.Add(key, b[key])
		}

		return fields, true
	case map[string]any:
		fields := make(Fields, 0, len(b))
		for _, key := range sortedKeys(b) {
			fields = fields.Add(key, b[key])
		}

		return fields, true
	}

	return nil, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

// asText reports whether body is already textual.
func asText(body any) (string, bool) {
	switch b := body.(type) {
	case string:
		return b, true
	case []byte:
		return string(b), true
	}

	return "", false
}

// encodeJSON serializes body, wrapping failures with ErrEncodeBody.
func encodeJSON(body any) (string, error) {
	data, err := json.MarshalNoEscape(body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeBody, err)
	}

	return string(data), nil
}

// valueText is the plain text representation of a mapping value.
func valueText(value any) string {
	text, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Sprint(value)
	}

	return text
}

// encodeForm renders fields as a single application/x-www-form-urlencoded string.
// A nil value renders the bare key.
func encodeForm(fields Fields) string {
	parts := make([]string, 0, len(fields))

	for _, field := range fields {
		key := formEscape(field.Key)
		if field.Value == nil {
			parts = append(parts, key)

			continue
		}

		parts = append(parts, key+"="+formEscape(valueText(field.Value)))
	}

	return strings.Join(parts, "&")
}

// encodeQuery renders pairs as a percent-encoded query string.
func encodeQuery(pairs Pairs) string {
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, formEscape(pair.Key)+"="+formEscape(pair.Value))
	}

	return strings.Join(parts, "&")
}

// formEscape percent-encodes s for application/x-www-form-urlencoded data.
// Only ASCII letters, digits and "*-._" are kept, a space becomes '+'.
// Unlike url.QueryEscape, '*' is kept and '~' is escaped.
func formEscape(s string) string {
	const upperHex = "0123456789ABCDEF"

	var b strings.Builder

	b.Grow(len(s))

	for i := range len(s) {
		c := s[i]

		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			c == '*', c == '-', c == '.', c == '_':
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0x0f])
		}
	}

	return b.String()
}

// decodeQuery parses a raw query string into ordered pairs.
// Empty segments are skipped; a segment without '=' gets an empty value.
func decodeQuery(rawQuery string) (Pairs, error) {
	var pairs Pairs

	for segment := range strings.SplitSeq(rawQuery, "&") {
		if segment == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(segment, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, err
		}

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, err
		}

		pairs = pairs.Add(key, value)
	}

	return pairs, nil
}
