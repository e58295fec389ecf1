package curl

import "strings"

// Method is an HTTP verb.
type Method string

// Supported HTTP methods.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Methods lists every method the client wraps, in a stable order.
//
//nolint:gochecknoglobals // Read-only list of supported verbs.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}

// ParseMethod converts s into a Method, ignoring case.
// The second value is false when s is not one of Methods.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))

	return m, m.Valid()
}

// Valid reports whether m is one of Methods (case-insensitive).
func (m Method) Valid() bool {
	upper := m.String()
	for _, known := range Methods {
		if upper == string(known) {
			return true
		}
	}

	return false
}

// String returns the upper-cased verb.
func (m Method) String() string {
	return strings.ToUpper(string(m))
}
