package httpcore

import (
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Header is a case-insensitive, multi-valued header container. Field names
// are stored lower-cased; HTTP/1.x field names are ASCII and case-insensitive
// (RFC 7230 §3.2), so this avoids the allocation textproto.CanonicalMIMEHeaderKey
// does for the hyphenated-titlecase form this module never needs to render.
type Header map[string][]string

// NewHeader returns an empty Header.
func NewHeader() Header {
	return make(Header)
}

func key(name string) string {
	return strings.ToLower(name)
}

// Add appends value under name, validating both against RFC 7230 grammar.
// An invalid name or value is silently dropped: a malformed header line is
// the request-line parser's concern (it rejects the whole request), not a
// concern this container re-raises per field.
func (h Header) Add(name, value string) {
	if !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
		return
	}
	k := key(name)
	h[k] = append(h[k], value)
}

// Set replaces any existing values for name with a single value.
func (h Header) Set(name, value string) {
	h[key(name)] = []string{value}
}

// Del removes every value stored for name.
func (h Header) Del(name string) {
	delete(h, key(name))
}

// Get returns the first value stored for name, or "" if absent.
func (h Header) Get(name string) string {
	v := h[key(name)]
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// GetDefault returns the first value stored for name, or def if absent.
func (h Header) GetDefault(name, def string) string {
	if v := h.Get(name); v != "" {
		return v
	}
	return def
}

// Values returns every value stored for name, nil if absent. The returned
// slice must not be mutated by the caller.
func (h Header) Values(name string) []string {
	return h[key(name)]
}

// Has reports whether name has at least one stored value.
func (h Header) Has(name string) bool {
	return len(h[key(name)]) > 0
}
