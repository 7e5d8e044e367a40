package httpx

import "strings"

// FieldMap translates upstream response fields to internal result fields as
// a declarative table: internal name -> upstream name. Keeping the mapping
// in data keeps per-integration response handling out of the step contract.
type FieldMap map[string]string

// MapFields copies the documented fields out of an upstream payload,
// dropping everything the map does not name. Absent upstream fields are
// omitted, not mapped to empty placeholders.
func MapFields(src map[string]any, fields FieldMap) map[string]any {
	out := make(map[string]any, len(fields))
	if src == nil {
		return out
	}
	for internal, upstream := range fields {
		if v, ok := src[upstream]; ok && v != nil {
			out[internal] = v
		}
	}
	return out
}

// Object extracts a nested JSON object field, returning nil when missing or
// of the wrong shape.
func Object(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	v, ok := src[key].(map[string]any)
	if !ok {
		return nil
	}
	return v
}

// Array extracts a nested JSON array field, returning nil when missing or of
// the wrong shape.
func Array(src map[string]any, key string) []any {
	if src == nil {
		return nil
	}
	v, ok := src[key].([]any)
	if !ok {
		return nil
	}
	return v
}

// NormalizeStoreDomain strips a URL scheme and any trailing slash from a
// user-entered store domain so request URLs can be built from it.
func NormalizeStoreDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimRight(domain, "/")
}
