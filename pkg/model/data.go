package model

import "strings"

// HasPath reports whether a dotted property path resolves inside a
// record data map. Intermediate segments must be nested objects; a
// non-map value mid-path means the path does not resolve.
func HasPath(data map[string]any, path string) bool {
	_, ok := LookupPath(data, path)
	return ok
}

// LookupPath resolves a dotted property path inside a record data map.
func LookupPath(data map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	// A literal key wins over path traversal: schema paths may name
	// top-level properties that themselves contain dots.
	if value, present := data[path]; present {
		return value, true
	}

	segments := strings.Split(path, ".")
	current := any(data)
	for _, segment := range segments {
		m, isMap := current.(map[string]any)
		if !isMap {
			return nil, false
		}
		value, present := m[segment]
		if !present {
			return nil, false
		}
		current = value
	}
	return current, true
}
