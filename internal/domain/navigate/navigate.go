// Package navigate extracts typed values from a decoded JSON document by
// JSON Pointer path. Required lookups fail with an *Error naming the path.
package navigate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Error reports a path that was missing or held a value of the wrong type.
type Error struct {
	Path     string
	Expected string // "string", "bool", "integer", "array", or "object".
	Missing  bool
}

func (e *Error) Error() string {
	if e.Missing {
		return fmt.Sprintf("could not get %s", e.Path)
	}
	article := "a"
	if e.Expected != "" && strings.ContainsRune("aeiou", rune(e.Expected[0])) {
		article = "an"
	}
	return fmt.Sprintf("%s was not %s %s", e.Path, article, e.Expected)
}

// Decode parses a JSON document, keeping numbers as json.Number so integer
// fields survive without float rounding.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding JSON document: %w", err)
	}
	return doc, nil
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(data []byte) (any, error) {
	return Decode(bytes.NewReader(data))
}

// Lookup resolves a JSON Pointer against doc. The empty path is the document
// itself. A present JSON null is found with a nil value.
func Lookup(doc any, path string) (any, bool) {
	if path == "" {
		return doc, true
	}
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}

	current := doc
	for _, token := range strings.Split(path[1:], "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")

		switch node := current.(type) {
		case map[string]any:
			child, ok := node[token]
			if !ok {
				return nil, false
			}
			current = child
		case []any:
			idx, err := strconv.Atoi(token)
			if err != nil || idx < 0 || idx >= len(node) || strconv.Itoa(idx) != token {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// get is the shared accessor: the path must exist and convert to T.
func get[T any](doc any, path, typeName string, convert func(any) (T, bool)) (T, error) {
	var zero T

	raw, ok := Lookup(doc, path)
	if !ok {
		return zero, &Error{Path: path, Expected: typeName, Missing: true}
	}

	value, ok := convert(raw)
	if !ok {
		return zero, &Error{Path: path, Expected: typeName}
	}
	return value, nil
}

// optional is get where absence is not an error.
func optional[T any](doc any, path, typeName string, convert func(any) (T, bool)) (T, bool, error) {
	var zero T

	raw, ok := Lookup(doc, path)
	if !ok {
		return zero, false, nil
	}

	value, ok := convert(raw)
	if !ok {
		return zero, true, &Error{Path: path, Expected: typeName}
	}
	return value, true, nil
}

// String returns the string at path.
func String(doc any, path string) (string, error) {
	return get(doc, path, "string", asString)
}

// Bool returns the bool at path.
func Bool(doc any, path string) (bool, error) {
	return get(doc, path, "bool", asBool)
}

// Uint64 returns the non-negative integer at path.
func Uint64(doc any, path string) (uint64, error) {
	return get(doc, path, "integer", asUint64)
}

// Array returns the array at path. The elements are the document's own
// values and can be navigated further with the empty path or child paths.
func Array(doc any, path string) ([]any, error) {
	return get(doc, path, "array", asArray)
}

// Object returns the object at path.
func Object(doc any, path string) (map[string]any, error) {
	return get(doc, path, "object", asObject)
}

// OptionalString returns the string at path, or found=false when the path is
// absent. A present value of another type is still an error.
func OptionalString(doc any, path string) (value string, found bool, err error) {
	return optional(doc, path, "string", asString)
}

// OptionalArray returns the array at path, or found=false when the path is absent.
func OptionalArray(doc any, path string) (value []any, found bool, err error) {
	return optional(doc, path, "array", asArray)
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// asUint64 accepts json.Number from Decode as well as the Go numeric types a
// hand-built document may contain.
func asUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case json.Number:
		u, err := strconv.ParseUint(n.String(), 10, 64)
		return u, err == nil
	case float64:
		if n < 0 || n != math.Trunc(n) || n >= 1<<64 {
			return 0, false
		}
		return uint64(n), true
	case int:
		return uint64(n), n >= 0
	case int64:
		return uint64(n), n >= 0
	case uint64:
		return n, true
	default:
		return 0, false
	}
}
