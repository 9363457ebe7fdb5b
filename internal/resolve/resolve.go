// Package resolve looks up tag paths in a data tree.
package resolve

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Resolver returns the string value stored at a dotted path. ok is false when
// the path does not resolve to a value; that is a normal outcome, not an error.
type Resolver interface {
	Lookup(path string) (value string, ok bool)
}

// ResolverFunc adapts a plain function to a Resolver.
type ResolverFunc func(path string) (string, bool)

func (f ResolverFunc) Lookup(path string) (string, bool) {
	return f(path)
}

// JSON resolves paths against a JSON document using gjson path syntax.
type JSON struct {
	root gjson.Result
}

// NewJSON parses data once and returns a resolver over it.
func NewJSON(data []byte) (*JSON, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json data")
	}
	return &JSON{root: gjson.ParseBytes(data)}, nil
}

// FromValue marshals v to JSON and returns a resolver over the result.
func FromValue(v any) (*JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal data: %w", err)
	}
	return NewJSON(data)
}

// Lookup returns the value at path. Null and missing values report !ok.
// Objects and arrays come back as their raw JSON text.
func (j *JSON) Lookup(path string) (string, bool) {
	r := j.root.Get(path)
	if !r.Exists() || r.Type == gjson.Null {
		return "", false
	}
	if r.IsObject() || r.IsArray() {
		return r.Raw, true
	}
	return r.String(), true
}

// Static is a flat path → value map, handy for callers that already hold
// resolved values.
type Static map[string]string

func (s Static) Lookup(path string) (string, bool) {
	v, ok := s[path]
	return v, ok
}

// Counting wraps a Resolver and records how many lookups were made.
type Counting struct {
	Resolver Resolver
	Calls    int
	Paths    []string
}

func (c *Counting) Lookup(path string) (string, bool) {
	c.Calls++
	c.Paths = append(c.Paths, path)
	return c.Resolver.Lookup(path)
}
