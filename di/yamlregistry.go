package di

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrYAMLRoot is returned when the registry source is not a YAML mapping.
var ErrYAMLRoot = errors.New("registry: yaml source root must be a mapping")

// YAMLRegistry resolves optional dependency values from a YAML mapping.
//
// Each top-level key of the document is a registry key; Resolve decodes the
// value node into a generic Go value (maps, slices, scalars). For typed access
// use DecodeAs.
//
// Like MapRegistry it ignores cfg. The document is parsed once, at
// construction; per-key decode failures surface as Resolve errors.
type YAMLRegistry struct {
	nodes map[string]*yaml.Node
}

// NewYAMLRegistry parses src and indexes the top-level mapping.
//
// An empty document yields an empty registry. Any other non-mapping root is
// rejected with ErrYAMLRoot.
func NewYAMLRegistry(src []byte) (*YAMLRegistry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("registry: parse yaml: %w", err)
	}

	r := &YAMLRegistry{nodes: map[string]*yaml.Node{}}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return r, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, ErrYAMLRoot
	}

	// Mapping nodes alternate key, value.
	for i := 0; i+1 < len(root.Content); i += 2 {
		r.nodes[root.Content[i].Value] = root.Content[i+1]
	}
	return r, nil
}

// Resolve implements Registry. The value is decoded into a generic any.
func (r *YAMLRegistry) Resolve(_ any, key string) (any, bool, error) {
	node, ok := r.nodes[key]
	if !ok {
		return nil, false, nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, false, fmt.Errorf("registry: decode key %q: %w", key, err)
	}
	return v, true, nil
}

// Keys returns the registry keys in unspecified order.
func (r *YAMLRegistry) Keys() []string {
	out := make([]string, 0, len(r.nodes))
	for k := range r.nodes {
		out = append(out, k)
	}
	return out
}

// DecodeAs decodes the value under key into T.
//
// ok is false when the key is absent; decode failures are returned as errors.
func DecodeAs[T any](r *YAMLRegistry, key string) (T, bool, error) {
	var out T
	node, ok := r.nodes[key]
	if !ok {
		return out, false, nil
	}
	if err := node.Decode(&out); err != nil {
		return out, false, fmt.Errorf("registry: decode key %q: %w", key, err)
	}
	return out, true, nil
}
