package fixture

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes r as a YAML fixture document into the same generic value
// tree Load produces from JSON, so BuildNamespace accepts either backend's
// output interchangeably.
func LoadYAML(r io.Reader) (any, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	return normalizeYAML(raw)
}

// normalizeYAML rewrites yaml.v3's map[string]interface{} (already native)
// and map[interface{}]interface{} (produced for non-string-keyed mappings,
// which fixtures never use but a careless author might write) into
// map[string]any uniformly, matching the shape BuildNamespace expects.
func normalizeYAML(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			nv, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("fixture: YAML map key %v is not a string", k)
			}
			nv, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[ks] = nv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			nv, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case int:
		return Number(fmt.Sprintf("%d", t)), nil
	default:
		return v, nil
	}
}
