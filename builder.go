package emitcore

import "strings"

// StringBuilder assembles a template string out of concrete strings and
// Placeholders that may still be pending, producing a single Placeholder
// that resolves once every part has (§4.2).
type StringBuilder struct {
	parts []any // string or *Placeholder
}

// NewStringBuilder returns an empty StringBuilder.
func NewStringBuilder() *StringBuilder { return &StringBuilder{} }

// Push appends a literal string segment.
func (b *StringBuilder) Push(s string) *StringBuilder {
	b.parts = append(b.parts, s)
	return b
}

// PushPlaceholder appends a segment whose text is not known yet.
func (b *StringBuilder) PushPlaceholder(p *Placeholder) *StringBuilder {
	b.parts = append(b.parts, p)
	return b
}

// Reduce flattens nested []any parts, recursively, into one flat slice;
// every other part, Placeholders included, is kept as is.
func Reduce(parts ...any) []any {
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		if nested, ok := p.([]any); ok {
			out = append(out, Reduce(nested...)...)
			continue
		}
		out = append(out, p)
	}
	return out
}

// Build returns a Placeholder that resolves to the concatenation of all
// parts once every pending Placeholder among them has resolved.
func (b *StringBuilder) Build() *Placeholder {
	result := NewPlaceholder()
	segments := make([]string, len(b.parts))
	pending := 0

	for i, part := range b.parts {
		switch v := part.(type) {
		case string:
			segments[i] = v
		case *Placeholder:
			pending++
		}
	}

	if pending == 0 {
		result.Resolve(strings.Join(segments, ""))
		return result
	}

	remaining := pending
	for i, part := range b.parts {
		i, part := i, part
		p, ok := part.(*Placeholder)
		if !ok {
			continue
		}
		p.OnResolve(func(v any) {
			if s, ok := v.(string); ok {
				segments[i] = s
			}
			remaining--
			if remaining == 0 {
				result.Resolve(strings.Join(segments, ""))
			}
		})
	}
	return result
}

// ObjectBuilder assembles a map whose values may be concrete or pending
// Placeholders, producing a single Placeholder that resolves to
// map[string]any once every value has (§4.2).
type ObjectBuilder struct {
	keys   []string
	values []any // concrete value or *Placeholder
}

// NewObjectBuilder returns an empty ObjectBuilder.
func NewObjectBuilder() *ObjectBuilder { return &ObjectBuilder{} }

// Set assigns key to value, which may be a concrete value or a *Placeholder.
// A repeated key overwrites the prior entry's value in place, preserving the
// key's original insertion position.
func (b *ObjectBuilder) Set(key string, value any) *ObjectBuilder {
	for i, k := range b.keys {
		if k == key {
			b.values[i] = value
			return b
		}
	}
	b.keys = append(b.keys, key)
	b.values = append(b.values, value)
	return b
}

// Build returns a Placeholder resolving to map[string]any once every pending
// value has resolved.
func (b *ObjectBuilder) Build() *Placeholder {
	return buildContainer(b.values, func(resolved []any) any {
		m := make(map[string]any, len(b.keys))
		for i, k := range b.keys {
			m[k] = resolved[i]
		}
		return m
	})
}

// ArrayBuilder assembles a slice whose elements may be concrete or pending
// Placeholders, producing a single Placeholder that resolves to []any once
// every element has (§4.2).
type ArrayBuilder struct {
	values []any
}

// NewArrayBuilder returns an empty ArrayBuilder.
func NewArrayBuilder() *ArrayBuilder { return &ArrayBuilder{} }

// Push appends value, which may be a concrete value or a *Placeholder.
func (b *ArrayBuilder) Push(value any) *ArrayBuilder {
	b.values = append(b.values, value)
	return b
}

// Build returns a Placeholder resolving to []any once every pending element
// has resolved.
func (b *ArrayBuilder) Build() *Placeholder {
	return buildContainer(b.values, func(resolved []any) any {
		out := make([]any, len(resolved))
		copy(out, resolved)
		return out
	})
}

// buildContainer is the shared fan-in used by ObjectBuilder and ArrayBuilder:
// it waits for every Placeholder among values to resolve, then calls finish
// with the fully-resolved slice (same length/order as values).
func buildContainer(values []any, finish func([]any) any) *Placeholder {
	result := NewPlaceholder()
	resolved := make([]any, len(values))
	pending := 0

	for i, v := range values {
		if _, ok := v.(*Placeholder); ok {
			pending++
		} else {
			resolved[i] = v
		}
	}

	if pending == 0 {
		result.Resolve(finish(resolved))
		return result
	}

	remaining := pending
	for i, v := range values {
		i, v := i, v
		p, ok := v.(*Placeholder)
		if !ok {
			continue
		}
		p.OnResolve(func(val any) {
			resolved[i] = val
			remaining--
			if remaining == 0 {
				result.Resolve(finish(resolved))
			}
		})
	}
	return result
}
