// Package keyedmap implements a multi-key associative container backing the
// framework's memo and pending-circular tables: callers build a stable
// string key from a tuple of components (typically an operation key plus
// two identity-ish values) and look values up by that key.
package keyedmap

import (
	"fmt"
	"reflect"
	"strings"
)

// BuildKey joins parts into a single stable string key using a separator
// unlikely to appear in any part's own formatting. Parts are formatted with
// %p for pointers (and interface values wrapping a pointer, e.g. a
// typegraph.Node) so that identity, not structural equality, drives the key.
// This matters because the type graph this package's callers walk is
// routinely cyclic: formatting a pointer-to-struct with %v would recurse
// into its fields (and back around the cycle) instead of taking its
// address, so every pointer-shaped part is routed through %p explicitly.
func BuildKey(parts ...any) string {
	b := make([]string, len(parts))
	for i, p := range parts {
		if rv := reflect.ValueOf(p); p != nil && rv.Kind() == reflect.Ptr {
			b[i] = fmt.Sprintf("%p", p)
		} else {
			b[i] = fmt.Sprintf("%v", p)
		}
	}
	return strings.Join(b, "\x1f")
}

// Map is a generic string-keyed associative container. It exists (rather
// than a bare Go map) so the memo and waiter tables share one vocabulary
// for Get/Set/Delete and so call sites read as intent ("memo.Get(key)")
// instead of raw map indexing sprinkled through the dispatcher.
type Map[V any] struct {
	m map[string]V
}

// New constructs an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{m: make(map[string]V)}
}

// Get returns the value stored at key, if any.
func (m *Map[V]) Get(key string) (V, bool) {
	v, ok := m.m[key]
	return v, ok
}

// Set stores v at key, overwriting any previous value.
func (m *Map[V]) Set(key string, v V) {
	m.m[key] = v
}

// Delete removes key, if present.
func (m *Map[V]) Delete(key string) {
	delete(m.m, key)
}

// Len reports the number of stored entries.
func (m *Map[V]) Len() int {
	return len(m.m)
}

// ListMap is a multi-value variant backing waitingCircularRefs: each key
// accumulates an ordered list of waiters rather than a single value, and
// Drain atomically returns and clears the list for a key (the "drained
// exactly once" invariant from §3).
type ListMap[V any] struct {
	m map[string][]V
}

// NewListMap constructs an empty ListMap.
func NewListMap[V any]() *ListMap[V] {
	return &ListMap[V]{m: make(map[string][]V)}
}

// Append adds v to the list stored at key.
func (m *ListMap[V]) Append(key string, v V) {
	m.m[key] = append(m.m[key], v)
}

// Drain returns the list stored at key and removes it from the map.
func (m *ListMap[V]) Drain(key string) []V {
	vs := m.m[key]
	delete(m.m, key)
	return vs
}
