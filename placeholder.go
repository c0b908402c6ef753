package emitcore

import "sync"

// Placeholder is a single-assignment cell for a value that may not be known
// yet when it is first referenced (§4.2) — typically code produced by a
// declaration still being emitted because of a circular reference.
// Observers registered before resolution are invoked once, in registration
// order, at Resolve time; observers registered after resolution are invoked
// immediately, synchronously, on the calling goroutine.
type Placeholder struct {
	mu       sync.Mutex
	resolved bool
	value    any
	waiters  []func(any)
}

// NewPlaceholder returns an unresolved Placeholder.
func NewPlaceholder() *Placeholder { return &Placeholder{} }

// Resolved returns an already-resolved Placeholder wrapping v, useful when a
// caller has a concrete value on hand and wants to satisfy a Placeholder-typed
// field without the indirection.
func Resolved(v any) *Placeholder {
	return &Placeholder{resolved: true, value: v}
}

// OnResolve registers fn to run with the eventual value. If the Placeholder
// is already resolved, fn runs immediately before OnResolve returns.
func (p *Placeholder) OnResolve(fn func(any)) {
	p.mu.Lock()
	if p.resolved {
		v := p.value
		p.mu.Unlock()
		fn(v)
		return
	}
	p.waiters = append(p.waiters, fn)
	p.mu.Unlock()
}

// Resolve assigns v and fires every registered observer exactly once, in the
// order they were registered. Resolving an already-resolved Placeholder is a
// no-op; the first Resolve call wins, matching "single assignment cell".
func (p *Placeholder) Resolve(v any) {
	p.mu.Lock()
	if p.resolved {
		p.mu.Unlock()
		return
	}
	p.resolved = true
	p.value = v
	waiters := p.waiters
	p.waiters = nil
	p.mu.Unlock()

	for _, fn := range waiters {
		fn(v)
	}
}

// IsResolved reports whether Resolve has been called.
func (p *Placeholder) IsResolved() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolved
}

// Value returns the resolved value and true, or (nil, false) if still
// unresolved. Callers that must have a final value (e.g. the output writer
// after EmitProgram completes) should treat a false result as
// ErrStillCircular.
func (p *Placeholder) Value() (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, p.resolved
}

// MustString returns the resolved value as a string, or an ErrStillCircular
// EmitError if unresolved or not a string.
func (p *Placeholder) MustString() (string, error) {
	v, ok := p.Value()
	if !ok {
		return "", NewEmitError(ErrStillCircular, "", "placeholder never resolved", nil)
	}
	s, ok := v.(string)
	if !ok {
		return "", NewEmitError(ErrStillCircular, "", "placeholder resolved to a non-string value", nil)
	}
	return s, nil
}
