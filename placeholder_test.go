package emitcore

import "testing"

func TestPlaceholder_ResolveFiresWaitersOnce(t *testing.T) {
	p := NewPlaceholder()
	var got []any
	p.OnResolve(func(v any) { got = append(got, v) })
	p.Resolve("a")
	p.Resolve("b") // no-op: single-assignment

	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected exactly one callback with \"a\", got %v", got)
	}
	if v, ok := p.Value(); !ok || v != "a" {
		t.Fatalf("expected resolved value \"a\", got %v ok=%v", v, ok)
	}
}

func TestPlaceholder_OnResolveAfterResolutionRunsImmediately(t *testing.T) {
	p := Resolved(42)
	called := false
	p.OnResolve(func(v any) {
		called = true
		if v != 42 {
			t.Fatalf("expected 42, got %v", v)
		}
	})
	if !called {
		t.Fatalf("expected OnResolve to run synchronously for an already-resolved placeholder")
	}
}

func TestPlaceholder_MustStringErrorsWhenUnresolved(t *testing.T) {
	p := NewPlaceholder()
	if _, err := p.MustString(); !IsKind(err, ErrStillCircular) {
		t.Fatalf("expected ErrStillCircular, got %v", err)
	}
}

func TestPlaceholder_MustStringErrorsOnNonString(t *testing.T) {
	p := Resolved(7)
	if _, err := p.MustString(); !IsKind(err, ErrStillCircular) {
		t.Fatalf("expected ErrStillCircular for non-string value, got %v", err)
	}
}
