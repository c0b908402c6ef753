package emitcore

import "testing"

func TestEntityKinds(t *testing.T) {
	scope := &Scope{}
	d := Declaration("Widget", scope, Resolved("code"))
	if !d.IsDeclaration() || d.IsCircular() || d.IsNoEmit() {
		t.Fatalf("unexpected kind flags on Declaration: %+v", d)
	}
	if d.ValuePlaceholder() != d.Code {
		t.Fatalf("ValuePlaceholder should return Code for a declaration")
	}

	r := RawCode(Resolved("x"))
	if r.ValuePlaceholder() != r.RawCode {
		t.Fatalf("ValuePlaceholder should return RawCode for raw code")
	}

	n := NoEmit()
	if !n.IsNoEmit() || n.ValuePlaceholder() != nil {
		t.Fatalf("NoEmit should report IsNoEmit and have no placeholder")
	}

	c := circularEmit()
	if !c.IsCircular() || c.ValuePlaceholder() != nil {
		t.Fatalf("circularEmit should report IsCircular and have no placeholder")
	}
}
