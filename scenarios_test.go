package emitcore

import (
	"context"
	"testing"

	"github.com/cadl-tools/emitcore/internal/typegraph"
)

// namespaceAwareEmitter backs TestEmitProgram_NamespaceContextPropagation
// (§8 scenario 4): NamespaceContext reports whether the namespace being
// folded is named "A", and ModelDeclaration records what GetContext sees for
// its own declaration.
type namespaceAwareEmitter struct {
	BaseEmitter
	ae      *AssetEmitter
	scope   *Scope
	inA     map[string]bool
	seen    []string
	modelFn int
}

func newNamespaceAwareEmitter(ae *AssetEmitter) UserEmitter {
	_, scope := ae.CreateSourceFile("out.txt", nil)
	return &namespaceAwareEmitter{ae: ae, scope: scope, inA: map[string]bool{}}
}

func (e *namespaceAwareEmitter) NamespaceContext(ctx context.Context, n *typegraph.Namespace) (map[string]any, error) {
	return map[string]any{"inA": n.Name == "A"}, nil
}

func (e *namespaceAwareEmitter) ModelDeclaration(ctx context.Context, m *typegraph.Model) (EmitEntity, error) {
	e.modelFn++
	state, err := e.ae.GetContext(ctx, m)
	if err != nil {
		return EmitEntity{}, err
	}
	inA, _ := state.Lexical["inA"].(bool)
	e.inA[m.Name] = inA
	e.seen = append(e.seen, m.Name)
	return Declaration(m.Name, e.scope, Resolved(m.Name)), nil
}

func TestEmitProgram_NamespaceContextPropagation(t *testing.T) {
	root := &typegraph.Namespace{Name: ""}
	a := &typegraph.Namespace{Name: "A", Parent: root}
	foo := &typegraph.Model{Name: "Foo", Namespace: a}
	a.Models = []*typegraph.Model{foo}
	bar := &typegraph.Model{Name: "Bar", Namespace: root}
	root.Models = []*typegraph.Model{bar}
	root.Namespaces = []*typegraph.Namespace{a}

	program := NewProgram(root)
	ctx := CreateEmitterContext(program, WithHost(NewMemHost()))
	var e *namespaceAwareEmitter
	ae := ctx.CreateAssetEmitter(func(ae *AssetEmitter) UserEmitter {
		ne := newNamespaceAwareEmitter(ae).(*namespaceAwareEmitter)
		e = ne
		return ne
	})

	if err := ae.EmitProgram(context.Background(), EmitProgramOptions{}); err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}
	if e.modelFn != 2 {
		t.Fatalf("expected ModelDeclaration to fire exactly twice, fired %d times", e.modelFn)
	}
	if !e.inA["Foo"] {
		t.Fatalf("expected Foo's context to report inA=true, got %v", e.inA)
	}
	if e.inA["Bar"] {
		t.Fatalf("expected Bar's context to report inA=false, got %v", e.inA)
	}
}

// refContextEmitter backs TestEmitTypeReference_DistinctReferenceContextsReemit
// (§8 scenario 5): Qux is referenced from both Foo and Bar, and
// ModelDeclarationReferenceContext reports {ref: true} for every referrer but
// an empty map for Qux itself, so a reference to Qux folds to a different
// context than Qux's own top-level emission — two distinct (opKey, Qux,
// context) memo entries, each driving one ModelDeclaration call, with the
// reference-side entry shared between Foo's and Bar's structurally-identical
// incoming reference context.
type refContextEmitter struct {
	BaseEmitter
	ae      *AssetEmitter
	scope   *Scope
	modelFn int
	refCtxFn int
}

func newRefContextEmitter(ae *AssetEmitter) UserEmitter {
	_, scope := ae.CreateSourceFile("out.txt", nil)
	return &refContextEmitter{ae: ae, scope: scope}
}

func (e *refContextEmitter) ModelDeclarationReferenceContext(ctx context.Context, m *typegraph.Model) (map[string]any, error) {
	e.refCtxFn++
	if m.Name == "Qux" {
		return map[string]any{}, nil
	}
	return map[string]any{"ref": true}, nil
}

func (e *refContextEmitter) ModelDeclaration(ctx context.Context, m *typegraph.Model) (EmitEntity, error) {
	e.modelFn++
	if _, err := e.ae.EmitModelProperties(ctx, m); err != nil {
		return EmitEntity{}, err
	}
	return Declaration(m.Name, e.scope, Resolved(m.Name)), nil
}

func (e *refContextEmitter) ModelPropertyLiteral(ctx context.Context, p *typegraph.ModelProperty) (EmitEntity, error) {
	ref, err := e.ae.EmitTypeReference(ctx, p.Type)
	if err != nil {
		return EmitEntity{}, err
	}
	return RawCode(ref), nil
}

func TestEmitTypeReference_DistinctReferenceContextsReemit(t *testing.T) {
	root := &typegraph.Namespace{Name: ""}
	qux := &typegraph.Model{Name: "Qux", Namespace: root}
	foo := &typegraph.Model{Name: "Foo", Namespace: root}
	bar := &typegraph.Model{Name: "Bar", Namespace: root}
	foo.Properties = []*typegraph.ModelProperty{{Name: "q", Model: foo, Type: qux}}
	bar.Properties = []*typegraph.ModelProperty{{Name: "q", Model: bar, Type: qux}}
	root.Models = []*typegraph.Model{qux, foo, bar}

	program := NewProgram(root)
	ctx := CreateEmitterContext(program, WithHost(NewMemHost()))
	var e *refContextEmitter
	ae := ctx.CreateAssetEmitter(func(ae *AssetEmitter) UserEmitter {
		re := newRefContextEmitter(ae).(*refContextEmitter)
		e = re
		return re
	})

	if err := ae.EmitProgram(context.Background(), EmitProgramOptions{}); err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}
	// Foo and Bar each declare once; Qux declares once at top level with no
	// incoming reference context, and once more under the {"ref": true}
	// context both Foo's and Bar's property reference it through — the two
	// referrers fold to the same canonical context, so that fourth emission
	// is shared rather than doubled.
	if e.modelFn != 4 {
		t.Fatalf("expected exactly 4 ModelDeclaration invocations (Foo, Bar, Qux-without-context, Qux-with-context), got %d", e.modelFn)
	}
	if e.refCtxFn != 4 {
		t.Fatalf("expected exactly 4 ModelDeclarationReferenceContext invocations (Foo, Bar, Qux-without-context, Qux-with-context, the last shared across both referrers), got %d", e.refCtxFn)
	}
}

// threeModelCycle backs TestEmitProgram_ResolvesThreeModelCycleWithSharedReferences
// (§8 scenario 2): Foo references Bar twice, Bar references Foo and Baz, Baz
// references Foo and Bar, reusing cycleEmitter from dispatch_test.go so the
// same "Name{prop:ref,...}" rendering drives the assertion.
func threeModelCycle() *typegraph.Namespace {
	ns := &typegraph.Namespace{Name: ""}
	foo := &typegraph.Model{Name: "Foo", Namespace: ns}
	bar := &typegraph.Model{Name: "Bar", Namespace: ns}
	baz := &typegraph.Model{Name: "Baz", Namespace: ns}
	foo.Properties = []*typegraph.ModelProperty{
		{Name: "p", Model: foo, Type: bar},
		{Name: "p2", Model: foo, Type: bar},
	}
	bar.Properties = []*typegraph.ModelProperty{
		{Name: "p", Model: bar, Type: foo},
		{Name: "p2", Model: bar, Type: baz},
	}
	baz.Properties = []*typegraph.ModelProperty{
		{Name: "p", Model: baz, Type: foo},
		{Name: "p2", Model: baz, Type: bar},
	}
	ns.Models = []*typegraph.Model{foo, bar, baz}
	return ns
}

func TestEmitProgram_ResolvesThreeModelCycleWithSharedReferences(t *testing.T) {
	program := NewProgram(threeModelCycle())
	host := NewMemHost()
	ctx := CreateEmitterContext(program, WithHost(host))
	ae := ctx.CreateAssetEmitter(newCycleEmitter)

	if err := ae.EmitProgram(context.Background(), EmitProgramOptions{}); err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}
	if err := ae.WriteOutput(context.Background()); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}

	out, ok := host.Get("out.txt")
	if !ok {
		t.Fatalf("expected out.txt to be written")
	}
	want := "Baz{p:Foo,p2:Bar}\nBar{p:Foo,p2:Baz}\nFoo{p:Bar,p2:Bar}\n"
	if got := string(out); got != want {
		t.Fatalf("unexpected output: %q", got)
	}
}

// perDeclFileEmitter backs TestEmitProgram_PerDeclarationFileRouting
// (§8 scenario 3): ModelDeclarationContext, not ModelDeclaration, is the one
// that creates a model's source file, exercising scope creation from a
// context-fold step rather than from the operation method itself.
type perDeclFileEmitter struct {
	BaseEmitter
	ae     *AssetEmitter
	scopes map[string]*Scope
}

func newPerDeclFileEmitter(ae *AssetEmitter) UserEmitter {
	return &perDeclFileEmitter{ae: ae, scopes: map[string]*Scope{}}
}

func (e *perDeclFileEmitter) ModelDeclarationContext(ctx context.Context, m *typegraph.Model) (map[string]any, error) {
	if _, ok := e.scopes[m.Name]; !ok {
		_, scope := e.ae.CreateSourceFile(m.Name+".ts", nil)
		e.scopes[m.Name] = scope
	}
	return nil, nil
}

func (e *perDeclFileEmitter) ModelDeclaration(ctx context.Context, m *typegraph.Model) (EmitEntity, error) {
	return Declaration(m.Name, e.scopes[m.Name], Resolved(m.Name)), nil
}

func TestEmitProgram_PerDeclarationFileRouting(t *testing.T) {
	ns := &typegraph.Namespace{Name: ""}
	names := []string{"Foo", "Bar", "Baz"}
	for _, n := range names {
		ns.Models = append(ns.Models, &typegraph.Model{Name: n, Namespace: ns})
	}

	program := NewProgram(ns)
	host := NewMemHost()
	ctx := CreateEmitterContext(program, WithHost(host))
	ae := ctx.CreateAssetEmitter(newPerDeclFileEmitter)

	if err := ae.EmitProgram(context.Background(), EmitProgramOptions{}); err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}
	if err := ae.WriteOutput(context.Background()); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}

	for _, n := range names {
		if _, ok := host.Get(n + ".ts"); !ok {
			t.Fatalf("expected %s.ts to be written", n)
		}
	}
}

// objectCycleEmitter backs TestEmitProgram_ObjectBuilderResolvesCycleWithNoPlaceholderLeakage
// (§8 scenario 6): each model declaration resolves to a
// map[string]any{"name": ..., "props": [...]} built through ObjectBuilder
// and ArrayBuilder, and each property reference resolves to
// map[string]any{"$ref": <declaration name>} built through ObjectBuilder —
// exercising the builders' fan-in across a genuine reference cycle rather
// than a single flat StringBuilder.
type objectCycleEmitter struct {
	BaseEmitter
	ae      *AssetEmitter
	scope   *Scope
	results map[string]*Placeholder
}

func newObjectCycleEmitter(ae *AssetEmitter) UserEmitter {
	_, scope := ae.CreateSourceFile("out.json", nil)
	return &objectCycleEmitter{ae: ae, scope: scope, results: map[string]*Placeholder{}}
}

func (e *objectCycleEmitter) ModelDeclaration(ctx context.Context, m *typegraph.Model) (EmitEntity, error) {
	name, err := e.ae.EmitDeclarationName(m)
	if err != nil {
		return EmitEntity{}, err
	}
	props, err := e.ae.EmitModelProperties(ctx, m)
	if err != nil {
		return EmitEntity{}, err
	}
	arr := NewArrayBuilder()
	for _, p := range props {
		arr.Push(p.ValuePlaceholder())
	}
	obj := NewObjectBuilder().Set("name", name).Set("props", arr.Build())
	p := obj.Build()
	e.results[name] = p
	return Declaration(name, e.scope, p), nil
}

func (e *objectCycleEmitter) ModelPropertyLiteral(ctx context.Context, p *typegraph.ModelProperty) (EmitEntity, error) {
	ref, err := e.ae.EmitTypeReference(ctx, p.Type)
	if err != nil {
		return EmitEntity{}, err
	}
	obj := NewObjectBuilder().Set("$ref", ref)
	return RawCode(obj.Build()), nil
}

func TestEmitProgram_ObjectBuilderResolvesCycleWithNoPlaceholderLeakage(t *testing.T) {
	program := NewProgram(twoModelCycle())
	host := NewMemHost()
	ctx := CreateEmitterContext(program, WithHost(host))
	var e *objectCycleEmitter
	ae := ctx.CreateAssetEmitter(func(ae *AssetEmitter) UserEmitter {
		oe := newObjectCycleEmitter(ae).(*objectCycleEmitter)
		e = oe
		return oe
	})

	if err := ae.EmitProgram(context.Background(), EmitProgramOptions{}); err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}

	for _, name := range []string{"A", "B"} {
		ph, ok := e.results[name]
		if !ok {
			t.Fatalf("expected a result for %s", name)
		}
		v, resolved := ph.Value()
		if !resolved {
			t.Fatalf("expected %s's declaration to be fully resolved, cycle left a dangling placeholder", name)
		}
		assertNoPlaceholders(t, v)
	}

	aVal, _ := e.results["A"].Value()
	assertRefTarget(t, aVal, "B")
	bVal, _ := e.results["B"].Value()
	assertRefTarget(t, bVal, "A")
}

// assertNoPlaceholders fails the test if v, or anything nested within it via
// map[string]any or []any, is a *Placeholder — the observable proof that the
// builder fan-in fully resolved every reference around the cycle rather than
// leaving a marker in the serialized shape.
func assertNoPlaceholders(t *testing.T, v any) {
	t.Helper()
	switch x := v.(type) {
	case *Placeholder:
		t.Fatalf("found an unresolved placeholder marker in the built value: %#v", x)
	case map[string]any:
		for _, nested := range x {
			assertNoPlaceholders(t, nested)
		}
	case []any:
		for _, nested := range x {
			assertNoPlaceholders(t, nested)
		}
	}
}

// assertRefTarget walks declVal's single property's $ref entry and checks it
// names want.
func assertRefTarget(t *testing.T, declVal any, want string) {
	t.Helper()
	m, ok := declVal.(map[string]any)
	if !ok {
		t.Fatalf("expected declaration value to be a map, got %#v", declVal)
	}
	props, ok := m["props"].([]any)
	if !ok || len(props) != 1 {
		t.Fatalf("expected exactly one property, got %#v", m["props"])
	}
	prop, ok := props[0].(map[string]any)
	if !ok {
		t.Fatalf("expected property value to be a map, got %#v", props[0])
	}
	if got := prop["$ref"]; got != want {
		t.Fatalf("expected $ref %q, got %#v", want, got)
	}
}
