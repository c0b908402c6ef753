package emitcore

import (
	"context"
	"testing"

	"github.com/cadl-tools/emitcore/internal/typegraph"
)

// literalEmitter passes every literal/property kind through as its own
// name or value, just enough to drive AssetEmitter's plural EmitXxx helpers.
type literalEmitter struct {
	BaseEmitter
	ae    *AssetEmitter
	scope *Scope
}

func (e *literalEmitter) ModelDeclaration(ctx context.Context, m *typegraph.Model) (EmitEntity, error) {
	return Declaration(m.Name, e.scope, Resolved(m.Name)), nil
}

func (e *literalEmitter) StringLiteral(ctx context.Context, l *typegraph.StringLiteral) (EmitEntity, error) {
	return RawCode(Resolved(l.Value)), nil
}

// ModelPropertyLiteral renders as its underlying type's own reference text,
// not the property's own name, so a test asserting on the result exercises
// the Type dispatch rather than echoing back p.Name.
func (e *literalEmitter) ModelPropertyLiteral(ctx context.Context, p *typegraph.ModelProperty) (EmitEntity, error) {
	ref, err := e.ae.EmitTypeReference(ctx, p.Type)
	if err != nil {
		return EmitEntity{}, err
	}
	return RawCode(ref), nil
}

func newLiteralAssetEmitter() (*AssetEmitter, *literalEmitter) {
	var le *literalEmitter
	ctx := CreateEmitterContext(NewProgram(nil), WithHost(NewMemHost()))
	ae := ctx.CreateAssetEmitter(func(ae *AssetEmitter) UserEmitter {
		_, scope := ae.CreateSourceFile("out.txt", nil)
		le = &literalEmitter{ae: ae, scope: scope}
		return le
	})
	return ae, le
}

func TestEmitModelProperties_RunsEachPropertyInOrder(t *testing.T) {
	ae, _ := newLiteralAssetEmitter()
	m := &typegraph.Model{Name: "Widget"}
	m.Properties = []*typegraph.ModelProperty{
		{Name: "first", Model: m, Type: &typegraph.StringLiteral{Value: "one"}},
		{Name: "second", Model: m, Type: &typegraph.StringLiteral{Value: "two"}},
	}

	entities, err := ae.EmitModelProperties(context.Background(), m)
	if err != nil {
		t.Fatalf("EmitModelProperties: %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(entities))
	}
	s0, _ := entities[0].ValuePlaceholder().MustString()
	s1, _ := entities[1].ValuePlaceholder().MustString()
	if s0 != "one" || s1 != "two" {
		t.Fatalf("expected property order one,two, got %q,%q", s0, s1)
	}
}

func TestEmitOperationParameters_RunsEachParameter(t *testing.T) {
	ae, _ := newLiteralAssetEmitter()
	o := &typegraph.Operation{Name: "Get"}
	o.Parameters = []*typegraph.ModelProperty{
		{Name: "id", Model: nil, Type: &typegraph.StringLiteral{Value: "id"}},
	}

	entities, err := ae.EmitOperationParameters(context.Background(), o)
	if err != nil {
		t.Fatalf("EmitOperationParameters: %v", err)
	}
	if len(entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(entities))
	}
}

func TestEmitOperationReturnType_NilReturnTypeResolvesEmpty(t *testing.T) {
	ae, _ := newLiteralAssetEmitter()
	o := &typegraph.Operation{Name: "Delete"}

	p, err := ae.EmitOperationReturnType(context.Background(), o)
	if err != nil {
		t.Fatalf("EmitOperationReturnType: %v", err)
	}
	s, err := p.MustString()
	if err != nil {
		t.Fatalf("MustString: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for a nil return type, got %q", s)
	}
}

func TestEmitOperationReturnType_ResolvesDeclarationName(t *testing.T) {
	ae, _ := newLiteralAssetEmitter()
	m := &typegraph.Model{Name: "Widget"}
	o := &typegraph.Operation{Name: "Get", ReturnType: m}

	p, err := ae.EmitOperationReturnType(context.Background(), o)
	if err != nil {
		t.Fatalf("EmitOperationReturnType: %v", err)
	}
	s, err := p.MustString()
	if err != nil {
		t.Fatalf("MustString: %v", err)
	}
	if s != "Widget" {
		t.Fatalf("expected %q, got %q", "Widget", s)
	}
}

func TestEmitTupleLiteralValues_ResolvesEachElementReference(t *testing.T) {
	ae, _ := newLiteralAssetEmitter()
	a := &typegraph.Model{Name: "A"}
	b := &typegraph.Model{Name: "B"}
	tuple := &typegraph.Tuple{Elements: []typegraph.Node{a, b}}

	refs, err := ae.EmitTupleLiteralValues(context.Background(), tuple)
	if err != nil {
		t.Fatalf("EmitTupleLiteralValues: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d", len(refs))
	}
	s0, _ := refs[0].MustString()
	s1, _ := refs[1].MustString()
	if s0 != "A" || s1 != "B" {
		t.Fatalf("expected A,B, got %q,%q", s0, s1)
	}
}

func TestAssetEmitter_CreateScopeBranchesOnSourceFileBlock(t *testing.T) {
	ae, _ := newLiteralAssetEmitter()
	sf, root := ae.CreateSourceFile("models.ts", nil)

	nsScope := ae.CreateScope("models", "Models", root)
	if nsScope.Kind() != ScopeKindNamespace {
		t.Fatalf("expected a namespace marker block to create a ScopeKindNamespace scope, got %v", nsScope.Kind())
	}

	sfScope := ae.CreateScope(sf, "", root)
	if sfScope.Kind() != ScopeKindSourceFile {
		t.Fatalf("expected a *SourceFile block to create a ScopeKindSourceFile scope, got %v", sfScope.Kind())
	}
}

func TestAssetEmitter_TagsAndHasTag(t *testing.T) {
	ctx := CreateEmitterContext(NewProgram(nil), WithHost(NewMemHost()))
	ae := ctx.CreateAssetEmitter(func(ae *AssetEmitter) UserEmitter {
		return &BaseEmitter{}
	}, "typescript", "client")

	if !ae.HasTag("typescript") || !ae.HasTag("client") {
		t.Fatalf("expected HasTag to report true for tags passed to CreateAssetEmitter, got %v", ae.Tags())
	}
	if ae.HasTag("python") {
		t.Fatalf("expected HasTag to report false for an untagged value")
	}
}

func TestEmitterContext_CreateAssetEmitterDisambiguatesTagFactoryNames(t *testing.T) {
	ctx := CreateEmitterContext(NewProgram(nil), WithHost(NewMemHost()))
	first := ctx.TagFactory().New("client")
	second := ctx.TagFactory().New("client")
	if first == second {
		t.Fatalf("expected repeated tag names to be disambiguated, got %q twice", first)
	}
}
