package emitcore

import (
	"context"

	"github.com/cadl-tools/emitcore/internal/typegraph"
)

// UserEmitter is the minimal contract a concrete emitter must satisfy to be
// handed to (*EmitterContext).CreateAssetEmitter. It carries no methods of
// its own: the real operation contracts are the narrow per-opKey interfaces
// in emitter.go, which callOperation type-switches ae.emitter against at
// dispatch time, and the <opKey>Context/<opKey>ReferenceContext methods,
// which invokeContextMethod looks up by reflection. Declaring it as a named
// interface rather than bare any documents BaseEmitter as the intended
// embedding target for anything implementing it.
type UserEmitter interface{}

// AssetEmitter is the framework's façade: it owns the dispatcher, the
// context engine (via EmitterContext), the scope forest roots it has
// created, and the user emitter whose operations it invokes. Construct one
// with (*EmitterContext).CreateAssetEmitter per code-generation run.
type AssetEmitter struct {
	ctx     *EmitterContext
	emitter UserEmitter
	disp    *dispatcher
	tags    []Tag

	sourceFiles []*SourceFile
	scopes      map[*SourceFile]*Scope
}

// Tags returns the tags this AssetEmitter was created with.
func (ae *AssetEmitter) Tags() []Tag { return ae.tags }

// HasTag reports whether tag was passed to CreateAssetEmitter for ae.
func (ae *AssetEmitter) HasTag(tag Tag) bool {
	for _, t := range ae.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// GetContext folds node's enclosing-declaration chain and returns the
// resulting context state, the same state EmitType/EmitTypeReference use
// internally — exposed so a user emitter's own operation methods can look
// up "what namespace/scope am I in" without re-deriving it.
func (ae *AssetEmitter) GetContext(ctx context.Context, node typegraph.Node) (*ContextState, error) {
	return ae.contextFor(ctx, node, nil)
}

// GetProgram returns the Program this AssetEmitter is emitting.
func (ae *AssetEmitter) GetProgram() *Program { return ae.ctx.program }

// EmitType runs node's operation (memoized per context) and returns its
// EmitEntity — the full result, including a still-unresolved Code
// Placeholder for declarations. Most user emitter code wants
// EmitTypeReference instead; EmitType is for the call site that is building
// the declaration's own code, not referencing it from elsewhere.
func (ae *AssetEmitter) EmitType(ctx context.Context, node typegraph.Node) (EmitEntity, error) {
	state, err := ae.contextFor(ctx, node, nil)
	if err != nil {
		return EmitEntity{}, err
	}
	return ae.invokeTypeEmitter(ctx, node, state)
}

// EmitTypeReference resolves a reference to node from the current call
// site's context, returning a Placeholder for the reference text. The
// calling operation's own reference context (recovered from ctx) is folded
// in as node's incoming reference context (§4.7 step 2), so the same target
// type referenced from two different declarations can fold to two distinct
// contexts and re-emit accordingly.
func (ae *AssetEmitter) EmitTypeReference(ctx context.Context, node typegraph.Node) (*Placeholder, error) {
	state, err := ae.contextFor(ctx, node, currentReferenceContext(ctx))
	if err != nil {
		return nil, err
	}
	return ae.emitTypeReference(ctx, node, state)
}

// EmitDeclarationName computes node's deterministic declaration name.
func (ae *AssetEmitter) EmitDeclarationName(node typegraph.Node) (string, error) {
	return EmitDeclarationName(node)
}

// CreateSourceFile allocates a new source file and its root scope, tracking
// it in creation order for WriteOutput.
func (ae *AssetEmitter) CreateSourceFile(path string, meta any) (*SourceFile, *Scope) {
	sf, scope := CreateSourceFile(ae.ctx.program, path, meta)
	ae.sourceFiles = append(ae.sourceFiles, sf)
	ae.scopes[sf] = scope
	return sf, scope
}

// CreateScope allocates a child scope under parent: a SourceFileScope if
// block is the SourceFile itself, a NamespaceScope otherwise (§4.4).
func (ae *AssetEmitter) CreateScope(block any, name string, parent *Scope) *Scope {
	_, isSourceFile := block.(*SourceFile)
	return CreateScope(block, name, parent, isSourceFile)
}

// EmitModelProperties runs EmitType over every property of m, in
// declaration order.
func (ae *AssetEmitter) EmitModelProperties(ctx context.Context, m *typegraph.Model) ([]EmitEntity, error) {
	out := make([]EmitEntity, 0, len(m.Properties))
	for _, p := range m.Properties {
		e, err := ae.EmitType(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// EmitModelProperty runs EmitType for a single property.
func (ae *AssetEmitter) EmitModelProperty(ctx context.Context, p *typegraph.ModelProperty) (EmitEntity, error) {
	return ae.EmitType(ctx, p)
}

// EmitOperationParameters runs EmitType over every parameter of o.
func (ae *AssetEmitter) EmitOperationParameters(ctx context.Context, o *typegraph.Operation) ([]EmitEntity, error) {
	out := make([]EmitEntity, 0, len(o.Parameters))
	for _, p := range o.Parameters {
		e, err := ae.EmitType(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// EmitOperationReturnType resolves a reference to o's return type.
func (ae *AssetEmitter) EmitOperationReturnType(ctx context.Context, o *typegraph.Operation) (*Placeholder, error) {
	if o.ReturnType == nil {
		return Resolved(""), nil
	}
	return ae.EmitTypeReference(ctx, o.ReturnType)
}

// EmitInterfaceOperations runs EmitType over every operation of i.
func (ae *AssetEmitter) EmitInterfaceOperations(ctx context.Context, i *typegraph.Interface) ([]EmitEntity, error) {
	out := make([]EmitEntity, 0, len(i.Operations))
	for _, o := range i.Operations {
		e, err := ae.EmitType(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// EmitInterfaceOperation runs EmitType for a single interface-nested operation.
func (ae *AssetEmitter) EmitInterfaceOperation(ctx context.Context, o *typegraph.Operation) (EmitEntity, error) {
	return ae.EmitType(ctx, o)
}

// EmitEnumMembers runs EmitType over every member of e.
func (ae *AssetEmitter) EmitEnumMembers(ctx context.Context, e *typegraph.Enum) ([]EmitEntity, error) {
	out := make([]EmitEntity, 0, len(e.Members))
	for _, m := range e.Members {
		ent, err := ae.EmitType(ctx, m)
		if err != nil {
			return nil, err
		}
		out = append(out, ent)
	}
	return out, nil
}

// EmitUnionVariants runs EmitType over every variant of u.
func (ae *AssetEmitter) EmitUnionVariants(ctx context.Context, u *typegraph.Union) ([]EmitEntity, error) {
	out := make([]EmitEntity, 0, len(u.Variants))
	for _, v := range u.Variants {
		e, err := ae.EmitType(ctx, v)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// EmitTupleLiteralValues resolves references to every element of t.
func (ae *AssetEmitter) EmitTupleLiteralValues(ctx context.Context, t *typegraph.Tuple) ([]*Placeholder, error) {
	out := make([]*Placeholder, 0, len(t.Elements))
	for _, el := range t.Elements {
		p, err := ae.EmitTypeReference(ctx, el)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
