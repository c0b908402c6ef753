package emitcore

import (
	"context"
	"strings"

	"github.com/cadl-tools/emitcore/internal/keyedmap"
	"github.com/cadl-tools/emitcore/internal/typegraph"
	"go.uber.org/zap"
)

// dispatcher holds the per-(opKey,node,context) memo table and the
// registered waiters for entities still being computed, i.e. the machinery
// behind invokeTypeEmitter/emitTypeReference's circular-reference handling
// (§4.6/§4.7). One dispatcher belongs to exactly one AssetEmitter.
type dispatcher struct {
	memo    *keyedmap.Map[EmitEntity]
	waiting *keyedmap.ListMap[func(EmitEntity)]
}

func newDispatcher() *dispatcher {
	return &dispatcher{
		memo:    keyedmap.New[EmitEntity](),
		waiting: keyedmap.NewListMap[func(EmitEntity)](),
	}
}

// contextFor folds node's enclosing-declaration chain through the context
// engine, merging incomingRef at the final step (§4.5). node's own entry is
// included, so a declaration's <opKey>Context contributes to its own
// context, not only its descendants'.
func (ae *AssetEmitter) contextFor(ctx context.Context, node typegraph.Node, incomingRef map[string]any) (*ContextState, error) {
	chain := enclosingChain(node)
	steps := make([]ContextStep, 0, len(chain))
	for _, n := range chain {
		n := n
		opKey, err := typegraph.ForNode(n)
		if err != nil {
			return nil, wrapUnsupportedKind(err)
		}
		step := ContextStep{
			Entry: n,
			Lexical: func() (map[string]any, error) {
				out, found, err := invokeContextMethod(ae.emitter, string(opKey), suffixContext, ctx, n)
				if err != nil {
					return nil, err
				}
				if !found {
					return nil, NewEmitError(ErrMissingContextMethod, string(opKey), contextMethodName(string(opKey), suffixContext)+" is not implemented", nil)
				}
				return out, nil
			},
		}
		if !typegraph.ExemptFromReferenceContext(opKey) {
			step.Reference = func() (map[string]any, error) {
				out, found, err := invokeContextMethod(ae.emitter, string(opKey), suffixReferenceContext, ctx, n)
				if err != nil {
					return nil, err
				}
				if !found {
					return nil, NewEmitError(ErrMissingContextMethod, string(opKey), contextMethodName(string(opKey), suffixReferenceContext)+" is not implemented", nil)
				}
				return out, nil
			}
		}
		steps = append(steps, step)
	}
	return ae.ctx.engine.Fold(steps, ae.ctx.engine.EmptyContext(), incomingRef)
}

// parentOf returns the immediate structural parent of n for context-folding
// purposes when n is not itself a declaration: the value n's own field
// points at, not a chain-walk. A declaration's parent is never consulted by
// enclosingChain (it resets the stack via declarationNamespace instead), so
// the *Operation case here only ever matters if parentOf is called directly.
func parentOf(n typegraph.Node) (typegraph.Node, bool) {
	switch t := n.(type) {
	case *typegraph.Namespace:
		if t.Parent == nil {
			return nil, false
		}
		return t.Parent, true
	case *typegraph.Model:
		if t.Namespace == nil {
			return nil, false
		}
		return t.Namespace, true
	case *typegraph.ModelProperty:
		if t.Model == nil {
			return nil, false
		}
		return t.Model, true
	case *typegraph.Operation:
		if t.Namespace == nil {
			return nil, false
		}
		return t.Namespace, true
	case *typegraph.Interface:
		if t.Namespace == nil {
			return nil, false
		}
		return t.Namespace, true
	case *typegraph.Union:
		if t.Namespace == nil {
			return nil, false
		}
		return t.Namespace, true
	case *typegraph.UnionVariant:
		if t.Union == nil {
			return nil, false
		}
		return t.Union, true
	case *typegraph.Enum:
		if t.Namespace == nil {
			return nil, false
		}
		return t.Namespace, true
	case *typegraph.EnumMember:
		if t.Enum == nil {
			return nil, false
		}
		return t.Enum, true
	default:
		return nil, false
	}
}

// declarationNamespace returns the Namespace whose NamespaceChain feeds
// declarationChain's enclosure reset for n, or nil if n carries none (the
// root namespace has no parent). A *Namespace's own containing namespace is
// its Parent, not itself; every other declaration kind carries a Namespace
// field directly, bypassing any non-namespace declaration it is nested in
// (an Interface, for an Operation) per §4.5's "containingNamespace*, decl".
func declarationNamespace(n typegraph.Node) *typegraph.Namespace {
	switch t := n.(type) {
	case *typegraph.Namespace:
		return t.Parent
	case *typegraph.Model:
		return t.Namespace
	case *typegraph.Operation:
		return t.Namespace
	case *typegraph.Interface:
		return t.Namespace
	case *typegraph.Enum:
		return t.Namespace
	case *typegraph.Union:
		return t.Namespace
	default:
		return nil
	}
}

// declarationChain resets the enclosure stack for a declaration type to
// `[containingNamespace*, decl]` per §4.5: the non-empty enclosing
// namespaces from outermost to innermost, then n itself. Any intermediate
// non-namespace declaration n is nested in (e.g. the Interface an Operation
// belongs to) is deliberately excluded, matching the reset semantics rather
// than a physical-nesting walk.
func declarationChain(n typegraph.Node) []typegraph.Node {
	var chain []typegraph.Node
	if ns := declarationNamespace(n); ns != nil {
		for _, s := range ns.NamespaceChain() {
			chain = append(chain, s)
		}
	}
	return append(chain, n)
}

// enclosingChain returns the enclosure stack the context engine folds for n,
// per §4.5: a declaration resets to declarationChain(n); anything else
// (anonymous/structural/literal) extends whatever chain its structural
// parent resolves to with n appended, so literals and properties inherit
// the context of whichever declaration is currently being emitted.
func enclosingChain(n typegraph.Node) []typegraph.Node {
	if typegraph.IsDeclaration(n) {
		return declarationChain(n)
	}
	parent, ok := parentOf(n)
	if !ok {
		return []typegraph.Node{n}
	}
	return append(enclosingChain(parent), n)
}

// invokeTypeEmitter is the memoized entry point for running a node's
// operation exactly once per (opKey, node, context) (§4.6). A CircularEmit
// marker is stored before the operation runs so a synchronous re-entrant
// call for the same key is detected as a cycle by emitTypeReference rather
// than recursing forever; waiters registered while the marker was in place
// are drained once the real EmitEntity is stored.
func (ae *AssetEmitter) invokeTypeEmitter(ctx context.Context, node typegraph.Node, state *ContextState) (EmitEntity, error) {
	opKey, err := typegraph.ForNode(node)
	if err != nil {
		return EmitEntity{}, wrapUnsupportedKind(err)
	}
	return ae.invokeTypeEmitterOp(ctx, node, state, opKey)
}

// invokeTypeEmitterOp is invokeTypeEmitter with the operation key supplied by
// the caller instead of derived from node's own kind. emitTypeReference needs
// this: referencing a ModelProperty dispatches to a different operation
// (modelPropertyReference) than emitting the property itself
// (modelPropertyLiteral) does, even though both act on the same node (§4.7
// step 1).
func (ae *AssetEmitter) invokeTypeEmitterOp(ctx context.Context, node typegraph.Node, state *ContextState, opKey typegraph.OpKey) (EmitEntity, error) {
	key := keyedmap.BuildKey(string(opKey), node, state)

	if cached, ok := ae.disp.memo.Get(key); ok && !cached.IsCircular() {
		return cached, nil
	}

	ae.disp.memo.Set(key, circularEmit())
	ae.ctx.tracer.Debug("invoke", zap.String("runID", ae.ctx.runID), zap.String("opKey", string(opKey)))

	entity, err := ae.callOperation(withCurrentState(ctx, state), opKey, node)
	if err != nil {
		ae.disp.memo.Delete(key)
		return EmitEntity{}, err
	}
	if entity.IsDeclaration() {
		if entity.Scope == nil {
			ae.disp.memo.Delete(key)
			return EmitEntity{}, NewEmitError(ErrScopeAbsent, string(opKey), "declaration operation returned a Declaration entity with no Scope; call CreateSourceFile/CreateScope before returning Declaration(...)", nil)
		}
		entity.Scope.Append(entity)
	}

	ae.disp.memo.Set(key, entity)
	for _, waiter := range ae.disp.waiting.Drain(key) {
		waiter(entity)
	}
	return entity, nil
}

// referenceOpKey returns the operation key used to resolve a reference to
// node, overriding typegraph.ForNode's result for *typegraph.ModelProperty
// per §4.7 step 1: a reference to a property dispatches to
// modelPropertyReference, not modelPropertyLiteral, which is reserved for
// rendering the property where it is declared.
func referenceOpKey(node typegraph.Node) (typegraph.OpKey, error) {
	if _, ok := node.(*typegraph.ModelProperty); ok {
		return typegraph.OpModelPropertyReference, nil
	}
	return typegraph.ForNode(node)
}

// emitTypeReference resolves a reference to node as seen from the current
// context, returning a Placeholder for the reference text (a bare name or a
// namespace-qualified one) rather than the referenced declaration's own
// code (§4.7). If node's declaration is still being computed higher up the
// call stack (a circular reference), the returned Placeholder resolves only
// once that computation finishes.
func (ae *AssetEmitter) emitTypeReference(ctx context.Context, node typegraph.Node, state *ContextState) (*Placeholder, error) {
	opKey, err := referenceOpKey(node)
	if err != nil {
		return nil, wrapUnsupportedKind(err)
	}
	key := keyedmap.BuildKey(string(opKey), node, state)

	if cached, ok := ae.disp.memo.Get(key); ok && cached.IsCircular() {
		result := NewPlaceholder()
		ae.disp.waiting.Append(key, func(entity EmitEntity) {
			refPlaceholder, err := ae.referenceText(ctx, entity, node, state)
			if err != nil {
				result.Resolve("")
				return
			}
			refPlaceholder.OnResolve(func(v any) { result.Resolve(v) })
		})
		return result, nil
	}

	entity, err := ae.invokeTypeEmitterOp(ctx, node, state, opKey)
	if err != nil {
		return nil, err
	}
	return ae.referenceText(ctx, entity, node, state)
}

// referenceText renders entity as seen from the reference site's scope (the
// ContextState the calling operation runs under, recovered from ctx; state,
// the referenced type's own folded context, does not affect it): NoEmit resolves
// to the empty string (the extension point an emitter can override by
// implementing noEmitPlaceholderHook), RawCode's own placeholder is used
// verbatim, and a Declaration is handed to the user emitter's Reference
// operation along with the scope diff between the reference site and the
// declaration's home scope, so the emitter decides how a cross-scope
// reference renders, whether as a qualified name, an import plus bare name,
// or a relative path, instead of the framework hardcoding one scheme (§4.7
// step 4/§6, GLOSSARY "Scope diff").
func (ae *AssetEmitter) referenceText(ctx context.Context, entity EmitEntity, node typegraph.Node, state *ContextState) (*Placeholder, error) {
	switch entity.Kind {
	case KindNoEmitEntity:
		if h, ok := ae.emitter.(noEmitPlaceholderHook); ok {
			return Resolved(h.NoEmitPlaceholder(node)), nil
		}
		return Resolved(""), nil
	case KindRawCodeEntity:
		return entity.RawCode, nil
	case KindDeclarationEntity:
		rh, ok := ae.emitter.(ReferenceEmitter)
		if !ok {
			return nil, NewEmitError(ErrMissingOperation, "reference", "user emitter does not implement Reference", nil)
		}
		var diff ScopeDiff
		site, _ := ctx.Value(currentStateKey{}).(*ContextState)
		if refScope := GetContext(site); refScope != nil && entity.Scope != nil {
			diff = DiffScopes(refScope, entity.Scope)
		}
		refEntity, err := rh.Reference(ctx, entity, diff)
		if err != nil {
			return nil, err
		}
		if p := refEntity.ValuePlaceholder(); p != nil {
			return p, nil
		}
		return Resolved(""), nil
	default:
		return Resolved(""), nil
	}
}

// currentStateKey is the context.Context key under which invokeTypeEmitter
// stashes the ContextState an operation is running under, so a nested
// EmitTypeReference call can recover "the current reference context" per
// §4.7 step 2 without the caller having to thread it explicitly.
type currentStateKey struct{}

// withCurrentState attaches state to ctx for the duration of one operation
// invocation.
func withCurrentState(ctx context.Context, state *ContextState) context.Context {
	return context.WithValue(ctx, currentStateKey{}, state)
}

// currentReferenceContext recovers the reference half of the ContextState
// the caller's own operation is running under, or nil outside of one (e.g.
// a call made directly against EmitProgram's own top-level walk).
func currentReferenceContext(ctx context.Context) map[string]any {
	state, _ := ctx.Value(currentStateKey{}).(*ContextState)
	if state == nil {
		return nil
	}
	return state.Reference
}

// noEmitPlaceholderHook lets a user emitter decide what a reference to a
// NoEmit type resolves to (spec open question: what fills a placeholder
// when a reference resolves to NoEmit). Framework default is "".
type noEmitPlaceholderHook interface {
	NoEmitPlaceholder(node typegraph.Node) string
}

// qualifyName prefixes name with the namespace segments in diff.PathDown,
// i.e. the namespaces a reader has to descend through from the common
// ancestor to reach the declaration's own scope.
func qualifyName(diff ScopeDiff, name string) string {
	var prefix []string
	for _, s := range diff.PathDown {
		if s.Kind() == ScopeKindNamespace && s.Name() != "" {
			prefix = append(prefix, s.Name())
		}
	}
	if len(prefix) == 0 {
		return name
	}
	return strings.Join(prefix, ".") + "." + name
}

// callOperation dispatches to the narrow per-opKey interface method on
// ae.emitter, raising ErrMissingOperation when ae.emitter does not
// implement the interface that opKey requires.
func (ae *AssetEmitter) callOperation(ctx context.Context, opKey typegraph.OpKey, node typegraph.Node) (EmitEntity, error) {
	switch opKey {
	case typegraph.OpModelScalar:
		e, ok := ae.emitter.(ModelScalarEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.ModelScalar(ctx, node.(*typegraph.Model))
	case typegraph.OpModelLiteral:
		e, ok := ae.emitter.(ModelLiteralEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.ModelLiteral(ctx, node.(*typegraph.Model))
	case typegraph.OpModelDeclaration:
		e, ok := ae.emitter.(ModelDeclarationEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.ModelDeclaration(ctx, node.(*typegraph.Model))
	case typegraph.OpModelInstantiation:
		e, ok := ae.emitter.(ModelInstantiationEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.ModelInstantiation(ctx, node.(*typegraph.Model))
	case typegraph.OpModelPropertyLiteral:
		e, ok := ae.emitter.(ModelPropertyLiteralEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.ModelPropertyLiteral(ctx, node.(*typegraph.ModelProperty))
	case typegraph.OpModelPropertyReference:
		e, ok := ae.emitter.(ModelPropertyReferenceEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.ModelPropertyReference(ctx, node.(*typegraph.ModelProperty))
	case typegraph.OpUnionLiteral:
		e, ok := ae.emitter.(UnionLiteralEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.UnionLiteral(ctx, node.(*typegraph.Union))
	case typegraph.OpUnionDeclaration:
		e, ok := ae.emitter.(UnionDeclarationEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.UnionDeclaration(ctx, node.(*typegraph.Union))
	case typegraph.OpUnionInstantiation:
		e, ok := ae.emitter.(UnionInstantiationEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.UnionInstantiation(ctx, node.(*typegraph.Union))
	case typegraph.OpUnionVariant:
		e, ok := ae.emitter.(UnionVariantEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.UnionVariant(ctx, node.(*typegraph.UnionVariant))
	case typegraph.OpOperationDeclaration:
		e, ok := ae.emitter.(OperationDeclarationEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.OperationDeclaration(ctx, node.(*typegraph.Operation))
	case typegraph.OpInterfaceOperationDecl:
		e, ok := ae.emitter.(InterfaceOperationDeclarationEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.InterfaceOperationDeclaration(ctx, node.(*typegraph.Operation))
	case typegraph.OpInterfaceDeclaration:
		e, ok := ae.emitter.(InterfaceDeclarationEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.InterfaceDeclaration(ctx, node.(*typegraph.Interface))
	case typegraph.OpEnumDeclaration:
		e, ok := ae.emitter.(EnumDeclarationEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.EnumDeclaration(ctx, node.(*typegraph.Enum))
	case typegraph.OpEnumMember:
		e, ok := ae.emitter.(EnumMemberEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.EnumMember(ctx, node.(*typegraph.EnumMember))
	case typegraph.OpTupleLiteral:
		e, ok := ae.emitter.(TupleLiteralEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.TupleLiteral(ctx, node.(*typegraph.Tuple))
	case typegraph.OpNamespace:
		e, ok := ae.emitter.(NamespaceEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.Namespace(ctx, node.(*typegraph.Namespace))
	case typegraph.OpBooleanLiteral:
		e, ok := ae.emitter.(BooleanLiteralEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.BooleanLiteral(ctx, node.(*typegraph.BooleanLiteral))
	case typegraph.OpStringLiteral:
		e, ok := ae.emitter.(StringLiteralEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.StringLiteral(ctx, node.(*typegraph.StringLiteral))
	case typegraph.OpNumericLiteral:
		e, ok := ae.emitter.(NumericLiteralEmitter)
		if !ok {
			return EmitEntity{}, missingOp(opKey)
		}
		return e.NumericLiteral(ctx, node.(*typegraph.NumericLiteral))
	default:
		return EmitEntity{}, missingOp(opKey)
	}
}

func missingOp(opKey typegraph.OpKey) error {
	return NewEmitError(ErrMissingOperation, string(opKey), "user emitter does not implement this operation key", nil)
}

// wrapUnsupportedKind promotes typegraph.ForNode's unexported sentinel into
// the package's own EmitError so callers outside typegraph still get a
// consistent ErrorKind via errors.Is/AsEmitError.
func wrapUnsupportedKind(err error) error {
	if typegraph.IsUnsupportedKind(err) {
		return NewEmitError(ErrUnsupportedKind, "", "type-graph node's concrete type has no operation-key mapping", err)
	}
	return err
}
