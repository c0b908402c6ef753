package emitcore

import (
	"context"

	"github.com/cadl-tools/emitcore/internal/typegraph"
)

// BaseEmitter's default <opKey>Context/<opKey>ReferenceContext methods:
// every operation key contributes nothing to the fold unless a concrete
// emitter overrides the method for a key it cares about (§4.5, §6's "a
// default base class supplies trivial ... implementations"). These are
// looked up by reflection (reflect_utils.go), not called directly, so a
// concrete emitter overriding e.g. ModelDeclarationContext shadows only
// that one method while every other key still resolves to the default
// below through Go's normal embedded-method promotion.

func (BaseEmitter) ModelScalarContext(ctx context.Context, m *typegraph.Model) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) ModelLiteralContext(ctx context.Context, m *typegraph.Model) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) ModelDeclarationContext(ctx context.Context, m *typegraph.Model) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) ModelDeclarationReferenceContext(ctx context.Context, m *typegraph.Model) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) ModelInstantiationContext(ctx context.Context, m *typegraph.Model) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) ModelInstantiationReferenceContext(ctx context.Context, m *typegraph.Model) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) ModelPropertyLiteralContext(ctx context.Context, p *typegraph.ModelProperty) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) ModelPropertyReferenceContext(ctx context.Context, p *typegraph.ModelProperty) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) ModelPropertyReferenceReferenceContext(ctx context.Context, p *typegraph.ModelProperty) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) UnionLiteralContext(ctx context.Context, u *typegraph.Union) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) UnionDeclarationContext(ctx context.Context, u *typegraph.Union) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) UnionDeclarationReferenceContext(ctx context.Context, u *typegraph.Union) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) UnionInstantiationContext(ctx context.Context, u *typegraph.Union) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) UnionInstantiationReferenceContext(ctx context.Context, u *typegraph.Union) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) UnionVariantContext(ctx context.Context, v *typegraph.UnionVariant) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) OperationDeclarationContext(ctx context.Context, o *typegraph.Operation) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) OperationDeclarationReferenceContext(ctx context.Context, o *typegraph.Operation) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) InterfaceOperationDeclarationContext(ctx context.Context, o *typegraph.Operation) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) InterfaceOperationDeclarationReferenceContext(ctx context.Context, o *typegraph.Operation) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) InterfaceDeclarationContext(ctx context.Context, i *typegraph.Interface) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) InterfaceDeclarationReferenceContext(ctx context.Context, i *typegraph.Interface) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) EnumDeclarationContext(ctx context.Context, e *typegraph.Enum) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) EnumMemberContext(ctx context.Context, m *typegraph.EnumMember) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) TupleLiteralContext(ctx context.Context, t *typegraph.Tuple) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) NamespaceContext(ctx context.Context, n *typegraph.Namespace) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) NamespaceReferenceContext(ctx context.Context, n *typegraph.Namespace) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) BooleanLiteralContext(ctx context.Context, l *typegraph.BooleanLiteral) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) StringLiteralContext(ctx context.Context, l *typegraph.StringLiteral) (map[string]any, error) {
	return nil, nil
}

func (BaseEmitter) NumericLiteralContext(ctx context.Context, l *typegraph.NumericLiteral) (map[string]any, error) {
	return nil, nil
}
