package emitcore

import (
	"context"

	"github.com/cadl-tools/emitcore/internal/typegraph"
)

// Each *Emitter interface below is the narrow contract for exactly one
// operation key (§3). A user emitter implements whichever subset its target
// language needs; dispatch.go checks method presence at the call site and
// raises ErrMissingOperation for the rest. Unlike <opKey>Context/
// <opKey>ReferenceContext (reflect_utils.go), these are ordinary Go
// interfaces: the set of operation keys is fixed by typegraph.OpKey, so
// virtual dispatch is the idiomatic choice here.

type ModelScalarEmitter interface {
	ModelScalar(ctx context.Context, m *typegraph.Model) (EmitEntity, error)
}

type ModelLiteralEmitter interface {
	ModelLiteral(ctx context.Context, m *typegraph.Model) (EmitEntity, error)
}

type ModelDeclarationEmitter interface {
	ModelDeclaration(ctx context.Context, m *typegraph.Model) (EmitEntity, error)
}

type ModelInstantiationEmitter interface {
	ModelInstantiation(ctx context.Context, m *typegraph.Model) (EmitEntity, error)
}

type ModelPropertyLiteralEmitter interface {
	ModelPropertyLiteral(ctx context.Context, p *typegraph.ModelProperty) (EmitEntity, error)
}

type ModelPropertyReferenceEmitter interface {
	ModelPropertyReference(ctx context.Context, p *typegraph.ModelProperty) (EmitEntity, error)
}

type UnionLiteralEmitter interface {
	UnionLiteral(ctx context.Context, u *typegraph.Union) (EmitEntity, error)
}

type UnionDeclarationEmitter interface {
	UnionDeclaration(ctx context.Context, u *typegraph.Union) (EmitEntity, error)
}

type UnionInstantiationEmitter interface {
	UnionInstantiation(ctx context.Context, u *typegraph.Union) (EmitEntity, error)
}

type UnionVariantEmitter interface {
	UnionVariant(ctx context.Context, v *typegraph.UnionVariant) (EmitEntity, error)
}

type OperationDeclarationEmitter interface {
	OperationDeclaration(ctx context.Context, o *typegraph.Operation) (EmitEntity, error)
}

type InterfaceOperationDeclarationEmitter interface {
	InterfaceOperationDeclaration(ctx context.Context, o *typegraph.Operation) (EmitEntity, error)
}

type InterfaceDeclarationEmitter interface {
	InterfaceDeclaration(ctx context.Context, i *typegraph.Interface) (EmitEntity, error)
}

type EnumDeclarationEmitter interface {
	EnumDeclaration(ctx context.Context, e *typegraph.Enum) (EmitEntity, error)
}

type EnumMemberEmitter interface {
	EnumMember(ctx context.Context, m *typegraph.EnumMember) (EmitEntity, error)
}

type TupleLiteralEmitter interface {
	TupleLiteral(ctx context.Context, t *typegraph.Tuple) (EmitEntity, error)
}

type NamespaceEmitter interface {
	Namespace(ctx context.Context, n *typegraph.Namespace) (EmitEntity, error)
}

type BooleanLiteralEmitter interface {
	BooleanLiteral(ctx context.Context, l *typegraph.BooleanLiteral) (EmitEntity, error)
}

type StringLiteralEmitter interface {
	StringLiteral(ctx context.Context, l *typegraph.StringLiteral) (EmitEntity, error)
}

type NumericLiteralEmitter interface {
	NumericLiteral(ctx context.Context, l *typegraph.NumericLiteral) (EmitEntity, error)
}

// ReferenceEmitter renders a reference to a Declaration from another point
// in the scope tree (§4.7 step 4, §6). decl carries the declaration's name
// and home scope; diff is the path from the reference site up to the common
// ancestor and back down to decl's scope (scope.go's ScopeDiff). A target
// language with no notion of namespaces can ignore diff and return decl's
// bare name; one with imports can use diff.PathDown to emit an import and
// return the bare name; one with nested modules can render diff as a
// qualified path.
type ReferenceEmitter interface {
	Reference(ctx context.Context, decl EmitEntity, diff ScopeDiff) (EmitEntity, error)
}

// BaseEmitter supplies a reasonable default for every operation key so a
// user emitter can embed it and override only the operations its target
// language actually needs (§6). The defaults pass literals and scalars
// through as raw code and treat unimplemented structural operations as
// NoEmit, rather than failing — a user emitter overriding ModelDeclaration
// but not, say, TupleLiteral, gets empty output for tuples instead of a
// dispatcher error.
type BaseEmitter struct{}

func (BaseEmitter) ModelScalar(ctx context.Context, m *typegraph.Model) (EmitEntity, error) {
	return RawCode(Resolved(m.IntrinsicName)), nil
}

func (BaseEmitter) ModelLiteral(ctx context.Context, m *typegraph.Model) (EmitEntity, error) {
	return NoEmit(), nil
}

func (BaseEmitter) ModelDeclaration(ctx context.Context, m *typegraph.Model) (EmitEntity, error) {
	return NoEmit(), nil
}

func (BaseEmitter) ModelInstantiation(ctx context.Context, m *typegraph.Model) (EmitEntity, error) {
	return NoEmit(), nil
}

func (BaseEmitter) ModelPropertyLiteral(ctx context.Context, p *typegraph.ModelProperty) (EmitEntity, error) {
	return RawCode(Resolved(p.Name)), nil
}

func (BaseEmitter) ModelPropertyReference(ctx context.Context, p *typegraph.ModelProperty) (EmitEntity, error) {
	return RawCode(Resolved(p.Name)), nil
}

func (BaseEmitter) UnionLiteral(ctx context.Context, u *typegraph.Union) (EmitEntity, error) {
	return NoEmit(), nil
}

func (BaseEmitter) UnionDeclaration(ctx context.Context, u *typegraph.Union) (EmitEntity, error) {
	return NoEmit(), nil
}

func (BaseEmitter) UnionInstantiation(ctx context.Context, u *typegraph.Union) (EmitEntity, error) {
	return NoEmit(), nil
}

func (BaseEmitter) UnionVariant(ctx context.Context, v *typegraph.UnionVariant) (EmitEntity, error) {
	return RawCode(Resolved(v.Name)), nil
}

func (BaseEmitter) OperationDeclaration(ctx context.Context, o *typegraph.Operation) (EmitEntity, error) {
	return NoEmit(), nil
}

func (BaseEmitter) InterfaceOperationDeclaration(ctx context.Context, o *typegraph.Operation) (EmitEntity, error) {
	return NoEmit(), nil
}

func (BaseEmitter) InterfaceDeclaration(ctx context.Context, i *typegraph.Interface) (EmitEntity, error) {
	return NoEmit(), nil
}

func (BaseEmitter) EnumDeclaration(ctx context.Context, e *typegraph.Enum) (EmitEntity, error) {
	return NoEmit(), nil
}

func (BaseEmitter) EnumMember(ctx context.Context, m *typegraph.EnumMember) (EmitEntity, error) {
	return RawCode(Resolved(m.Name)), nil
}

func (BaseEmitter) TupleLiteral(ctx context.Context, t *typegraph.Tuple) (EmitEntity, error) {
	return NoEmit(), nil
}

func (BaseEmitter) Namespace(ctx context.Context, n *typegraph.Namespace) (EmitEntity, error) {
	return NoEmit(), nil
}

func (BaseEmitter) BooleanLiteral(ctx context.Context, l *typegraph.BooleanLiteral) (EmitEntity, error) {
	return RawCode(Resolved(l.Value)), nil
}

func (BaseEmitter) StringLiteral(ctx context.Context, l *typegraph.StringLiteral) (EmitEntity, error) {
	return RawCode(Resolved(l.Value)), nil
}

func (BaseEmitter) NumericLiteral(ctx context.Context, l *typegraph.NumericLiteral) (EmitEntity, error) {
	return RawCode(Resolved(l.Value)), nil
}

// Reference qualifies decl's name with whatever namespace segments diff says
// separate the reference site from decl's scope. Target languages that need
// an import statement or a different qualification scheme override this.
func (BaseEmitter) Reference(ctx context.Context, decl EmitEntity, diff ScopeDiff) (EmitEntity, error) {
	return RawCode(Resolved(qualifyName(diff, decl.Name))), nil
}
