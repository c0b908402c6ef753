package emitcore

// EntityKind tags which variant of EmitEntity a given value is.
type EntityKind int

const (
	// KindDeclarationEntity carries a named declaration routed to a scope;
	// references to the owning type resolve to whatever the user emitter's
	// Reference operation renders for it at the reference site, rather than
	// to the declaration's own code.
	KindDeclarationEntity EntityKind = iota
	// KindRawCodeEntity carries inline code with no declaration identity;
	// references embed the code itself.
	KindRawCodeEntity
	// KindNoEmitEntity marks a type that intentionally produces no output
	// (e.g. a type excluded from the target language). References resolve
	// to the user emitter's NoEmitPlaceholder result when it implements one,
	// and to "" otherwise.
	KindNoEmitEntity
	// KindCircularEmitEntity is an internal marker installed by the
	// dispatcher before invoking a user operation, so re-entrant emission
	// of the same (opKey, type, context) triple is detected rather than
	// looping forever.
	KindCircularEmitEntity
)

// EmitEntity is the result of one dispatcher invocation (§4.1). Exactly one
// of the Kind-specific fields is meaningful for a given Kind.
type EmitEntity struct {
	Kind EntityKind

	// Declaration fields (KindDeclarationEntity).
	Name  string
	Scope *Scope
	Code  *Placeholder

	// RawCode fields (KindRawCodeEntity).
	RawCode *Placeholder
}

// Declaration builds a KindDeclarationEntity result, routing code to scope
// under name. code may still be unresolved.
func Declaration(name string, scope *Scope, code *Placeholder) EmitEntity {
	return EmitEntity{Kind: KindDeclarationEntity, Name: name, Scope: scope, Code: code}
}

// RawCode builds a KindRawCodeEntity result; code may still be unresolved.
func RawCode(code *Placeholder) EmitEntity {
	return EmitEntity{Kind: KindRawCodeEntity, RawCode: code}
}

// NoEmit builds a KindNoEmitEntity result.
func NoEmit() EmitEntity { return EmitEntity{Kind: KindNoEmitEntity} }

// circularEmit builds the internal marker the dispatcher installs before a
// user operation runs, so a synchronous re-entrant call on the same key can
// be recognized instead of recursing forever.
func circularEmit() EmitEntity { return EmitEntity{Kind: KindCircularEmitEntity} }

// IsCircular reports whether e is the dispatcher's in-flight marker.
func (e EmitEntity) IsCircular() bool { return e.Kind == KindCircularEmitEntity }

// IsNoEmit reports whether e intentionally produced no output.
func (e EmitEntity) IsNoEmit() bool { return e.Kind == KindNoEmitEntity }

// IsDeclaration reports whether e routed a named declaration to a scope.
func (e EmitEntity) IsDeclaration() bool { return e.Kind == KindDeclarationEntity }

// ValuePlaceholder returns the Placeholder that ultimately carries e's
// resolved code, regardless of whether e is a declaration or raw code. It
// returns nil for NoEmit/CircularEmit, which have no code of their own.
func (e EmitEntity) ValuePlaceholder() *Placeholder {
	switch e.Kind {
	case KindDeclarationEntity:
		return e.Code
	case KindRawCodeEntity:
		return e.RawCode
	default:
		return nil
	}
}
