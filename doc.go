// Package emitcore provides:
//
//   - A type-kind -> operation-key dispatch table and a memoized invocation
//     engine for turning a type graph into target-language source text
//     (AssetEmitter.EmitType / EmitTypeReference).
//   - Placeholder, StringBuilder, ObjectBuilder and ArrayBuilder for
//     assembling output around forward/circular references that resolve
//     later in the same traversal.
//   - A lexical/reference context engine that folds enclosing-declaration
//     state down to each emitted node (AssetEmitter.GetContext).
//   - A scope forest (source files and namespaces) plus scope-diff, used to
//     compute relative references across source files.
//   - A stable error model via EmitError/ErrorKind.
//
// Design policy:
//   - Keep only the public surface in the root package; put engine
//     internals under internal/.
//   - Operation dispatch on the type graph uses ordinary Go interfaces
//     (BaseEmitter, embeddable); context-method lookup
//     (<opKey>Context/<opKey>ReferenceContext) uses reflection by
//     construction, since which method exists varies per user emitter and
//     per operation key rather than being fixed at compile time.
//
// Typical usage:
//
//	program := emitcore.NewProgram(root)
//	ctx := emitcore.CreateEmitterContext(program, emitcore.WithHost(host))
//	ae := ctx.CreateAssetEmitter(func(ae *emitcore.AssetEmitter) emitcore.UserEmitter {
//		return &myEmitter{BaseEmitter: emitcore.BaseEmitter{}, ae: ae}
//	})
//	ae.EmitProgram(context.Background(), emitcore.EmitProgramOptions{})
//	ae.WriteOutput(context.Background())
package emitcore
