package emitcore

import "context"

// programContextHook is implemented by a user emitter that supplies a
// program-level context map. EmitProgram calls ProgramContext once per call
// and passes the result only to the root namespace's own context fold, as
// its incoming reference context; that happens only when EmitGlobalNamespace
// is set. The map is not the starting state of any other fold: every other
// namespace and declaration folds from the empty context.
type programContextHook interface {
	ProgramContext(ctx context.Context, program *Program) (map[string]any, error)
}

// applyProgramContext calls ProgramContext if emitter implements it,
// returning (nil, nil) otherwise so callers can merge a possibly-empty map
// unconditionally.
func applyProgramContext(ctx context.Context, emitter any, program *Program) (map[string]any, error) {
	if h, ok := emitter.(programContextHook); ok {
		return h.ProgramContext(ctx, program)
	}
	return nil, nil
}

// sourceFileHook is implemented by user emitters that need to know when a
// source file is about to be written, to finalize any file-scoped state
// (import lists, trailing boilerplate) before WriteOutput reads SourceFile.
type sourceFileHook interface {
	SourceFile(ctx context.Context, sf *SourceFile) (*Placeholder, error)
}

// applySourceFile calls SourceFile if emitter implements it. ok reports
// whether the hook was present at all, since without a SourceFile method the
// output writer falls back to renderScopeBody.
func applySourceFile(ctx context.Context, emitter any, sf *SourceFile) (*Placeholder, bool, error) {
	h, ok := emitter.(sourceFileHook)
	if !ok {
		return nil, false, nil
	}
	p, err := h.SourceFile(ctx, sf)
	return p, true, err
}
