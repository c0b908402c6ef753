package emitcore

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WriteOutput renders every source file created during EmitProgram (via
// CreateSourceFile) and writes it to the configured Host, in creation
// order. A user emitter implementing sourceFileHook gets a chance to
// finalize each file's own Placeholder (e.g. assembling an import block)
// instead of the default rendering; an emitter that skips the hook gets
// renderScopeBody's concatenation of whatever declarations were appended to
// the file's root scope during the walk.
func (ae *AssetEmitter) WriteOutput(ctx context.Context) error {
	if ae.ctx.parallelOutput {
		return ae.writeOutputParallel(ctx)
	}
	for _, sf := range ae.sourceFiles {
		if err := ae.writeOne(ctx, sf); err != nil {
			return err
		}
	}
	return nil
}

// writeOutputParallel mirrors WriteOutput's per-file work but fans it out
// over an errgroup bounded by EmitterContext.parallelLimit, for callers that
// opted in via WithParallelOutput. File write order is no longer meaningful
// once parallelized — each file is independent once its own Placeholder
// resolves.
func (ae *AssetEmitter) writeOutputParallel(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	limit := ae.ctx.parallelLimit
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, sf := range ae.sourceFiles {
		sf := sf
		g.Go(func() error {
			return ae.writeOne(gctx, sf)
		})
	}
	return g.Wait()
}

func (ae *AssetEmitter) writeOne(ctx context.Context, sf *SourceFile) error {
	placeholder, hasHook, err := applySourceFile(ctx, ae.emitter, sf)
	if err != nil {
		return err
	}
	if !hasHook {
		scope := ae.scopes[sf]
		placeholder = renderScopeBody(scope)
	}
	contents, err := placeholder.MustString()
	if err != nil {
		return err
	}
	return ae.ctx.host.WriteFile(sf.Path, []byte(contents))
}

// renderScopeBody concatenates a source file's root scope's declaration
// code, in declaration order, as the fallback body when no sourceFileHook
// assembled one explicitly.
func renderScopeBody(scope *Scope) *Placeholder {
	if scope == nil {
		return Resolved("")
	}
	sb := &StringBuilder{}
	for _, decl := range scope.Declarations() {
		if ent, ok := decl.(EmitEntity); ok {
			sb.PushPlaceholder(ent.ValuePlaceholder())
			sb.Push("\n")
		}
	}
	return sb.Build()
}
