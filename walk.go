package emitcore

import (
	"context"

	"github.com/cadl-tools/emitcore/internal/typegraph"
)

// EmitProgram visits the program's type graph in a fixed order — each
// namespace's child namespaces first, then its models, operations, enums,
// unions and interfaces — skipping template declarations (uninstantiated
// generics) and, unless opted into via EmitProgramOptions, the synthetic
// global namespace and any namespace marked IsBuiltin (§4.9).
func (ae *AssetEmitter) EmitProgram(ctx context.Context, opts EmitProgramOptions) error {
	root := ae.ctx.program.Root
	if root == nil {
		return nil
	}
	programCtx, err := applyProgramContext(ctx, ae.emitter, ae.ctx.program)
	if err != nil {
		return err
	}
	return ae.walkNamespace(ctx, root, opts, programCtx, true)
}

func (ae *AssetEmitter) walkNamespace(ctx context.Context, ns *typegraph.Namespace, opts EmitProgramOptions, incomingRef map[string]any, isRoot bool) error {
	if ns.IsBuiltin && !opts.EmitCompilerBuiltinNamespace {
		return nil
	}
	skipSelf := isRoot && !opts.EmitGlobalNamespace

	if !skipSelf {
		state, err := ae.contextFor(ctx, ns, incomingRef)
		if err != nil {
			return err
		}
		if _, err := ae.invokeTypeEmitter(ctx, ns, state); err != nil {
			return err
		}
	}

	for _, child := range ns.Namespaces {
		if err := ae.walkNamespace(ctx, child, opts, nil, false); err != nil {
			return err
		}
	}
	for _, m := range ns.Models {
		if m.IsTemplateDecl {
			continue
		}
		if err := ae.emitDeclaration(ctx, m); err != nil {
			return err
		}
	}
	for _, o := range ns.Operations {
		if err := ae.emitDeclaration(ctx, o); err != nil {
			return err
		}
	}
	for _, e := range ns.Enums {
		if err := ae.emitDeclaration(ctx, e); err != nil {
			return err
		}
	}
	for _, u := range ns.Unions {
		if u.Name == "" {
			continue
		}
		if err := ae.emitDeclaration(ctx, u); err != nil {
			return err
		}
	}
	for _, i := range ns.Interfaces {
		if err := ae.emitDeclaration(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

// emitDeclaration folds node's own context and invokes its operation.
// Routing a Declaration-kind result to its scope's declaration list happens
// inside invokeTypeEmitterOp itself (§4.6 step 6), not here, so a
// declaration first produced through a reference (a template instantiation
// reached while emitting some other type, per §4.9) is appended exactly the
// same as one the walk visits directly.
func (ae *AssetEmitter) emitDeclaration(ctx context.Context, node typegraph.Node) error {
	state, err := ae.contextFor(ctx, node, nil)
	if err != nil {
		return err
	}
	_, err = ae.invokeTypeEmitter(ctx, node, state)
	return err
}
