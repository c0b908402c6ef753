package emitcore

import "github.com/cadl-tools/emitcore/internal/ctxfold"

// ContextState is the pair of lexical/reference maps the context engine
// folds down the enclosure stack to every emitted node (§4.5). Two states
// compare equal (as *ContextState, by identity) iff their contents compare
// equal, because Engine canonicalizes every state it produces.
type ContextState = ctxfold.State

// EmptyContext is the canonical zero-value context (both halves empty).
func (eng *ContextEngine) EmptyContext() *ContextState { return eng.fold.Empty() }

// ContextEngine owns the interning pools and per-entry memo table that back
// GetContext. It is a thin exported wrapper over internal/ctxfold so the
// dispatcher (dispatch.go) can drive it without exposing ctxfold itself.
type ContextEngine struct {
	fold *ctxfold.Engine
}

// NewContextEngine constructs an empty context-folding engine.
func NewContextEngine() *ContextEngine {
	return &ContextEngine{fold: ctxfold.NewEngine()}
}

// ContextStep is one entry of the enclosure stack being folded: Entry
// identifies the declaration (used as part of the memo key), Lexical is
// always invoked, Reference is nil when the operation key is exempt (§4.5).
type ContextStep = ctxfold.Step

// Fold walks steps from start, right-biased-merging each entry's
// contribution and memoizing per (entry, input state); see internal/ctxfold
// for the full contract.
func (eng *ContextEngine) Fold(steps []ContextStep, start *ContextState, incomingRef map[string]any) (*ContextState, error) {
	return eng.fold.Fold(steps, start, incomingRef)
}

// GetContext returns the scope a node should be considered "in" for
// reference-resolution purposes: the reference context's scope if present,
// else the lexical context's scope, else nil (§4.5's "context.reference.scope
// ?? context.lexical.scope ?? null").
func GetContext(state *ContextState) *Scope {
	if state == nil {
		return nil
	}
	if v, ok := state.Reference["scope"]; ok {
		if s, ok := v.(*Scope); ok {
			return s
		}
	}
	if v, ok := state.Lexical["scope"]; ok {
		if s, ok := v.(*Scope); ok {
			return s
		}
	}
	return nil
}
