// Package ctxfold implements the context engine's enclosure-stack fold
// (§4.5): given a starting state and an ordered list of enclosure entries,
// it calls back into caller-supplied lexical/reference producers for each
// entry, right-biased-merges their contributions into a new state, and
// memoizes the fold per (entry, input state) pair.
package ctxfold

import (
	"github.com/cadl-tools/emitcore/internal/intern"
	"github.com/cadl-tools/emitcore/internal/keyedmap"
)

// State is the pair of lexical/reference maps threaded through traversal.
// Both halves are canonicalized by Engine so that two states compare equal
// iff their keys and values compare equal (identity then suffices for the
// memo key in §3).
type State struct {
	Lexical   map[string]any
	Reference map[string]any
}

// Step is one entry of the enclosure stack being folded. Lexical is always
// invoked; Reference is nil when the operation key is exempt (§4.5).
type Step struct {
	Entry     any
	Lexical   func() (map[string]any, error)
	Reference func() (map[string]any, error)
}

// Engine owns the interning pools and the knownContexts memo. The dispatcher
// drives Engine.Fold exclusively from the single logical worker (§5), so no
// additional locking is needed beyond what the pools themselves provide.
type Engine struct {
	lexPool *intern.MapPool
	refPool *intern.MapPool
	states  map[string]*State
	memo    *keyedmap.Map[*State]
}

// NewEngine constructs a fold engine with its own interning pools, seeded
// with the shared empty-map sentinel for both halves.
func NewEngine() *Engine {
	return &Engine{
		lexPool: intern.NewMapPool(),
		refPool: intern.NewMapPool(),
		states:  make(map[string]*State),
		memo:    keyedmap.New[*State](),
	}
}

// Empty returns the canonical zero-value state (both halves empty).
func (e *Engine) Empty() *State {
	return e.intern(nil, nil)
}

func (e *Engine) intern(lex, ref map[string]any) *State {
	lexCanon := e.lexPool.Intern(lex)
	refCanon := e.refPool.Intern(ref)
	key := keyedmap.BuildKey(mapIdentity(lexCanon), mapIdentity(refCanon))
	if s, ok := e.states[key]; ok {
		return s
	}
	s := &State{Lexical: lexCanon, Reference: refCanon}
	e.states[key] = s
	return s
}

// mapIdentity returns BuildKey's %v rendering of a canonical map, i.e. its
// key-sorted contents, not its header pointer; it is used only to key the
// State-level interning table.
func mapIdentity(m map[string]any) string {
	return keyedmap.BuildKey(m)
}

// Fold walks steps in order starting from start, right-biased-merging each
// entry's lexical/reference contribution, memoizing per (entry, input
// state). When incomingRef is non-empty it is merged into the reference
// half at the final step only, then implicitly cleared for anything beyond
// (callers fold one reference resolution at a time, so there is no "beyond"
// within a single Fold call) — this realizes the "incoming reference
// context ... merged ... and then cleared" rule from §4.5.
func (e *Engine) Fold(steps []Step, start *State, incomingRef map[string]any) (*State, error) {
	if start == nil {
		start = e.Empty()
	}
	cur := start
	for i, step := range steps {
		final := i == len(steps)-1 && len(incomingRef) > 0

		// At every step but the final one (or the final step with no
		// incoming reference context), knownContexts is keyed purely by
		// (entry, inputState) per §3. At the final step of a reference
		// fold, incomingRef makes the outcome depend on more than
		// (entry, inputState) alone, so it joins the key too — canonicalized
		// through refPool first so two structurally-equal incoming contexts
		// (e.g. the same {"ref": true} captured from two different
		// referring declarations) collide onto one cache entry rather than
		// re-invoking the target's Reference producer once per referrer.
		var memoKey string
		if final {
			memoKey = keyedmap.BuildKey(step.Entry, cur, mapIdentity(e.refPool.Intern(incomingRef)))
		} else {
			memoKey = keyedmap.BuildKey(step.Entry, cur)
		}
		if cached, ok := e.memo.Get(memoKey); ok {
			cur = cached
			continue
		}
		lex, err := step.Lexical()
		if err != nil {
			return nil, err
		}
		var ref map[string]any
		if step.Reference != nil {
			ref, err = step.Reference()
			if err != nil {
				return nil, err
			}
		}
		newLex := mergeRightBiased(cur.Lexical, lex)
		newRef := mergeRightBiased(cur.Reference, ref)
		if final {
			newRef = mergeRightBiased(newRef, incomingRef)
		}
		next := e.intern(newLex, newRef)
		e.memo.Set(memoKey, next)
		cur = next
	}
	return cur, nil
}

// mergeRightBiased returns a new map containing base's entries overlaid by
// add's entries (add wins on key collision). Either argument may be nil.
func mergeRightBiased(base, add map[string]any) map[string]any {
	if len(base) == 0 && len(add) == 0 {
		return nil
	}
	out := make(map[string]any, len(base)+len(add))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range add {
		out[k] = v
	}
	return out
}
