// Package scopegraph implements the output-side scope forest (§4.4):
// source-file scopes and namespace scopes, their parent/children links, and
// the scope-diff (§4.7/GLOSSARY) used to compute relative references.
package scopegraph

// Kind distinguishes a source-file scope from a namespace scope.
type Kind int

const (
	KindSourceFile Kind = iota
	KindNamespace
)

// Scope is a node in the output hierarchy. Declarations is append-only
// during traversal (§3's invariant); Block is the opaque user-facing value
// (a *SourceFile or a namespace marker) the caller associates with it.
type Scope struct {
	Kind         Kind
	Block        any
	Name         string
	Parent       *Scope
	Children     []*Scope
	Declarations []any
}

// NewSourceFileScope allocates a root scope of kind SourceFile owning block.
func NewSourceFileScope(block any) *Scope {
	return &Scope{Kind: KindSourceFile, Block: block}
}

// NewChild creates a scope under parent. Per §4.4, the kind is NamespaceScope
// unless isSourceFile is set (block is itself a SourceFile), in which case it
// is a SourceFileScope; either way parent's Children gains the new scope.
func NewChild(block any, name string, parent *Scope, isSourceFile bool) *Scope {
	kind := KindNamespace
	if isSourceFile {
		kind = KindSourceFile
	}
	s := &Scope{Kind: kind, Block: block, Name: name, Parent: parent}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Append records decl as owned by s, in dispatcher-completion order.
func (s *Scope) Append(decl any) {
	s.Declarations = append(s.Declarations, decl)
}

// Chain returns the path from the forest root down to s, inclusive.
func (s *Scope) Chain() []*Scope {
	if s == nil {
		return nil
	}
	var chain []*Scope
	for cur := s; cur != nil; cur = cur.Parent {
		chain = append([]*Scope{cur}, chain...)
	}
	return chain
}

// Diff splits the chains of a and b at their first divergence: pathUp is the
// portion of a's chain strictly below the common ancestor (innermost to
// outermost, i.e. the order a caller walks "up" from a), pathDown is the
// portion of b's chain strictly below the common ancestor (outermost to
// innermost), and common is the last shared scope (GLOSSARY "Scope diff").
func Diff(a, b *Scope) (pathUp []*Scope, pathDown []*Scope, common *Scope) {
	chainA := a.Chain()
	chainB := b.Chain()

	i := 0
	for i < len(chainA) && i < len(chainB) && chainA[i] == chainB[i] {
		i++
	}
	if i == 0 {
		// No shared ancestor at all; both chains are their own path.
		return reverse(chainA), chainB, nil
	}
	common = chainA[i-1]
	pathUp = reverse(chainA[i:])
	pathDown = chainB[i:]
	return pathUp, pathDown, common
}

func reverse(scopes []*Scope) []*Scope {
	out := make([]*Scope, len(scopes))
	for i, s := range scopes {
		out[len(scopes)-1-i] = s
	}
	return out
}
