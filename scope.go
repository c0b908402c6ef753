package emitcore

import "github.com/cadl-tools/emitcore/internal/scopegraph"

// scopeKind mirrors internal/scopegraph.Kind. Exported as ScopeKind so
// generated-against code and user emitters can branch on it without
// depending on an internal package.
type scopeKind = scopegraph.Kind

// ScopeKind distinguishes a source-file scope from a namespace scope.
type ScopeKind = scopeKind

const (
	ScopeKindSourceFile ScopeKind = scopegraph.KindSourceFile
	ScopeKindNamespace  ScopeKind = scopegraph.KindNamespace
)

// Scope wraps the internal scope-forest node exposed to user emitters:
// either a SourceFile's root scope or a namespace nested within one.
type Scope struct {
	inner *scopegraph.Scope
}

// SourceFile is the Block a root Scope of kind ScopeKindSourceFile carries:
// the user emitter's own representation of one output file (its AST, a
// string builder, whatever shape that emitter's code generation wants).
type SourceFile struct {
	Path    string
	Program *Program
	Meta    any // user-emitter-defined payload, e.g. an import table
}

// CreateSourceFile allocates a root scope owning a new SourceFile at path.
func CreateSourceFile(program *Program, path string, meta any) (*SourceFile, *Scope) {
	sf := &SourceFile{Path: path, Program: program, Meta: meta}
	return sf, &Scope{inner: scopegraph.NewSourceFileScope(sf)}
}

// CreateScope allocates a namespace-kind child scope of parent, named name,
// carrying block as its opaque Block value (typically a namespace marker
// the user emitter constructs). isSourceFile should be true only when block
// is itself a *SourceFile, matching §4.4's kind-selection rule.
func CreateScope(block any, name string, parent *Scope, isSourceFile bool) *Scope {
	var parentInner *scopegraph.Scope
	if parent != nil {
		parentInner = parent.inner
	}
	return &Scope{inner: scopegraph.NewChild(block, name, parentInner, isSourceFile)}
}

// Kind reports whether s is a source-file or namespace scope.
func (s *Scope) Kind() ScopeKind { return s.inner.Kind }

// Name is the scope's namespace name, empty for source-file scopes.
func (s *Scope) Name() string { return s.inner.Name }

// Block returns the opaque value this scope was created with.
func (s *Scope) Block() any { return s.inner.Block }

// Parent returns the enclosing scope, or nil at the forest root.
func (s *Scope) Parent() *Scope {
	if s.inner.Parent == nil {
		return nil
	}
	return &Scope{inner: s.inner.Parent}
}

// SourceFile returns the *SourceFile this scope (or its nearest ancestor)
// belongs to, or nil if no ancestor is a source-file scope.
func (s *Scope) SourceFile() *SourceFile {
	for cur := s.inner; cur != nil; cur = cur.Parent {
		if cur.Kind == scopegraph.KindSourceFile {
			if sf, ok := cur.Block.(*SourceFile); ok {
				return sf
			}
			return nil
		}
	}
	return nil
}

// Children returns s's direct child scopes, in creation order.
func (s *Scope) Children() []*Scope { return wrapScopes(s.inner.Children) }

// Append records decl as owned by s, in dispatcher-completion order — the
// order EmitProgram's output writer later walks when rendering a file.
func (s *Scope) Append(decl any) { s.inner.Append(decl) }

// Declarations returns everything Append has recorded on s, in order.
func (s *Scope) Declarations() []any { return s.inner.Declarations }

// ScopeDiff splits a's and b's chains at their first divergence: PathUp is
// the portion of a's chain strictly below the common ancestor (innermost to
// outermost), PathDown is the portion of b's chain strictly below the common
// ancestor (outermost to innermost), and Common is the last shared scope, or
// nil when a and b share no ancestor (§4.7/GLOSSARY "Scope diff").
type ScopeDiff struct {
	PathUp   []*Scope
	PathDown []*Scope
	Common   *Scope
}

// DiffScopes computes the relative path between two scopes, used to decide
// how many levels of namespace qualification a cross-scope reference needs.
func DiffScopes(a, b *Scope) ScopeDiff {
	up, down, common := scopegraph.Diff(a.inner, b.inner)
	d := ScopeDiff{
		PathUp:   wrapScopes(up),
		PathDown: wrapScopes(down),
	}
	if common != nil {
		d.Common = &Scope{inner: common}
	}
	return d
}

func wrapScopes(inner []*scopegraph.Scope) []*Scope {
	out := make([]*Scope, len(inner))
	for i, s := range inner {
		out[i] = &Scope{inner: s}
	}
	return out
}
