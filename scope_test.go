package emitcore

import "testing"

func TestCreateSourceFile_RootScopeIsSourceFileKind(t *testing.T) {
	program := NewProgram(nil)
	sf, scope := CreateSourceFile(program, "out.ts", nil)

	if scope.Kind() != ScopeKindSourceFile {
		t.Fatalf("expected ScopeKindSourceFile, got %v", scope.Kind())
	}
	if scope.Parent() != nil {
		t.Fatalf("expected root scope to have no parent")
	}
	if scope.SourceFile() != sf {
		t.Fatalf("expected scope's SourceFile to be the one it was created with")
	}
}

func TestCreateScope_NestedNamespaceInheritsSourceFile(t *testing.T) {
	program := NewProgram(nil)
	sf, root := CreateSourceFile(program, "out.ts", nil)
	child := CreateScope("models", "Models", root, false)

	if child.Kind() != ScopeKindNamespace {
		t.Fatalf("expected ScopeKindNamespace, got %v", child.Kind())
	}
	if child.Name() != "Models" {
		t.Fatalf("expected name %q, got %q", "Models", child.Name())
	}
	if child.Parent() == nil || child.Parent().SourceFile() != sf {
		t.Fatalf("expected child's ancestor chain to resolve back to the root source file")
	}
	if child.SourceFile() != sf {
		t.Fatalf("expected child.SourceFile() to walk up to the root source file")
	}
}

func TestScope_AppendAndDeclarationsPreserveOrder(t *testing.T) {
	program := NewProgram(nil)
	_, scope := CreateSourceFile(program, "out.ts", nil)

	scope.Append("first")
	scope.Append("second")
	scope.Append("third")

	got := scope.Declarations()
	if len(got) != 3 || got[0] != "first" || got[1] != "second" || got[2] != "third" {
		t.Fatalf("unexpected declaration order: %v", got)
	}
}

func TestDiffScopes_SiblingNamespacesShareSourceFileAncestor(t *testing.T) {
	program := NewProgram(nil)
	_, root := CreateSourceFile(program, "out.ts", nil)
	a := CreateScope("a", "A", root, false)
	b := CreateScope("b", "B", root, false)

	diff := DiffScopes(a, b)
	if diff.Common == nil || diff.Common.Kind() != ScopeKindSourceFile {
		t.Fatalf("expected the source-file root as the common ancestor, got %+v", diff.Common)
	}
	if len(diff.PathUp) != 1 || diff.PathUp[0].Name() != "A" {
		t.Fatalf("expected PathUp to contain only A, got %v", namesOf(diff.PathUp))
	}
	if len(diff.PathDown) != 1 || diff.PathDown[0].Name() != "B" {
		t.Fatalf("expected PathDown to contain only B, got %v", namesOf(diff.PathDown))
	}
}

func TestDiffScopes_SameScopeHasNoPath(t *testing.T) {
	program := NewProgram(nil)
	_, root := CreateSourceFile(program, "out.ts", nil)

	diff := DiffScopes(root, root)
	if len(diff.PathUp) != 0 || len(diff.PathDown) != 0 {
		t.Fatalf("expected no path segments when diffing a scope against itself, got %+v", diff)
	}
}

func namesOf(scopes []*Scope) []string {
	out := make([]string, len(scopes))
	for i, s := range scopes {
		out[i] = s.Name()
	}
	return out
}
