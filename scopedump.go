package emitcore

import gojson "github.com/goccy/go-json"

// ScopeDump is a serializable snapshot of one Scope, used by DumpScope to
// produce debugging output and golden-file test fixtures without exposing
// internal/scopegraph types across the package boundary.
type ScopeDump struct {
	Kind         string            `json:"kind"`
	Name         string            `json:"name,omitempty"`
	Path         string            `json:"path,omitempty"`
	Declarations []DeclarationDump `json:"declarations,omitempty"`
	Children     []*ScopeDump      `json:"children,omitempty"`
}

// DeclarationDump is the serializable view of one entry in a Scope's
// Declarations list.
type DeclarationDump struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Value    string `json:"value,omitempty"`
	Resolved bool   `json:"resolved"`
}

// DumpScope walks s and its descendants into a ScopeDump tree. Declaration
// entries that are not an EmitEntity (a user emitter is free to Append any
// value) are recorded with Kind "opaque" and no Value.
func DumpScope(s *Scope) *ScopeDump {
	if s == nil {
		return nil
	}
	d := &ScopeDump{Kind: scopeKindName(s.Kind()), Name: s.Name()}
	if sf := s.inner.Block; sf != nil {
		if file, ok := sf.(*SourceFile); ok {
			d.Path = file.Path
		}
	}
	for _, decl := range s.Declarations() {
		d.Declarations = append(d.Declarations, dumpDeclaration(decl))
	}
	for _, child := range s.Children() {
		d.Children = append(d.Children, DumpScope(child))
	}
	return d
}

// DumpScopeJSON renders DumpScope(s) as indented JSON via goccy/go-json, the
// same fast-JSON backend the fixture package uses to decode test input.
func DumpScopeJSON(s *Scope) ([]byte, error) {
	return gojson.MarshalIndent(DumpScope(s), "", "  ")
}

func dumpDeclaration(decl any) DeclarationDump {
	entity, ok := decl.(EmitEntity)
	if !ok {
		return DeclarationDump{Kind: "opaque"}
	}
	dd := DeclarationDump{Name: entity.Name, Kind: entityKindName(entity.Kind)}
	if p := entity.ValuePlaceholder(); p != nil {
		if v, resolved := p.Value(); resolved {
			dd.Resolved = true
			if s, ok := v.(string); ok {
				dd.Value = s
			}
		}
	}
	return dd
}

func scopeKindName(k ScopeKind) string {
	switch k {
	case ScopeKindSourceFile:
		return "sourceFile"
	case ScopeKindNamespace:
		return "namespace"
	default:
		return "unknown"
	}
}

func entityKindName(k EntityKind) string {
	switch k {
	case KindDeclarationEntity:
		return "declaration"
	case KindRawCodeEntity:
		return "rawCode"
	case KindNoEmitEntity:
		return "noEmit"
	case KindCircularEmitEntity:
		return "circularEmit"
	default:
		return "unknown"
	}
}
