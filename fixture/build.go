package fixture

import (
	"fmt"

	"github.com/cadl-tools/emitcore/internal/typegraph"
)

// BuildNamespace converts a decoded fixture document (as produced by Load or
// LoadYAML) into a root *typegraph.Namespace. The document shape mirrors the
// type-graph's own field names so that fixtures read like miniature dumps of
// the graph they build:
//
//	name: ""
//	models:
//	  - name: Widget
//	    properties:
//	      - {name: id, type: {kind: string}}
//	      - {name: next, type: {kind: ref, name: Widget}}
//	namespaces:
//	  - name: Inventory
//	    models: [...]
//
// A property/variant/parameter type of {kind: ref, name: X} resolves to the
// model, enum, union or interface named X declared in the same namespace or
// an ancestor, by identity — the same *typegraph.Model pointer every
// reference shares, so a cyclic fixture (A has a property of type B, B has a
// property of type A) round-trips through the dispatcher's memo/waiter
// machinery instead of silently duplicating each declaration per reference.
func BuildNamespace(doc any) (*typegraph.Namespace, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fixture: root document must be an object, got %T", doc)
	}
	b := newBuilder()
	ns, err := b.declareNamespace(m, nil)
	if err != nil {
		return nil, err
	}
	if err := b.fillNamespace(ns, m); err != nil {
		return nil, err
	}
	return ns, nil
}

// builder holds the two-pass registry: declareNamespace allocates every
// named node up front (empty bodies), and fillNamespace's
// second pass populates properties/members/variants, resolving {kind: ref}
// entries against byName.
type builder struct {
	byName map[*typegraph.Namespace]map[string]typegraph.Node
}

func newBuilder() *builder {
	return &builder{byName: make(map[*typegraph.Namespace]map[string]typegraph.Node)}
}

func (b *builder) register(ns *typegraph.Namespace, name string, n typegraph.Node) {
	if name == "" {
		return
	}
	if b.byName[ns] == nil {
		b.byName[ns] = make(map[string]typegraph.Node)
	}
	b.byName[ns][name] = n
}

// resolve looks up name starting at ns and walking up through Parent, the
// same enclosure direction contextFor folds declarations in.
func (b *builder) resolve(ns *typegraph.Namespace, name string) (typegraph.Node, bool) {
	for cur := ns; cur != nil; cur = cur.Parent {
		if m, ok := b.byName[cur]; ok {
			if n, ok := m[name]; ok {
				return n, true
			}
		}
	}
	return nil, false
}

func (b *builder) declareNamespace(m map[string]any, parent *typegraph.Namespace) (*typegraph.Namespace, error) {
	ns := &typegraph.Namespace{Name: str(m["name"]), Parent: parent, IsBuiltin: boolOf(m["isBuiltin"])}

	for _, raw := range list(m["models"]) {
		modelMap, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fixture: model entry must be an object, got %T", raw)
		}
		model := &typegraph.Model{
			Name:          str(modelMap["name"]),
			Namespace:     ns,
			IsIntrinsic:   boolOf(modelMap["isIntrinsic"]),
			IntrinsicName: str(modelMap["intrinsicName"]),
		}
		ns.Models = append(ns.Models, model)
		b.register(ns, model.Name, model)
	}
	for _, raw := range list(m["enums"]) {
		enumMap, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fixture: enum entry must be an object, got %T", raw)
		}
		enum := buildEnum(enumMap, ns)
		ns.Enums = append(ns.Enums, enum)
		b.register(ns, enum.Name, enum)
	}
	for _, raw := range list(m["unions"]) {
		unionMap, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fixture: union entry must be an object, got %T", raw)
		}
		union := &typegraph.Union{Name: str(unionMap["name"]), Namespace: ns}
		ns.Unions = append(ns.Unions, union)
		b.register(ns, union.Name, union)
	}
	for _, raw := range list(m["interfaces"]) {
		ifaceMap, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fixture: interface entry must be an object, got %T", raw)
		}
		iface := &typegraph.Interface{Name: str(ifaceMap["name"]), Namespace: ns}
		ns.Interfaces = append(ns.Interfaces, iface)
		b.register(ns, iface.Name, iface)
	}
	for _, raw := range list(m["operations"]) {
		opMap, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fixture: operation entry must be an object, got %T", raw)
		}
		op := &typegraph.Operation{Name: str(opMap["name"]), Namespace: ns}
		ns.Operations = append(ns.Operations, op)
		b.register(ns, op.Name, op)
	}
	for _, raw := range list(m["namespaces"]) {
		childMap, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fixture: namespace entry must be an object, got %T", raw)
		}
		child, err := b.declareNamespace(childMap, ns)
		if err != nil {
			return nil, err
		}
		ns.Namespaces = append(ns.Namespaces, child)
	}
	return ns, nil
}

// fillNamespace is the second pass: every node declareNamespace allocated
// now exists and is registered, so {kind: ref} type entries resolve even
// when they point forward or around a cycle.
func (b *builder) fillNamespace(ns *typegraph.Namespace, m map[string]any) error {
	modelMaps := list(m["models"])
	for i, model := range ns.Models {
		modelMap, _ := modelMaps[i].(map[string]any)
		if err := b.fillModel(model, modelMap); err != nil {
			return err
		}
	}
	opMaps := list(m["operations"])
	for i, op := range ns.Operations {
		opMap, _ := opMaps[i].(map[string]any)
		if err := b.fillOperation(op, opMap); err != nil {
			return err
		}
	}
	unionMaps := list(m["unions"])
	for i, union := range ns.Unions {
		unionMap, _ := unionMaps[i].(map[string]any)
		if err := b.fillUnion(union, unionMap); err != nil {
			return err
		}
	}
	// Interfaces declare their operations inline rather than via the
	// namespace-level registry, so fill them directly from the fixture.
	for i, ifaceMap := range list(m["interfaces"]) {
		ifaceObj, _ := ifaceMap.(map[string]any)
		iface := ns.Interfaces[i]
		for _, raw := range list(ifaceObj["operations"]) {
			opMap, ok := raw.(map[string]any)
			if !ok {
				return fmt.Errorf("fixture: interface operation entry must be an object, got %T", raw)
			}
			op := &typegraph.Operation{Name: str(opMap["name"]), Namespace: ns, Interface: iface}
			if err := b.fillOperation(op, opMap); err != nil {
				return err
			}
			iface.Operations = append(iface.Operations, op)
		}
	}

	nsMaps := list(m["namespaces"])
	for i, child := range ns.Namespaces {
		childMap, _ := nsMaps[i].(map[string]any)
		if err := b.fillNamespace(child, childMap); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) fillModel(model *typegraph.Model, m map[string]any) error {
	for _, raw := range list(m["templateArgs"]) {
		argMap, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("fixture: templateArgs entry must be an object, got %T", raw)
		}
		arg, err := b.buildType(model.Namespace, argMap)
		if err != nil {
			return err
		}
		model.TemplateArgs = append(model.TemplateArgs, arg)
	}
	for _, raw := range list(m["properties"]) {
		propMap, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("fixture: property entry must be an object, got %T", raw)
		}
		typeMap, ok := propMap["type"].(map[string]any)
		if !ok {
			return fmt.Errorf("fixture: property %q missing a type object", str(propMap["name"]))
		}
		t, err := b.buildType(model.Namespace, typeMap)
		if err != nil {
			return err
		}
		model.Properties = append(model.Properties, &typegraph.ModelProperty{
			Name:     str(propMap["name"]),
			Model:    model,
			Type:     t,
			Optional: boolOf(propMap["optional"]),
		})
	}
	return nil
}

func buildEnum(m map[string]any, ns *typegraph.Namespace) *typegraph.Enum {
	enum := &typegraph.Enum{Name: str(m["name"]), Namespace: ns}
	for _, raw := range list(m["members"]) {
		memberMap, _ := raw.(map[string]any)
		enum.Members = append(enum.Members, &typegraph.EnumMember{
			Name:  str(memberMap["name"]),
			Enum:  enum,
			Value: memberMap["value"],
		})
	}
	return enum
}

func (b *builder) fillOperation(op *typegraph.Operation, m map[string]any) error {
	ns := op.Namespace
	for _, raw := range list(m["parameters"]) {
		paramMap, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("fixture: parameter entry must be an object, got %T", raw)
		}
		typeMap, ok := paramMap["type"].(map[string]any)
		if !ok {
			return fmt.Errorf("fixture: parameter %q missing a type object", str(paramMap["name"]))
		}
		t, err := b.buildType(ns, typeMap)
		if err != nil {
			return err
		}
		op.Parameters = append(op.Parameters, &typegraph.ModelProperty{
			Name:     str(paramMap["name"]),
			Type:     t,
			Optional: boolOf(paramMap["optional"]),
		})
	}
	if retMap, ok := m["returnType"].(map[string]any); ok {
		t, err := b.buildType(ns, retMap)
		if err != nil {
			return err
		}
		op.ReturnType = t
	}
	return nil
}

func (b *builder) fillUnion(union *typegraph.Union, m map[string]any) error {
	ns := union.Namespace
	for _, raw := range list(m["variants"]) {
		variantMap, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("fixture: variant entry must be an object, got %T", raw)
		}
		typeMap, ok := variantMap["type"].(map[string]any)
		if !ok {
			return fmt.Errorf("fixture: variant %q missing a type object", str(variantMap["name"]))
		}
		t, err := b.buildType(ns, typeMap)
		if err != nil {
			return err
		}
		union.Variants = append(union.Variants, &typegraph.UnionVariant{
			Name:  str(variantMap["name"]),
			Union: union,
			Type:  t,
		})
	}
	return nil
}

// buildType interprets a {kind: ...} fixture object as a typegraph.Node: a
// literal leaf, an anonymous tuple/model/union built inline, or a {kind:
// ref, name: X} lookup against ns's declaration registry.
func (b *builder) buildType(ns *typegraph.Namespace, m map[string]any) (typegraph.Node, error) {
	switch str(m["kind"]) {
	case "string":
		return &typegraph.StringLiteral{Value: str(m["value"])}, nil
	case "boolean":
		return &typegraph.BooleanLiteral{Value: boolOf(m["value"])}, nil
	case "numeric":
		return &typegraph.NumericLiteral{Value: numberOf(m["value"])}, nil
	case "tuple":
		var elems []typegraph.Node
		for _, raw := range list(m["elements"]) {
			elemMap, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("fixture: tuple element must be an object, got %T", raw)
			}
			e, err := b.buildType(ns, elemMap)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return &typegraph.Tuple{Elements: elems}, nil
	case "ref":
		name := str(m["name"])
		n, ok := b.resolve(ns, name)
		if !ok {
			return nil, fmt.Errorf("fixture: ref %q does not resolve to a declared model/enum/union/interface", name)
		}
		return n, nil
	case "model":
		// Anonymous inline model (e.g. an array instantiation): not
		// registered, since it has no name to be referenced by.
		model := &typegraph.Model{
			Name:          str(m["name"]),
			Namespace:     ns,
			IsIntrinsic:   boolOf(m["isIntrinsic"]),
			IntrinsicName: str(m["intrinsicName"]),
		}
		for _, raw := range list(m["templateArgs"]) {
			argMap, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("fixture: templateArgs entry must be an object, got %T", raw)
			}
			arg, err := b.buildType(ns, argMap)
			if err != nil {
				return nil, err
			}
			model.TemplateArgs = append(model.TemplateArgs, arg)
		}
		if err := b.fillModel(model, m); err != nil {
			return nil, err
		}
		return model, nil
	case "union":
		union := &typegraph.Union{Name: str(m["name"]), Namespace: ns}
		if err := b.fillUnion(union, m); err != nil {
			return nil, err
		}
		return union, nil
	default:
		return nil, fmt.Errorf("fixture: unknown type kind %q", str(m["kind"]))
	}
}

func list(v any) []any {
	arr, _ := v.([]any)
	return arr
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func boolOf(v any) bool {
	b, _ := v.(bool)
	return b
}

func numberOf(v any) float64 {
	switch n := v.(type) {
	case Number:
		var f float64
		fmt.Sscanf(string(n), "%g", &f)
		return f
	case float64:
		return n
	default:
		return 0
	}
}
