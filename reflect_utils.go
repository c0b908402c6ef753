package emitcore

import (
	"context"
	"reflect"
	"strings"
)

// contextMethodSuffix names which of the two context-producing methods a
// given operation key's declaration owns; constructed, never hard-coded per
// opKey, since the set of opKeys is open-ended (one per type-graph node
// kind) while the method-naming rule is fixed.
type contextMethodSuffix string

const (
	suffixContext          contextMethodSuffix = "Context"
	suffixReferenceContext contextMethodSuffix = "ReferenceContext"
)

// contextMethodName builds "<opKey>Context" / "<opKey>ReferenceContext"
// with the operation key's first rune upper-cased, matching exported Go
// method-naming conventions (operation keys themselves are lowerCamelCase,
// e.g. "modelDeclaration" -> "ModelDeclarationContext").
func contextMethodName(opKey string, suffix contextMethodSuffix) string {
	if opKey == "" {
		return string(suffix)
	}
	return strings.ToUpper(opKey[:1]) + opKey[1:] + string(suffix)
}

// invokeContextMethod looks up "<opKey><suffix>" on emitter by reflection
// and calls it with (ctx, node), returning (nil, nil) when the method does
// not exist — exemption from this call, not a missing-method error, is the
// caller's job to decide (typegraph.ExemptFromReferenceContext). The method
// must have the shape func(context.Context, <NodeType>) (map[string]any, error).
func invokeContextMethod(emitter any, opKey string, suffix contextMethodSuffix, ctx context.Context, node any) (map[string]any, bool, error) {
	name := contextMethodName(opKey, suffix)
	v := reflect.ValueOf(emitter)
	m := v.MethodByName(name)
	if !m.IsValid() {
		return nil, false, nil
	}
	mt := m.Type()
	if mt.NumIn() != 2 || mt.NumOut() != 2 {
		return nil, true, NewEmitError(ErrMissingContextMethod, opKey, name+" has an unexpected signature", nil)
	}
	results := m.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(node)})
	var err error
	if e, ok := results[1].Interface().(error); ok {
		err = e
	}
	if err != nil {
		return nil, true, err
	}
	out, _ := results[0].Interface().(map[string]any)
	return out, true, nil
}
