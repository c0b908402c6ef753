package emitcore

import (
	"strings"

	"github.com/cadl-tools/emitcore/internal/typegraph"
)

// NameBuilder accumulates the pieces of a declaration name the way a caller
// walks down into nested template instantiations: a base name followed by
// zero or more argument-name segments, joined the same way regardless of
// how many levels of instantiation produced them.
type NameBuilder struct {
	base string
	args []string
}

// NewNameBuilder starts a name rooted at base.
func NewNameBuilder(base string) *NameBuilder { return &NameBuilder{base: base} }

// WithArg appends one template argument's own declaration name.
func (nb *NameBuilder) WithArg(name string) *NameBuilder {
	nb.args = append(nb.args, name)
	return nb
}

// String joins the base and argument segments into a single identifier.
func (nb *NameBuilder) String() string {
	if len(nb.args) == 0 {
		return nb.base
	}
	return nb.base + strings.Join(nb.args, "")
}

// EmitDeclarationName computes the deterministic declaration name for n per
// the intrinsic/instantiation rules: an intrinsic model's IntrinsicName, a
// plain declaration's own Name, or for a template instantiation the
// generic's name followed by each template argument's own recursively
// computed name. Non-model template arguments are rejected with
// ErrInvalidTemplateArg since there is no general rule for naming an
// instantiation over a literal or union argument.
func EmitDeclarationName(n typegraph.Node) (string, error) {
	switch t := n.(type) {
	case *typegraph.Model:
		if t.IsIntrinsic {
			return t.IntrinsicName, nil
		}
		if len(t.TemplateArgs) == 0 {
			return t.Name, nil
		}
		nb := NewNameBuilder(t.Name)
		for _, arg := range t.TemplateArgs {
			argModel, ok := arg.(*typegraph.Model)
			if !ok {
				return "", NewEmitError(ErrInvalidTemplateArg, "", "template argument is not a named model", nil)
			}
			argName, err := EmitDeclarationName(argModel)
			if err != nil {
				return "", err
			}
			nb.WithArg(argName)
		}
		return nb.String(), nil
	case *typegraph.Union:
		if len(t.TemplateArgs) == 0 {
			return t.Name, nil
		}
		nb := NewNameBuilder(t.Name)
		for _, arg := range t.TemplateArgs {
			argModel, ok := arg.(*typegraph.Model)
			if !ok {
				return "", NewEmitError(ErrInvalidTemplateArg, "", "template argument is not a named model", nil)
			}
			argName, err := EmitDeclarationName(argModel)
			if err != nil {
				return "", err
			}
			nb.WithArg(argName)
		}
		return nb.String(), nil
	case typegraph.Named:
		return t.DeclName(), nil
	default:
		return "", NewEmitError(ErrInvalidTemplateArg, "", "node has no declaration name", nil)
	}
}
