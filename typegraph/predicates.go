package typegraph

import (
	"slices"
	"strconv"
	"strings"
)

// NamespaceFullName returns the dotted name of ns from the root, e.g. "Foo.Private".
// The global namespace has an empty full name.
func NamespaceFullName(ns *Namespace) string {
	var segments []string
	for ; ns != nil; ns = ns.Namespace {
		if ns.Name == "" {
			continue
		}
		segments = append(segments, ns.Name)
	}
	slices.Reverse(segments)
	return strings.Join(segments, ".")
}

func qualify(ns *Namespace, name string) string {
	if name == "" {
		return ""
	}
	if prefix := NamespaceFullName(ns); prefix != "" {
		return prefix + "." + name
	}
	return name
}

func member(owner, name string) string {
	if owner == "" || name == "" {
		return ""
	}
	return owner + "." + name
}

// FullName returns the fully qualified name of a declared node, or "" for anonymous nodes,
// literals and intrinsics.
func FullName(t Type) string {
	switch t := t.(type) {
	case *Namespace:
		return NamespaceFullName(t)
	case *Model:
		return qualify(t.Namespace, t.Name)
	case *Union:
		return qualify(t.Namespace, t.Name)
	case *Enum:
		return qualify(t.Namespace, t.Name)
	case *Scalar:
		return qualify(t.Namespace, t.Name)
	case *Interface:
		return qualify(t.Namespace, t.Name)
	case *DecoratorDefinition:
		return qualify(t.Namespace, t.Name)
	case *Operation:
		if t.Interface != nil {
			return member(FullName(t.Interface), t.Name)
		}
		return qualify(t.Namespace, t.Name)
	case *ModelProperty:
		if t.Model == nil {
			return ""
		}
		return member(FullName(t.Model), t.Name)
	case *EnumMember:
		if t.Enum == nil {
			return ""
		}
		return member(FullName(t.Enum), t.Name)
	case *UnionVariant:
		if t.Union == nil {
			return ""
		}
		return member(FullName(t.Union), t.Name)
	}
	return ""
}

// NameOf returns the declared name of t, or "" when t carries no name.
func NameOf(t Type) string {
	switch t := t.(type) {
	case *Namespace:
		return t.Name
	case *Model:
		return t.Name
	case *ModelProperty:
		return t.Name
	case *Union:
		return t.Name
	case *UnionVariant:
		return t.Name
	case *Operation:
		return t.Name
	case *Interface:
		return t.Name
	case *Enum:
		return t.Name
	case *EnumMember:
		return t.Name
	case *Scalar:
		return t.Name
	case *Intrinsic:
		return t.Name
	case *DecoratorDefinition:
		return t.Name
	}
	return ""
}

// TypeName renders t for use in diagnostics: the full name of declared nodes, the value of
// literals, and a structural description of anonymous models and unions.
func TypeName(t Type) string {
	if t == nil {
		return ""
	}
	if name := FullName(t); name != "" {
		if m, ok := t.(*Model); ok && len(m.TemplateArgs) > 0 {
			return name + templateArgsName(m.TemplateArgs)
		}
		return name
	}

	switch t := t.(type) {
	case *Model:
		names := make([]string, 0, t.Properties.Len())
		for name, prop := range t.Properties.All() {
			names = append(names, name+": "+TypeName(prop.Type))
		}
		return "{" + strings.Join(names, ", ") + "}"
	case *Union:
		names := make([]string, 0, len(t.Variants))
		for _, v := range t.Variants {
			names = append(names, TypeName(v.Type))
		}
		return strings.Join(names, " | ")
	case *StringLiteral:
		return `"` + t.Value + `"`
	case *NumericLiteral:
		return formatNumber(t.Value)
	case *BooleanLiteral:
		if t.Value {
			return "true"
		}
		return "false"
	case *Intrinsic:
		return t.Name
	}
	return NameOf(t)
}

func templateArgsName(args []Type) string {
	names := make([]string, 0, len(args))
	for _, arg := range args {
		names = append(names, TypeName(arg))
	}
	return "<" + strings.Join(names, ", ") + ">"
}

// NamespaceOf returns the namespace a node is declared in, walking through owners for members.
func NamespaceOf(t Type) *Namespace {
	switch t := t.(type) {
	case *Namespace:
		return t.Namespace
	case *Model:
		return t.Namespace
	case *Union:
		return t.Namespace
	case *Enum:
		return t.Namespace
	case *Scalar:
		return t.Namespace
	case *Interface:
		return t.Namespace
	case *DecoratorDefinition:
		return t.Namespace
	case *Operation:
		if t.Interface != nil {
			return t.Interface.Namespace
		}
		return t.Namespace
	case *ModelProperty:
		if t.Model != nil {
			return NamespaceOf(t.Model)
		}
	case *EnumMember:
		if t.Enum != nil {
			return t.Enum.Namespace
		}
	case *UnionVariant:
		if t.Union != nil {
			return t.Union.Namespace
		}
	}
	return nil
}

// IsTemplateDeclaration reports whether t is a model, interface or operation template that has
// declared template parameters and has not been instantiated.
func IsTemplateDeclaration(t Type) bool {
	switch t := t.(type) {
	case *Model:
		return len(t.TemplateParameters) > 0 && len(t.TemplateArgs) == 0
	case *Interface:
		return len(t.TemplateParameters) > 0 && len(t.TemplateArgs) == 0
	case *Operation:
		return len(t.TemplateParameters) > 0
	}
	return false
}

// IsTemplatedInterfaceOperation reports whether op belongs to an uninstantiated template interface.
func IsTemplatedInterfaceOperation(op *Operation) bool {
	return op.Interface != nil && IsTemplateDeclaration(op.Interface)
}

// IsTemplatedOperationSignature reports whether op is itself an uninstantiated operation template.
func IsTemplatedOperationSignature(op *Operation) bool {
	return len(op.TemplateParameters) > 0
}

// IsRecordModel reports whether m is keyed by strings.
func IsRecordModel(m *Model) bool {
	return m != nil && m.Indexer != nil && m.Indexer.Key != nil && m.Indexer.Key.Name == "string"
}

// IsArrayModel reports whether m is keyed by integers.
func IsArrayModel(m *Model) bool {
	return m != nil && m.Indexer != nil && m.Indexer.Key != nil && m.Indexer.Key.Name == "integer"
}

// IsMetadata reports whether prop carries HTTP metadata rather than payload.
func IsMetadata(prop *ModelProperty) bool {
	switch prop.HTTP {
	case HTTPPath, HTTPQuery, HTTPHeader, HTTPCookie, HTTPStatusCode:
		return true
	}
	return false
}

// IsVisible reports whether prop is visible for the given visibility. An empty visibility
// matches every property that is visible somewhere.
func IsVisible(prop *ModelProperty, visibility string) bool {
	if prop.Visibility == nil {
		return true
	}
	if visibility == "" {
		return len(prop.Visibility) > 0
	}
	return slices.Contains(prop.Visibility, visibility)
}

// HasNoneVisibility reports whether prop has been made invisible everywhere.
func HasNoneVisibility(prop *ModelProperty) bool {
	return prop.Visibility != nil && len(prop.Visibility) == 0
}

// IsInNamespaceNamed returns the closest namespace enclosing t, directly or through any ancestor,
// whose own name is name.
func IsInNamespaceNamed(t Type, name string) (*Namespace, bool) {
	var ns *Namespace
	if n, ok := t.(*Namespace); ok {
		ns = n
	} else {
		ns = NamespaceOf(t)
	}
	for ; ns != nil; ns = ns.Namespace {
		if ns.Name == name {
			return ns, true
		}
	}
	return nil, false
}

// DecoratorsNamed returns the applications of the decorator with the given fully qualified name.
func DecoratorsNamed(t Type, fullName string) []*Decorator {
	var found []*Decorator
	for _, d := range t.Meta().Decorators {
		if d.Definition != nil && FullName(d.Definition) == fullName {
			found = append(found, d)
		}
	}
	return found
}

// ScalarIs reports whether s is the builtin scalar name or derives from it.
func ScalarIs(s *Scalar, name string) bool {
	for ; s != nil; s = s.BaseScalar {
		if s.Name == name && s.Namespace != nil && s.Namespace.Name == LibraryNamespace {
			return true
		}
	}
	return false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
