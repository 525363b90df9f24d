package typegraph

import (
	"iter"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// LibraryNamespace is the name of the builtin library namespace holding the standard scalars.
const LibraryNamespace = "TypeSpec"

// Builtin decorator namespaces declared by every program.
const (
	VersioningNamespace = "TypeSpec.Versioning"
	HTTPNamespace       = "TypeSpec.Http"
	ClientCoreNamespace = "Azure.ClientGenerator.Core"
)

// standard scalars and the scalar they extend, in declaration order.
var builtinScalars = []struct {
	name string
	base string
}{
	{"numeric", ""},
	{"integer", "numeric"},
	{"float", "numeric"},
	{"int64", "integer"},
	{"int32", "int64"},
	{"int16", "int32"},
	{"int8", "int16"},
	{"safeint", "int64"},
	{"uint64", "integer"},
	{"uint32", "uint64"},
	{"uint16", "uint32"},
	{"uint8", "uint16"},
	{"float64", "float"},
	{"float32", "float64"},
	{"decimal", "numeric"},
	{"decimal128", "decimal"},
	{"string", ""},
	{"boolean", ""},
	{"bytes", ""},
	{"plainDate", ""},
	{"plainTime", ""},
	{"utcDateTime", ""},
	{"offsetDateTime", ""},
	{"duration", ""},
	{"url", ""},
}

var builtinDecorators = []struct {
	namespace string
	names     []string
}{
	{LibraryNamespace, []string{"doc", "friendlyName", "encodedName", "visibility", "key", "error"}},
	{VersioningNamespace, []string{"versioned", "added", "removed", "renamedFrom", "madeOptional", "typeChangedFrom", "returnTypeChangedFrom", "useDependency"}},
	{HTTPNamespace, []string{"route", "path", "query", "header", "cookie", "body", "bodyRoot", "statusCode"}},
	{ClientCoreNamespace, []string{"clientName", "apiVersion"}},
}

var intrinsicNames = []string{"void", "null", "unknown", "never"}

// Program is a fully resolved type graph.
type Program struct {
	// Global is the unnamed root namespace.
	Global *Namespace
	// Root is the document node the program was loaded from, nil for programs built in code.
	Root *yaml.Node

	intrinsics map[string]*Intrinsic
	types      map[string]Type

	mu        sync.Mutex
	arrays    map[Type]*Model
	records   map[Type]*Model
	httpParts map[Type]*Model
	literals  map[any]Type
}

// NewProgram creates a program holding only the builtin library declarations.
func NewProgram() *Program {
	p := &Program{
		Global:     NewNamespace("", nil),
		intrinsics: make(map[string]*Intrinsic, len(intrinsicNames)),
		types:      make(map[string]Type),
		arrays:     make(map[Type]*Model),
		records:    make(map[Type]*Model),
		httpParts:  make(map[Type]*Model),
		literals:   make(map[any]Type),
	}

	lib := p.EnsureNamespace(LibraryNamespace, OriginLibrary)
	for _, s := range builtinScalars {
		scalar := &Scalar{Name: s.name, Namespace: lib}
		scalar.Origin = OriginLibrary
		if s.base != "" {
			scalar.BaseScalar = lib.Scalars.GetOrZero(s.base)
		}
		lib.Scalars.Set(s.name, scalar)
		p.Register(scalar)
	}

	for _, group := range builtinDecorators {
		ns := p.EnsureNamespace(group.namespace, OriginLibrary)
		for _, name := range group.names {
			def := &DecoratorDefinition{Name: name, Namespace: ns}
			def.Origin = OriginLibrary
			ns.DecoratorDefinitions.Set(name, def)
			p.Register(def)
		}
	}

	for _, name := range intrinsicNames {
		in := &Intrinsic{Name: name}
		in.Origin = OriginLibrary
		p.intrinsics[name] = in
	}

	return p
}

// EnsureNamespace returns the namespace with the given dotted full name, creating missing
// segments with the given origin.
func (p *Program) EnsureNamespace(fullName string, origin Origin) *Namespace {
	ns := p.Global
	for _, segment := range strings.Split(fullName, ".") {
		child, ok := ns.Namespaces.Get(segment)
		if !ok {
			child = NewNamespace(segment, ns)
			child.Origin = origin
			p.Register(child)
		}
		ns = child
	}
	return ns
}

// Register makes t resolvable through Lookup by its fully qualified name.
func (p *Program) Register(t Type) {
	if name := FullName(t); name != "" {
		p.types[name] = t
	}
}

// Lookup resolves a fully qualified name such as "Contoso.Widgets.Widget" or
// "Contoso.Widgets.Widget.name". Intrinsics resolve by their bare name.
func (p *Program) Lookup(fullName string) (Type, bool) {
	if in, ok := p.intrinsics[fullName]; ok {
		return in, true
	}
	t, ok := p.types[fullName]
	return t, ok
}

// Scalar returns the builtin scalar with the given name.
func (p *Program) Scalar(name string) *Scalar {
	lib, _ := p.Global.Namespaces.Get(LibraryNamespace)
	return lib.Scalars.GetOrZero(name)
}

// Intrinsic returns the intrinsic type with the given name.
func (p *Program) Intrinsic(name string) *Intrinsic {
	return p.intrinsics[name]
}

// ArrayOf returns the Array instantiation for element. The same element always yields the same model.
func (p *Program) ArrayOf(element Type) *Model {
	return p.instantiate(p.arrays, "Array", LibraryNamespace, element, func(m *Model) {
		m.Indexer = &Indexer{Key: p.Scalar("integer"), Value: element}
	})
}

// RecordOf returns the Record instantiation for element. The same element always yields the same model.
func (p *Program) RecordOf(element Type) *Model {
	return p.instantiate(p.records, "Record", LibraryNamespace, element, func(m *Model) {
		m.Indexer = &Indexer{Key: p.Scalar("string"), Value: element}
	})
}

// HTTPPartOf returns the HttpPart instantiation wrapping t.
func (p *Program) HTTPPartOf(t Type) *Model {
	return p.instantiate(p.httpParts, "HttpPart", HTTPNamespace, t, func(m *Model) {
		m.Part = t
	})
}

func (p *Program) instantiate(cache map[Type]*Model, name, nsName string, arg Type, init func(*Model)) *Model {
	p.mu.Lock()
	defer p.mu.Unlock()

	if m, ok := cache[arg]; ok {
		return m
	}

	ns := p.EnsureNamespace(nsName, OriginLibrary)
	m := NewModel(name, ns)
	m.Origin = OriginLibrary
	m.TemplateArgs = []Type{arg}
	init(m)
	cache[arg] = m
	return m
}

// Literal returns the literal type for a string, number or boolean value. Equal values share one node.
// It returns nil for values of any other type.
func (p *Program) Literal(value any) Type {
	switch v := value.(type) {
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	case uint64:
		value = float64(v)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if t, ok := p.literals[value]; ok {
		return t
	}

	var t Type
	switch v := value.(type) {
	case string:
		t = &StringLiteral{Value: v}
	case float64:
		t = &NumericLiteral{Value: v}
	case bool:
		t = &BooleanLiteral{Value: v}
	default:
		return nil
	}
	p.literals[value] = t
	return t
}

// Namespaces iterates every namespace of the program depth first, in declaration order,
// excluding the global namespace.
func (p *Program) Namespaces() iter.Seq[*Namespace] {
	return func(yield func(*Namespace) bool) {
		var visit func(ns *Namespace) bool
		visit = func(ns *Namespace) bool {
			for child := range ns.Namespaces.Values() {
				if !yield(child) || !visit(child) {
					return false
				}
			}
			return true
		}
		visit(p.Global)
	}
}

// UserNamespaces iterates the project-owned namespaces of the program.
func (p *Program) UserNamespaces() iter.Seq[*Namespace] {
	return func(yield func(*Namespace) bool) {
		for ns := range p.Namespaces() {
			if ns.Origin != OriginProject {
				continue
			}
			if !yield(ns) {
				return
			}
		}
	}
}

// ServiceNamespaces iterates the namespaces marked as service roots.
func (p *Program) ServiceNamespaces() iter.Seq[*Namespace] {
	return func(yield func(*Namespace) bool) {
		for ns := range p.Namespaces() {
			if ns.Service == nil {
				continue
			}
			if !yield(ns) {
				return
			}
		}
	}
}
