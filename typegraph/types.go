// Package typegraph models the fully-resolved type graph produced by a schema compiler.
//
// Every node is allocated exactly once and is referenced by pointer, so pointer identity is
// the node identity: caches, visited sets and generated-name tables key on the node itself
// and never compare structure. The graph may be cyclic (base/derived links, self-referencing
// properties) and is treated as read-only once built.
package typegraph

import (
	"github.com/speakeasy-api/schemagraph/sequencedmap"
	"gopkg.in/yaml.v3"
)

// Kind is the tag of the closed set of node variants.
type Kind int

const (
	KindNamespace Kind = iota
	KindModel
	KindModelProperty
	KindUnion
	KindUnionVariant
	KindOperation
	KindInterface
	KindEnum
	KindEnumMember
	KindScalar
	KindString
	KindNumber
	KindBoolean
	KindIntrinsic
	KindDecorator
)

var kindNames = [...]string{
	KindNamespace:     "Namespace",
	KindModel:         "Model",
	KindModelProperty: "ModelProperty",
	KindUnion:         "Union",
	KindUnionVariant:  "UnionVariant",
	KindOperation:     "Operation",
	KindInterface:     "Interface",
	KindEnum:          "Enum",
	KindEnumMember:    "EnumMember",
	KindScalar:        "Scalar",
	KindString:        "String",
	KindNumber:        "Number",
	KindBoolean:       "Boolean",
	KindIntrinsic:     "Intrinsic",
	KindDecorator:     "Decorator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Origin records who owns the declaration of a node.
type Origin int

const (
	// OriginProject marks nodes declared by the user project being compiled.
	OriginProject Origin = iota
	// OriginLibrary marks nodes that come from an imported library.
	OriginLibrary
)

func (o Origin) String() string {
	if o == OriginLibrary {
		return "library"
	}
	return "project"
}

// Type is implemented by every node of the graph.
type Type interface {
	Kind() Kind
	// Meta returns the data shared by all node kinds.
	Meta() *Node

	sealed()
}

// Node holds the data shared by all node kinds.
type Node struct {
	Origin     Origin
	Decorators []*Decorator
	// Source is the snapshot node the type was loaded from, nil for synthesized types.
	Source *yaml.Node
}

func (n *Node) Meta() *Node { return n }
func (n *Node) sealed()     {}

// Decorator is the application of a decorator to a node.
type Decorator struct {
	Definition *DecoratorDefinition
	// Args holds Type values or plain Go values (string, float64, bool).
	Args   []any
	Source *yaml.Node
}

// DecoratorDefinition is a declared decorator.
type DecoratorDefinition struct {
	Node
	Name      string
	Namespace *Namespace
}

func (*DecoratorDefinition) Kind() Kind { return KindDecorator }

// Service marks a namespace as the root of a service.
type Service struct {
	Title string
}

// Namespace is a hierarchical container of declarations.
type Namespace struct {
	Node
	Name      string
	Namespace *Namespace
	Service   *Service

	Namespaces           *sequencedmap.Map[string, *Namespace]
	Models               *sequencedmap.Map[string, *Model]
	Unions               *sequencedmap.Map[string, *Union]
	Enums                *sequencedmap.Map[string, *Enum]
	Scalars              *sequencedmap.Map[string, *Scalar]
	Interfaces           *sequencedmap.Map[string, *Interface]
	Operations           *sequencedmap.Map[string, *Operation]
	DecoratorDefinitions *sequencedmap.Map[string, *DecoratorDefinition]
}

func (*Namespace) Kind() Kind { return KindNamespace }

// NewNamespace creates an empty namespace nested in parent (nil for the global namespace).
func NewNamespace(name string, parent *Namespace) *Namespace {
	ns := &Namespace{
		Name:                 name,
		Namespace:            parent,
		Namespaces:           sequencedmap.New[string, *Namespace](),
		Models:               sequencedmap.New[string, *Model](),
		Unions:               sequencedmap.New[string, *Union](),
		Enums:                sequencedmap.New[string, *Enum](),
		Scalars:              sequencedmap.New[string, *Scalar](),
		Interfaces:           sequencedmap.New[string, *Interface](),
		Operations:           sequencedmap.New[string, *Operation](),
		DecoratorDefinitions: sequencedmap.New[string, *DecoratorDefinition](),
	}
	if parent != nil {
		ns.Origin = parent.Origin
		parent.Namespaces.Set(name, ns)
	}
	return ns
}

// Indexer describes the key and element type of array and map shaped models.
type Indexer struct {
	Key   *Scalar
	Value Type
}

// Model is a named or anonymous structured type.
type Model struct {
	Node
	// Name is empty for anonymous (inline) models.
	Name       string
	Namespace  *Namespace
	Properties *sequencedmap.Map[string, *ModelProperty]

	BaseModel     *Model
	DerivedModels []*Model
	Indexer       *Indexer
	// SourceModel is the model this one was produced from with `is` or a template instantiation.
	SourceModel *Model

	// TemplateParameters is set on uninstantiated template declarations only.
	TemplateParameters []string
	// TemplateArgs is set on template instantiations.
	TemplateArgs []Type

	// Part is the wrapped type when the model is an HTTP part indirection.
	Part Type
}

func (*Model) Kind() Kind { return KindModel }

// NewModel creates a model with an empty property list.
func NewModel(name string, ns *Namespace) *Model {
	return &Model{
		Name:       name,
		Namespace:  ns,
		Properties: sequencedmap.New[string, *ModelProperty](),
	}
}

// AddProperty appends prop to the model and sets its owner.
func (m *Model) AddProperty(prop *ModelProperty) *ModelProperty {
	prop.Model = m
	m.Properties.Set(prop.Name, prop)
	return prop
}

// HTTPKind classifies the HTTP role a property plays.
type HTTPKind string

const (
	HTTPNone          HTTPKind = ""
	HTTPPath          HTTPKind = "path"
	HTTPQuery         HTTPKind = "query"
	HTTPHeader        HTTPKind = "header"
	HTTPCookie        HTTPKind = "cookie"
	HTTPStatusCode    HTTPKind = "statusCode"
	HTTPBody          HTTPKind = "body"
	HTTPBodyRoot      HTTPKind = "bodyRoot"
	HTTPMultipartBody HTTPKind = "multipartBody"
)

// ModelProperty is a property owned by exactly one model.
type ModelProperty struct {
	Node
	Name     string
	Model    *Model
	Type     Type
	Optional bool
	// DefaultValue is nil when the property declares no default.
	DefaultValue any
	HTTP         HTTPKind
	// Visibility lists the visibilities the property is visible in. nil means visible everywhere,
	// an empty non-nil slice means visible nowhere.
	Visibility []string
	// SourceProperty is the property this one was copied from by a spread or `is`.
	SourceProperty *ModelProperty
}

func (*ModelProperty) Kind() Kind { return KindModelProperty }

// Union is a set of alternative types.
type Union struct {
	Node
	Name      string
	Namespace *Namespace
	Variants  []*UnionVariant
}

func (*Union) Kind() Kind { return KindUnion }

// AddVariant appends a variant to the union and sets its owner.
func (u *Union) AddVariant(v *UnionVariant) *UnionVariant {
	v.Union = u
	u.Variants = append(u.Variants, v)
	return v
}

// UnionVariant is one alternative of a union, optionally named.
type UnionVariant struct {
	Node
	Name  string
	Union *Union
	Type  Type
}

func (*UnionVariant) Kind() Kind { return KindUnionVariant }

// Operation is a callable API operation.
type Operation struct {
	Node
	Name      string
	Namespace *Namespace
	Interface *Interface
	// Parameters is the anonymous model holding the operation parameters.
	Parameters         *Model
	ReturnType         Type
	TemplateParameters []string
}

func (*Operation) Kind() Kind { return KindOperation }

// Interface groups operations.
type Interface struct {
	Node
	Name               string
	Namespace          *Namespace
	Operations         *sequencedmap.Map[string, *Operation]
	TemplateParameters []string
	TemplateArgs       []Type
	SourceInterfaces   []*Interface
}

func (*Interface) Kind() Kind { return KindInterface }

// Enum is a closed set of named members.
type Enum struct {
	Node
	Name      string
	Namespace *Namespace
	Members   *sequencedmap.Map[string, *EnumMember]
}

func (*Enum) Kind() Kind { return KindEnum }

// EnumMember is a member of an enum. Value is nil when the member has no explicit value.
type EnumMember struct {
	Node
	Name  string
	Enum  *Enum
	Value any
}

func (*EnumMember) Kind() Kind { return KindEnumMember }

// Scalar is a primitive type, possibly derived from another scalar.
type Scalar struct {
	Node
	Name         string
	Namespace    *Namespace
	BaseScalar   *Scalar
	TemplateArgs []Type
}

func (*Scalar) Kind() Kind { return KindScalar }

// StringLiteral is a string literal type.
type StringLiteral struct {
	Node
	Value string
}

func (*StringLiteral) Kind() Kind { return KindString }

// NumericLiteral is a numeric literal type.
type NumericLiteral struct {
	Node
	Value float64
}

func (*NumericLiteral) Kind() Kind { return KindNumber }

// BooleanLiteral is a boolean literal type.
type BooleanLiteral struct {
	Node
	Value bool
}

func (*BooleanLiteral) Kind() Kind { return KindBoolean }

// Intrinsic is one of the compiler intrinsic types (void, null, unknown, never).
type Intrinsic struct {
	Node
	Name string
}

func (*Intrinsic) Kind() Kind { return KindIntrinsic }
