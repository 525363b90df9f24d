package typegraph

import (
	"gopkg.in/yaml.v3"
)

// The snapshot declarations mirror the document layout. Each keeps the YAML node it was decoded
// from so loaded types can point back at their source position.

type snapshotDecl struct {
	Namespaces []*namespaceDecl `yaml:"namespaces"`
}

type namespaceDecl struct {
	Name                 string           `yaml:"name"`
	Library              bool             `yaml:"library"`
	Service              *serviceDecl     `yaml:"service"`
	Decorators           []*decoratorDecl `yaml:"decorators"`
	Namespaces           []*namespaceDecl `yaml:"namespaces"`
	Models               []*modelDecl     `yaml:"models"`
	Unions               []*unionDecl     `yaml:"unions"`
	Enums                []*enumDecl      `yaml:"enums"`
	Scalars              []*scalarDecl    `yaml:"scalars"`
	Interfaces           []*interfaceDecl `yaml:"interfaces"`
	Operations           []*operationDecl `yaml:"operations"`
	DecoratorDefinitions []string         `yaml:"decoratorDefinitions"`

	node *yaml.Node
}

func (d *namespaceDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain namespaceDecl
	d.node = value
	return value.Decode((*plain)(d))
}

type serviceDecl struct {
	Title string `yaml:"title"`
}

type decoratorDecl struct {
	Name string       `yaml:"name"`
	// Args decodes as values: yaml.v3 only keeps raw nodes for yaml.Node targets, not *yaml.Node.
	Args []yaml.Node `yaml:"args"`

	node *yaml.Node
}

func (d *decoratorDecl) UnmarshalYAML(value *yaml.Node) error {
	d.node = value
	if value.Kind == yaml.ScalarNode {
		d.Name = value.Value
		return nil
	}
	type plain decoratorDecl
	return value.Decode((*plain)(d))
}

type indexerDecl struct {
	Key   string   `yaml:"key"`
	Value *typeRef `yaml:"value"`
}

type modelDecl struct {
	Name               string           `yaml:"name"`
	Decorators         []*decoratorDecl `yaml:"decorators"`
	Extends            *typeRef         `yaml:"extends"`
	Is                 *typeRef         `yaml:"is"`
	Indexer            *indexerDecl     `yaml:"indexer"`
	TemplateParameters []string         `yaml:"templateParameters"`
	TemplateArgs       []*typeRef       `yaml:"templateArgs"`
	Part               *typeRef         `yaml:"part"`
	Properties         []*propertyDecl  `yaml:"properties"`

	node *yaml.Node
}

func (d *modelDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain modelDecl
	d.node = value
	return value.Decode((*plain)(d))
}

type propertyDecl struct {
	Spread     *typeRef         `yaml:"spread"`
	Name       string           `yaml:"name"`
	Type       *typeRef         `yaml:"type"`
	Optional   bool             `yaml:"optional"`
	Default    any              `yaml:"default"`
	HTTP       HTTPKind         `yaml:"http"`
	Visibility *[]string        `yaml:"visibility"`
	Source     string           `yaml:"source"`
	Decorators []*decoratorDecl `yaml:"decorators"`

	node *yaml.Node
}

func (d *propertyDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain propertyDecl
	d.node = value
	return value.Decode((*plain)(d))
}

// typeRef is either a name or one of the inline type forms.
type typeRef struct {
	Name    string
	Model   *modelDecl
	Array   *typeRef
	Record  *typeRef
	Part    *typeRef
	Union   []*variantDecl
	Literal any

	node *yaml.Node
}

func (r *typeRef) UnmarshalYAML(value *yaml.Node) error {
	r.node = value
	if value.Kind == yaml.ScalarNode {
		r.Name = value.Value
		return nil
	}

	var inline struct {
		Model   *modelDecl     `yaml:"model"`
		Array   *typeRef       `yaml:"array"`
		Record  *typeRef       `yaml:"record"`
		Part    *typeRef       `yaml:"part"`
		Union   []*variantDecl `yaml:"union"`
		Literal any            `yaml:"literal"`
	}
	if err := value.Decode(&inline); err != nil {
		return err
	}
	r.Model = inline.Model
	r.Array = inline.Array
	r.Record = inline.Record
	r.Part = inline.Part
	r.Union = inline.Union
	r.Literal = inline.Literal
	return nil
}

type variantDecl struct {
	Name       string           `yaml:"name"`
	Type       *typeRef         `yaml:"type"`
	Decorators []*decoratorDecl `yaml:"decorators"`

	node *yaml.Node
}

func (d *variantDecl) UnmarshalYAML(value *yaml.Node) error {
	d.node = value
	if value.Kind == yaml.MappingNode && hasKey(value, "type") {
		type plain variantDecl
		return value.Decode((*plain)(d))
	}
	d.Type = &typeRef{}
	return d.Type.UnmarshalYAML(value)
}

type unionDecl struct {
	Name       string           `yaml:"name"`
	Decorators []*decoratorDecl `yaml:"decorators"`
	Variants   []*variantDecl   `yaml:"variants"`

	node *yaml.Node
}

func (d *unionDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain unionDecl
	d.node = value
	return value.Decode((*plain)(d))
}

type enumDecl struct {
	Name       string            `yaml:"name"`
	Decorators []*decoratorDecl  `yaml:"decorators"`
	Members    []*enumMemberDecl `yaml:"members"`

	node *yaml.Node
}

func (d *enumDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain enumDecl
	d.node = value
	return value.Decode((*plain)(d))
}

type enumMemberDecl struct {
	Name       string           `yaml:"name"`
	Value      any              `yaml:"value"`
	Decorators []*decoratorDecl `yaml:"decorators"`

	node *yaml.Node
}

func (d *enumMemberDecl) UnmarshalYAML(value *yaml.Node) error {
	d.node = value
	if value.Kind == yaml.ScalarNode {
		d.Name = value.Value
		return nil
	}
	type plain enumMemberDecl
	return value.Decode((*plain)(d))
}

type scalarDecl struct {
	Name       string           `yaml:"name"`
	Extends    string           `yaml:"extends"`
	Decorators []*decoratorDecl `yaml:"decorators"`

	node *yaml.Node
}

func (d *scalarDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain scalarDecl
	d.node = value
	return value.Decode((*plain)(d))
}

type interfaceDecl struct {
	Name               string           `yaml:"name"`
	Decorators         []*decoratorDecl `yaml:"decorators"`
	TemplateParameters []string         `yaml:"templateParameters"`
	TemplateArgs       []*typeRef       `yaml:"templateArgs"`
	Extends            []string         `yaml:"extends"`
	Operations         []*operationDecl `yaml:"operations"`

	node *yaml.Node
}

func (d *interfaceDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain interfaceDecl
	d.node = value
	return value.Decode((*plain)(d))
}

type operationDecl struct {
	Name               string           `yaml:"name"`
	Decorators         []*decoratorDecl `yaml:"decorators"`
	TemplateParameters []string         `yaml:"templateParameters"`
	Parameters         []*propertyDecl  `yaml:"parameters"`
	Returns            *typeRef         `yaml:"returns"`

	node *yaml.Node
}

func (d *operationDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain operationDecl
	d.node = value
	return value.Decode((*plain)(d))
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}
