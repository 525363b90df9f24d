package canonical

import (
	"slices"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/speakeasy-api/schemagraph/naming"
	"github.com/speakeasy-api/schemagraph/typegraph"
)

// DecoratorDoc carries documentation for a declaration.
const DecoratorDoc = typegraph.LibraryNamespace + ".doc"

type scalarFormat struct {
	typ    string
	format string
}

// formats of the standard scalars. Custom scalars use the closest standard scalar they extend.
var scalarFormats = map[string]scalarFormat{
	"string":         {typ: openapi3.TypeString},
	"boolean":        {typ: openapi3.TypeBoolean},
	"bytes":          {typ: openapi3.TypeString, format: "byte"},
	"numeric":        {typ: openapi3.TypeNumber},
	"integer":        {typ: openapi3.TypeInteger},
	"float":          {typ: openapi3.TypeNumber},
	"int8":           {typ: openapi3.TypeInteger, format: "int8"},
	"int16":          {typ: openapi3.TypeInteger, format: "int16"},
	"int32":          {typ: openapi3.TypeInteger, format: "int32"},
	"int64":          {typ: openapi3.TypeInteger, format: "int64"},
	"safeint":        {typ: openapi3.TypeInteger, format: "int64"},
	"uint8":          {typ: openapi3.TypeInteger, format: "uint8"},
	"uint16":         {typ: openapi3.TypeInteger, format: "uint16"},
	"uint32":         {typ: openapi3.TypeInteger, format: "uint32"},
	"uint64":         {typ: openapi3.TypeInteger, format: "uint64"},
	"float32":        {typ: openapi3.TypeNumber, format: "float"},
	"float64":        {typ: openapi3.TypeNumber, format: "double"},
	"decimal":        {typ: openapi3.TypeNumber, format: "decimal"},
	"decimal128":     {typ: openapi3.TypeNumber, format: "decimal"},
	"plainDate":      {typ: openapi3.TypeString, format: "date"},
	"plainTime":      {typ: openapi3.TypeString, format: "time"},
	"utcDateTime":    {typ: openapi3.TypeString, format: "date-time"},
	"offsetDateTime": {typ: openapi3.TypeString, format: "date-time"},
	"duration":       {typ: openapi3.TypeString, format: "duration"},
	"url":            {typ: openapi3.TypeString, format: "uri"},
}

func inline(s *openapi3.Schema) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("", s)
}

// schemaFor returns the schema of t. Named models are referenced, everything else is inlined.
func (e *emitter) schemaFor(t typegraph.Type) *openapi3.SchemaRef {
	switch t := t.(type) {
	case *typegraph.Model:
		return e.modelSchema(t)
	case *typegraph.Scalar:
		return inline(scalarSchema(t))
	case *typegraph.Enum:
		return inline(enumSchema(t))
	case *typegraph.EnumMember:
		return inline(literalSchema(memberValue(t)))
	case *typegraph.Union:
		return e.unionSchema(t)
	case *typegraph.StringLiteral:
		return inline(literalSchema(t.Value))
	case *typegraph.NumericLiteral:
		return inline(literalSchema(t.Value))
	case *typegraph.BooleanLiteral:
		return inline(literalSchema(t.Value))
	}
	return inline(&openapi3.Schema{})
}

func (e *emitter) modelSchema(m *typegraph.Model) *openapi3.SchemaRef {
	switch {
	case m.Part != nil:
		return e.schemaFor(m.Part)
	case m.Name == "Array" && typegraph.IsArrayModel(m):
		return inline(&openapi3.Schema{
			Type:  openapi3.TypeArray,
			Items: e.schemaFor(m.Indexer.Value),
		})
	case m.Name == "Record" && typegraph.IsRecordModel(m) && m.Properties.Len() == 0:
		return inline(&openapi3.Schema{
			Type:                 openapi3.TypeObject,
			AdditionalProperties: openapi3.AdditionalProperties{Schema: e.schemaFor(m.Indexer.Value)},
		})
	case m.Name == "":
		if _, defined := e.keys[m]; defined {
			return e.ref(m)
		}
		return e.objectSchema(m)
	}
	return e.ref(m)
}

// objectSchema returns the definition of a model. Metadata properties and properties that are
// never visible are left out.
func (e *emitter) objectSchema(m *typegraph.Model) *openapi3.SchemaRef {
	if typegraph.IsArrayModel(m) {
		return inline(&openapi3.Schema{
			Type:        openapi3.TypeArray,
			Items:       e.schemaFor(m.Indexer.Value),
			Description: docOf(m),
		})
	}

	schema := &openapi3.Schema{
		Type:       openapi3.TypeObject,
		Properties: make(openapi3.Schemas),
	}
	schema.Description = docOf(m)

	if m.BaseModel != nil {
		schema.AllOf = openapi3.SchemaRefs{e.schemaFor(m.BaseModel)}
	}
	if typegraph.IsRecordModel(m) {
		schema.AdditionalProperties = openapi3.AdditionalProperties{Schema: e.schemaFor(m.Indexer.Value)}
	}

	for _, prop := range m.Properties.All() {
		if typegraph.IsMetadata(prop) || typegraph.HasNoneVisibility(prop) || isVoid(prop.Type) {
			continue
		}

		name := naming.WireName(prop)
		propSchema := e.schemaFor(prop.Type)
		if propSchema.Ref == "" {
			if doc := docOf(prop); doc != "" {
				propSchema.Value.Description = doc
			}
			if prop.DefaultValue != nil {
				propSchema.Value.Default = prop.DefaultValue
			}
			if slices.Equal(prop.Visibility, []string{"read"}) {
				propSchema.Value.ReadOnly = true
			}
		}
		schema.Properties[name] = propSchema

		if !prop.Optional {
			schema.Required = append(schema.Required, name)
		}
	}

	if len(schema.Properties) == 0 {
		schema.Properties = nil
	}
	return inline(schema)
}

func isVoid(t typegraph.Type) bool {
	intrinsic, ok := t.(*typegraph.Intrinsic)
	return ok && (intrinsic.Name == "void" || intrinsic.Name == "never")
}

func scalarSchema(s *typegraph.Scalar) *openapi3.Schema {
	for base := s; base != nil; base = base.BaseScalar {
		if base.Namespace == nil || base.Namespace.Name != typegraph.LibraryNamespace {
			continue
		}
		if f, ok := scalarFormats[base.Name]; ok {
			return &openapi3.Schema{Type: f.typ, Format: f.format}
		}
	}
	return &openapi3.Schema{}
}

func memberValue(member *typegraph.EnumMember) any {
	if member.Value != nil {
		return member.Value
	}
	return member.Name
}

func enumSchema(en *typegraph.Enum) *openapi3.Schema {
	schema := &openapi3.Schema{Type: openapi3.TypeString}
	for _, member := range en.Members.All() {
		value := memberValue(member)
		if _, ok := value.(float64); ok {
			schema.Type = openapi3.TypeNumber
		}
		schema.Enum = append(schema.Enum, value)
	}
	schema.Description = docOf(en)
	schema.Extensions = map[string]any{
		"x-ms-enum": map[string]any{
			"name":          en.Name,
			"modelAsString": true,
		},
	}
	return schema
}

func literalSchema(value any) *openapi3.Schema {
	schema := &openapi3.Schema{Enum: []any{value}}
	switch value.(type) {
	case string:
		schema.Type = openapi3.TypeString
	case float64:
		schema.Type = openapi3.TypeNumber
	case bool:
		schema.Type = openapi3.TypeBoolean
	}
	return schema
}

// unionSchema maps unions of literals to enums and a single type or null to a nullable schema.
// Any other union has no Swagger 2.0 equivalent and is left untyped.
func (e *emitter) unionSchema(u *typegraph.Union) *openapi3.SchemaRef {
	var (
		values   []any
		typ      string
		others   []typegraph.Type
		nullable bool
	)

	for _, variant := range u.Variants {
		switch v := variant.Type.(type) {
		case *typegraph.Intrinsic:
			if v.Name == "null" {
				nullable = true
				continue
			}
			others = append(others, v)
		case *typegraph.StringLiteral, *typegraph.NumericLiteral, *typegraph.BooleanLiteral, *typegraph.EnumMember:
			literal := e.schemaFor(v).Value
			if typ != "" && typ != literal.Type {
				others = append(others, v)
				continue
			}
			typ = literal.Type
			values = append(values, literal.Enum...)
		default:
			others = append(others, v)
		}
	}

	var ref *openapi3.SchemaRef
	switch {
	case len(others) == 0 && len(values) > 0:
		ref = inline(&openapi3.Schema{Type: typ, Enum: values})
	case len(others) == 1 && len(values) == 0:
		ref = e.schemaFor(others[0])
	case len(others) == 1 && len(values) > 0:
		if scalar, ok := others[0].(*typegraph.Scalar); ok && scalarSchema(scalar).Type == typ {
			// An open enum, e.g. "a" | "b" | string.
			ref = inline(scalarSchema(scalar))
			ref.Value.Enum = values
			ref.Value.Extensions = map[string]any{"x-ms-enum": map[string]any{"name": u.Name, "modelAsString": true}}
		}
	}
	if ref == nil {
		ref = inline(&openapi3.Schema{})
	}

	if nullable && ref.Ref == "" {
		if ref.Value.Extensions == nil {
			ref.Value.Extensions = make(map[string]any)
		}
		ref.Value.Extensions["x-nullable"] = true
	}
	return ref
}

func docOf(t typegraph.Type) string {
	for _, dec := range typegraph.DecoratorsNamed(t, DecoratorDoc) {
		if len(dec.Args) > 0 {
			if s, ok := dec.Args[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
