package typegraph_test

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/speakeasy-api/schemagraph/errors"
	"github.com/speakeasy-api/schemagraph/testutils"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreSnapshot = `
namespaces:
  - name: Contoso
    service:
      title: Contoso Pets
    models:
      - name: Pet
        properties:
          - name: name
            type: string
          - name: tags
            type: {array: string}
            optional: true
      - name: Dog
        extends: Pet
        properties:
          - name: breed
            type: Breed
      - name: PetInput
        properties:
          - spread: Pet
          - name: owner
            type: string
            visibility: []
      - name: Labels
        is: {record: string}
      - name: Page
        templateParameters: [T]
        properties:
          - name: value
            type: {array: T}
    enums:
      - name: Breed
        members:
          - lab
          - name: poodle
            value: poodle-value
    interfaces:
      - name: Base
        operations:
          - name: list
            returns: {array: Pet}
      - name: Pets
        extends: [Base]
        operations:
          - name: get
            parameters:
              - name: id
                type: string
                http: path
            returns: Pet
    operations:
      - name: create
        returns:
          model:
            properties:
              - name: kind
                type: {literal: dog}
              - name: other
                type: {literal: dog}
`

func TestUnmarshal_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, petstoreSnapshot)

	contoso := testutils.Lookup[*typegraph.Namespace](t, program, "Contoso")
	require.NotNil(t, contoso.Service)
	assert.Equal(t, "Contoso Pets", contoso.Service.Title)
	assert.Equal(t, typegraph.OriginProject, contoso.Origin)
	assert.Equal(t, []string{"Pet", "Dog", "PetInput", "Labels", "Page"}, slices.Collect(contoso.Models.Keys()))

	pet := testutils.Lookup[*typegraph.Model](t, program, "Contoso.Pet")
	dog := testutils.Lookup[*typegraph.Model](t, program, "Contoso.Dog")
	assert.Same(t, pet, dog.BaseModel)
	assert.Equal(t, []*typegraph.Model{dog}, pet.DerivedModels)
	assert.Equal(t, []string{"name", "tags"}, slices.Collect(pet.Properties.Keys()))
	assert.Equal(t, 7, pet.Source.Line, "model should point at its snapshot node")

	tags := testutils.Lookup[*typegraph.ModelProperty](t, program, "Contoso.Pet.tags")
	assert.True(t, tags.Optional)
	tagsModel, ok := tags.Type.(*typegraph.Model)
	require.True(t, ok)
	assert.True(t, typegraph.IsArrayModel(tagsModel))
	assert.Same(t, program.Scalar("string"), tagsModel.Indexer.Value)
	assert.Same(t, program.ArrayOf(program.Scalar("string")), tagsModel, "array instantiations should be shared")

	breed := testutils.Lookup[*typegraph.Enum](t, program, "Contoso.Breed")
	assert.Same(t, breed, testutils.PropertyType(t, program, "Contoso.Dog.breed"))
	assert.Nil(t, breed.Members.GetOrZero("lab").Value)
	assert.Equal(t, "poodle-value", breed.Members.GetOrZero("poodle").Value)

	name := testutils.Lookup[*typegraph.ModelProperty](t, program, "Contoso.Pet.name")
	spreadName := testutils.Lookup[*typegraph.ModelProperty](t, program, "Contoso.PetInput.name")
	assert.Same(t, name, spreadName.SourceProperty)
	assert.Same(t, name, typegraph.RootSourceProperty(spreadName))
	owner := testutils.Lookup[*typegraph.ModelProperty](t, program, "Contoso.PetInput.owner")
	assert.True(t, typegraph.HasNoneVisibility(owner))

	labels := testutils.Lookup[*typegraph.Model](t, program, "Contoso.Labels")
	require.NotNil(t, labels.SourceModel)
	assert.Equal(t, "Record", labels.SourceModel.Name)
	assert.True(t, typegraph.IsRecordModel(labels))

	page := testutils.Lookup[*typegraph.Model](t, program, "Contoso.Page")
	assert.True(t, typegraph.IsTemplateDeclaration(page))
	pageValue, ok := page.Properties.GetOrZero("value").Type.(*typegraph.Model)
	require.True(t, ok)
	assert.Same(t, program.Intrinsic("unknown"), pageValue.Indexer.Value, "template parameters resolve to unknown")

	pets := testutils.Lookup[*typegraph.Interface](t, program, "Contoso.Pets")
	assert.Equal(t, []string{"list", "get"}, slices.Collect(pets.Operations.Keys()), "extended operations come first")
	list := pets.Operations.GetOrZero("list")
	assert.Same(t, pets, list.Interface)
	get := testutils.Lookup[*typegraph.Operation](t, program, "Contoso.Pets.get")
	assert.Equal(t, typegraph.HTTPPath, get.Parameters.Properties.GetOrZero("id").HTTP)
	assert.Same(t, pet, get.ReturnType)

	created := testutils.ReturnModel(t, program, "Contoso.create")
	assert.Empty(t, created.Name)
	kind := created.Properties.GetOrZero("kind").Type
	assert.Equal(t, typegraph.KindString, kind.Kind())
	assert.Same(t, kind, created.Properties.GetOrZero("other").Type, "equal literals share one node")
}

func TestUnmarshal_Decorators_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, `
namespaces:
  - name: Contoso
    decorators:
      - name: TypeSpec.Versioning.versioned
        args: [{ref: Versions}]
    enums:
      - name: Versions
        members:
          - {name: v1, value: "2024-01-01"}
          - {name: v2, value: "2024-06-01"}
    models:
      - name: Widget
        properties:
          - name: color
            type: string
            optional: true
            decorators:
              - name: TypeSpec.Versioning.added
                args: [{ref: Versions.v2}]
              - name: TypeSpec.encodedName
                args: ["application/json", "colour"]
`)

	contoso := testutils.Lookup[*typegraph.Namespace](t, program, "Contoso")
	require.Len(t, contoso.Decorators, 1)
	assert.Equal(t, "TypeSpec.Versioning.versioned", typegraph.FullName(contoso.Decorators[0].Definition))
	assert.Same(t, testutils.Lookup[*typegraph.Enum](t, program, "Contoso.Versions"), contoso.Decorators[0].Args[0])

	color := testutils.Lookup[*typegraph.ModelProperty](t, program, "Contoso.Widget.color")
	added := typegraph.DecoratorsNamed(color, "TypeSpec.Versioning.added")
	require.Len(t, added, 1)
	assert.Same(t, testutils.Lookup[*typegraph.EnumMember](t, program, "Contoso.Versions.v2"), added[0].Args[0])

	encoded := typegraph.DecoratorsNamed(color, "TypeSpec.encodedName")
	require.Len(t, encoded, 1)
	assert.Equal(t, []any{"application/json", "colour"}, encoded[0].Args)
}

func TestUnmarshal_DecoratorArgs_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     string
		expected []any
	}{
		{name: "string", args: `["hello"]`, expected: []any{"hello"}},
		{name: "integer is normalized", args: `[3]`, expected: []any{float64(3)}},
		{name: "boolean", args: `[false]`, expected: []any{false}},
		{name: "mixed", args: `["Gizmo", "csharp,java", 1.5]`, expected: []any{"Gizmo", "csharp,java", 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			program := testutils.LoadProgram(t, `
namespaces:
  - name: Contoso
    models:
      - name: Widget
        properties:
          - name: id
            type: string
            decorators:
              - name: TypeSpec.doc
                args: ` + tt.args + `
`)

			id := testutils.Lookup[*typegraph.ModelProperty](t, program, "Contoso.Widget.id")
			docs := typegraph.DecoratorsNamed(id, "TypeSpec.doc")
			require.Len(t, docs, 1)
			assert.Equal(t, tt.expected, docs[0].Args)
		})
	}
}

func TestUnmarshal_DecoratorArgs_UnresolvedReference_Error(t *testing.T) {
	t.Parallel()

	_, validationErrs, err := typegraph.Unmarshal(context.Background(), strings.NewReader(`
namespaces:
  - name: Contoso
    models:
      - name: Widget
        decorators:
          - name: TypeSpec.doc
            args: ["ok", {ref: Missing}]
`))
	require.ErrorIs(t, err, typegraph.ErrUnresolvedReference)
	require.Len(t, validationErrs, 1)

	var vErr *validation.Error
	require.True(t, errors.As(validationErrs[0], &vErr))
	assert.Contains(t, vErr.Error(), `unresolved reference "Missing"`)
	assert.Equal(t, 8, vErr.GetLineNumber(), "argument positions are kept")
}

func TestUnmarshal_LibraryOrigin_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, `
namespaces:
  - name: Foo
    library: true
    namespaces:
      - name: Private
        models:
          - name: Bar
  - name: Contoso
    models:
      - name: Widget
        extends: Foo.Private.Bar
`)

	bar := testutils.Lookup[*typegraph.Model](t, program, "Foo.Private.Bar")
	assert.Equal(t, typegraph.OriginLibrary, bar.Origin)
	widget := testutils.Lookup[*typegraph.Model](t, program, "Contoso.Widget")
	assert.Equal(t, typegraph.OriginProject, widget.Origin)
	assert.Same(t, bar, widget.BaseModel)
}

func TestUnmarshal_SchemaViolation_Error(t *testing.T) {
	t.Parallel()

	program, validationErrs, err := typegraph.Unmarshal(context.Background(), strings.NewReader(`
namespaces:
  - name: Contoso
    models:
      - properties:
          - name: id
            type: string
`))
	require.ErrorIs(t, err, typegraph.ErrInvalidSnapshot)
	assert.Nil(t, program)
	require.NotEmpty(t, validationErrs)

	var vErr *validation.Error
	require.True(t, errors.As(validationErrs[0], &vErr))
	assert.Equal(t, 5, vErr.GetLineNumber(), "error should point at the model missing its name")
}

func TestUnmarshal_UnresolvedReference_Error(t *testing.T) {
	t.Parallel()

	_, validationErrs, err := typegraph.Unmarshal(context.Background(), strings.NewReader(`
namespaces:
  - name: Contoso
    models:
      - name: Widget
        properties:
          - name: gadget
            type: Gadget
`))
	require.ErrorIs(t, err, typegraph.ErrUnresolvedReference)
	require.Len(t, validationErrs, 1)

	var vErr *validation.Error
	require.True(t, errors.As(validationErrs[0], &vErr))
	assert.Equal(t, validation.RuleValidationInvalidReference, vErr.Rule)
	assert.Contains(t, vErr.Error(), `unresolved reference "Gadget"`)
	assert.Equal(t, 8, vErr.GetLineNumber())
}

func TestUnmarshal_CircularInheritance_Error(t *testing.T) {
	t.Parallel()

	_, validationErrs, err := typegraph.Unmarshal(context.Background(), strings.NewReader(`
namespaces:
  - name: Contoso
    models:
      - name: A
        extends: B
      - name: B
        extends: A
`))
	require.ErrorIs(t, err, typegraph.ErrInvalidSnapshot)
	require.NotEmpty(t, validationErrs)

	var vErr *validation.Error
	require.True(t, errors.As(validationErrs[0], &vErr))
	assert.Equal(t, validation.RuleValidationCircularReference, vErr.Rule)
}

func TestUnmarshal_Empty_Success(t *testing.T) {
	t.Parallel()

	program, validationErrs, err := typegraph.Unmarshal(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, validationErrs)
	require.NotNil(t, program)
	assert.NotNil(t, program.Scalar("int32"))
}
