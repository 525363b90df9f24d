package typegraph_test

import (
	"testing"

	"github.com/speakeasy-api/schemagraph/testutils"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceFullName_Success(t *testing.T) {
	t.Parallel()

	program := typegraph.NewProgram()
	foo := program.EnsureNamespace("Foo.Private.Bar", typegraph.OriginLibrary)

	assert.Equal(t, "Foo.Private.Bar", typegraph.NamespaceFullName(foo))
	assert.Equal(t, "Foo.Private", typegraph.NamespaceFullName(foo.Namespace))
	assert.Empty(t, typegraph.NamespaceFullName(program.Global))

	ns, ok := typegraph.IsInNamespaceNamed(foo, "Private")
	require.True(t, ok)
	assert.Equal(t, "Foo.Private", typegraph.NamespaceFullName(ns))

	_, ok = typegraph.IsInNamespaceNamed(foo, "Legacy")
	assert.False(t, ok)
}

func TestTypeName_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, `
namespaces:
  - name: Contoso
    models:
      - name: Widget
        properties:
          - name: tags
            type: {array: string}
          - name: shape
            type:
              union: [{literal: round}, {literal: 3}, {literal: true}]
`)

	assert.Equal(t, "Contoso.Widget", typegraph.TypeName(testutils.Lookup[*typegraph.Model](t, program, "Contoso.Widget")))
	assert.Equal(t, "TypeSpec.Array<TypeSpec.string>", typegraph.TypeName(testutils.PropertyType(t, program, "Contoso.Widget.tags")))
	assert.Equal(t, `"round" | 3 | true`, typegraph.TypeName(testutils.PropertyType(t, program, "Contoso.Widget.shape")))
	assert.Equal(t, "TypeSpec.uint8", typegraph.TypeName(program.Scalar("uint8")))
}

func TestScalarIs_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, `
namespaces:
  - name: Contoso
    scalars:
      - name: smallCount
        extends: uint8
`)

	small := testutils.Lookup[*typegraph.Scalar](t, program, "Contoso.smallCount")
	assert.True(t, typegraph.ScalarIs(small, "uint8"))
	assert.True(t, typegraph.ScalarIs(small, "integer"))
	assert.False(t, typegraph.ScalarIs(small, "int32"))
	assert.True(t, typegraph.ScalarIs(program.Scalar("int32"), "int64"))
}

func TestVisibility_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		visibility []string
		query      string
		visible    bool
		none       bool
	}{
		{name: "unset is visible everywhere", visibility: nil, query: "read", visible: true},
		{name: "matching visibility", visibility: []string{"read", "create"}, query: "create", visible: true},
		{name: "other visibility", visibility: []string{"read"}, query: "update", visible: false},
		{name: "none visibility", visibility: []string{}, query: "", visible: false, none: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prop := &typegraph.ModelProperty{Name: "p", Visibility: tt.visibility}
			assert.Equal(t, tt.visible, typegraph.IsVisible(prop, tt.query))
			assert.Equal(t, tt.none, typegraph.HasNoneVisibility(prop))
		})
	}
}

func TestIsMetadata_Success(t *testing.T) {
	t.Parallel()

	for kind, expected := range map[typegraph.HTTPKind]bool{
		typegraph.HTTPNone:       false,
		typegraph.HTTPPath:       true,
		typegraph.HTTPQuery:      true,
		typegraph.HTTPHeader:     true,
		typegraph.HTTPCookie:     true,
		typegraph.HTTPStatusCode: true,
		typegraph.HTTPBody:       false,
		typegraph.HTTPBodyRoot:   false,
	} {
		assert.Equal(t, expected, typegraph.IsMetadata(&typegraph.ModelProperty{HTTP: kind}), "kind %q", kind)
	}
}

func TestEffectiveModelType_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, `
namespaces:
  - name: Contoso
    models:
      - name: Widget
        properties:
          - name: id
            type: string
          - name: weight
            type: int32
      - name: Partial
        properties:
          - name: code
            type: string
    operations:
      - name: spreadAll
        returns:
          model:
            properties:
              - spread: Widget
      - name: spreadWithHeader
        returns:
          model:
            properties:
              - spread: Widget
              - name: etag
                type: string
                http: header
      - name: mixed
        returns:
          model:
            properties:
              - spread: Widget
              - spread: Partial
              - name: extra
                type: string
`)

	widget := testutils.Lookup[*typegraph.Model](t, program, "Contoso.Widget")

	all := testutils.ReturnModel(t, program, "Contoso.spreadAll")
	assert.Same(t, widget, typegraph.EffectiveModelType(all, nil))

	withHeader := testutils.ReturnModel(t, program, "Contoso.spreadWithHeader")
	assert.Same(t, withHeader, typegraph.EffectiveModelType(withHeader, nil), "the header has no named source")
	payloadOnly := func(p *typegraph.ModelProperty) bool { return !typegraph.IsMetadata(p) }
	assert.Same(t, widget, typegraph.EffectiveModelType(withHeader, payloadOnly))

	mixed := testutils.ReturnModel(t, program, "Contoso.mixed")
	assert.Same(t, mixed, typegraph.EffectiveModelType(mixed, nil))

	assert.Same(t, widget, typegraph.EffectiveModelType(widget, nil), "named models are their own effective type")
}
