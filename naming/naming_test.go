package naming_test

import (
	"sync"
	"testing"

	"github.com/speakeasy-api/schemagraph/naming"
	"github.com/speakeasy-api/schemagraph/testutils"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contosoSnapshot = `
namespaces:
  - name: Contoso
    service:
      title: Contoso
    models:
      - name: Widget
        properties:
          - name: id
            type: string
          - name: items
            type:
              array:
                model:
                  properties:
                    - name: v
                      type: string
          - name: labels
            type:
              record:
                model:
                  properties:
                    - name: w
                      type: string
      - name: Base
        properties:
          - name: leaf
            type: Leaf
      - name: Leaf
        properties:
          - name: value
            type: string
      - name: Bag
        extends: Base
        indexer:
          key: string
          value: Leaf
        properties:
          - name: name
            type: string
      - name: Labels
        is: {record: Leaf}
        extends: Base
      - name: Tree
        properties:
          - name: children
            type: {array: Tree}
          - name: meta
            type:
              model:
                properties:
                  - name: parent
                    type: Tree
      - name: Headers
        properties:
          - name: meta
            type:
              model:
                properties:
                  - name: trace
                    type: string
            http: header
    operations:
      - name: create
        returns:
          model:
            properties:
              - name: name
                type: string
              - name: nested
                type:
                  model:
                    properties:
                      - name: x
                        type: int32
    interfaces:
      - name: Widgets
        operations:
          - name: create
            returns:
              model:
                properties:
                  - name: name
                    type: string
          - name: update
            parameters:
              - name: id
                type: string
                http: path
              - name: options
                type:
                  model:
                    properties:
                      - name: force
                        type: boolean
                http: query
              - name: shape
                type:
                  union: [{literal: round}, {literal: square}]
            returns:
              model:
                properties:
                  - name: etag
                    type:
                      model:
                        properties:
                          - name: value
                            type: string
                    http: header
`

func returnProperty(t *testing.T, program *typegraph.Program, opName, prop string) typegraph.Type {
	t.Helper()
	ret := testutils.ReturnModel(t, program, opName)
	p, ok := ret.Properties.Get(prop)
	require.True(t, ok, "%s should return a %s property", opName, prop)
	return p.Type
}

func TestGeneratedName_OperationResponse_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, contosoSnapshot)
	ctx := naming.NewContext(program)

	nested := returnProperty(t, program, "Contoso.create", "nested")
	assert.Equal(t, "CreateResponseNested", ctx.GeneratedName(nested, nil))
	assert.Equal(t, "CreateResponseNested", ctx.GeneratedName(nested, nil), "names are stable once assigned")

	create := testutils.ReturnModel(t, program, "Contoso.create")
	assert.Equal(t, "CreateResponse", ctx.GeneratedName(create, nil))

	widgetsCreate := testutils.ReturnModel(t, program, "Contoso.Widgets.create")
	assert.Equal(t, "CreateResponse1", ctx.GeneratedName(widgetsCreate, nil), "colliding names get a numeric suffix")
}

func TestGeneratedName_Paths_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, contosoSnapshot)
	update := testutils.Lookup[*typegraph.Operation](t, program, "Contoso.Widgets.update")
	shape := update.Parameters.Properties.GetOrZero("shape").Type
	shapeUnion, ok := shape.(*typegraph.Union)
	require.True(t, ok)

	tests := []struct {
		name     string
		target   typegraph.Type
		op       *typegraph.Operation
		expected string
	}{
		{
			name:     "array element is singularized",
			target:   testutils.Lookup[*typegraph.Model](t, program, "Contoso.Widget").Properties.GetOrZero("items").Type.(*typegraph.Model).Indexer.Value,
			expected: "WidgetItem",
		},
		{
			name:     "record element is singularized",
			target:   testutils.Lookup[*typegraph.Model](t, program, "Contoso.Widget").Properties.GetOrZero("labels").Type.(*typegraph.Model).Indexer.Value,
			expected: "WidgetLabel",
		},
		{
			name:     "self referencing model",
			target:   testutils.PropertyType(t, program, "Contoso.Tree.meta"),
			expected: "TreeMeta",
		},
		{
			name:     "spread request body",
			target:   shape,
			expected: "UpdateRequestShape",
		},
		{
			name:     "literal inside a union reuses the union display name",
			target:   shapeUnion.Variants[0].Type,
			op:       update,
			expected: "UpdateRequestShape1",
		},
		{
			name:     "query parameter",
			target:   update.Parameters.Properties.GetOrZero("options").Type,
			expected: "UpdateRequestOptions",
		},
		{
			name:     "response header",
			target:   returnProperty(t, program, "Contoso.Widgets.update", "etag"),
			op:       update,
			expected: "UpdateResponseEtag",
		},
	}

	ctx := naming.NewContext(program)
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ctx.GeneratedName(tt.target, tt.op), tt.name)
	}

	seen := make(map[string]typegraph.Type)
	for named, name := range ctx.GeneratedNames() {
		other, dup := seen[name]
		assert.False(t, dup, "name %q assigned to both %s and %s", name, typegraph.TypeName(other), typegraph.TypeName(named))
		seen[name] = named
	}
	assert.Len(t, seen, len(tests))
}

func TestGeneratedName_Unreachable_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, contosoSnapshot)
	ctx := naming.NewContext(program)

	contoso := testutils.Lookup[*typegraph.Namespace](t, program, "Contoso")
	orphan := typegraph.NewModel("", contoso)
	assert.Empty(t, ctx.GeneratedName(orphan, nil))
	assert.Nil(t, ctx.FindContextPath(orphan))

	headerOnly := testutils.PropertyType(t, program, "Contoso.Headers.meta")
	assert.Empty(t, ctx.GeneratedName(headerOnly, nil), "models without payload properties are not used as roots")

	count := 0
	for range ctx.GeneratedNames() {
		count++
	}
	assert.Zero(t, count, "failed lookups are not recorded")
}

func TestGeneratedName_Concurrent_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, contosoSnapshot)
	ctx := naming.NewContext(program)
	nested := returnProperty(t, program, "Contoso.create", "nested")

	names := make([]string, 16)
	var wg sync.WaitGroup
	for i := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			names[i] = ctx.GeneratedName(nested, nil)
		}()
	}
	wg.Wait()

	for _, name := range names {
		assert.Equal(t, "CreateResponseNested", name)
	}
}

func TestLocatePath_AdditionalPropertiesBeforeBase_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, contosoSnapshot)
	ctx := naming.NewContext(program)
	leaf := testutils.Lookup[*typegraph.Model](t, program, "Contoso.Leaf")

	for _, root := range []string{"Contoso.Bag", "Contoso.Labels"} {
		model := testutils.Lookup[*typegraph.Model](t, program, root)

		path := ctx.LocatePath(leaf, model, model.Name, false)
		require.Len(t, path, 2, root)
		assert.Same(t, model, path[0].Type)
		assert.Equal(t, model.Name, path[0].DisplayName)
		assert.Equal(t, naming.AdditionalPropertyName, path[1].DisplayName)
		assert.Same(t, leaf, path[1].Type)
	}
}

func TestLocatePath_Cycles_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, contosoSnapshot)
	ctx := naming.NewContext(program)

	tree := testutils.Lookup[*typegraph.Model](t, program, "Contoso.Tree")
	leaf := testutils.Lookup[*typegraph.Model](t, program, "Contoso.Leaf")
	assert.Nil(t, ctx.LocatePath(leaf, tree, "Tree", false))

	path := ctx.LocatePath(tree, tree, "Tree", false)
	require.Len(t, path, 1)
	assert.Same(t, tree, path[0].Type)
}

func TestLocatePath_Inheritance_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, contosoSnapshot)
	ctx := naming.NewContext(program)

	base := testutils.Lookup[*typegraph.Model](t, program, "Contoso.Base")
	bag := testutils.Lookup[*typegraph.Model](t, program, "Contoso.Bag")

	path := ctx.LocatePath(bag, base, "Base", false)
	require.Len(t, path, 1, "derived models are searched without keeping the root entry")
	assert.Equal(t, "Bag", path[0].DisplayName)
}
