// Package testutils holds helpers shared by the package tests.
package testutils

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// LoadProgram loads an inline snapshot and fails the test on any validation or load error.
func LoadProgram(t testing.TB, snapshot string) *typegraph.Program {
	t.Helper()

	program, validationErrs, err := typegraph.Unmarshal(context.Background(), strings.NewReader(snapshot))
	require.NoError(t, errors.Join(validationErrs...), "snapshot should be valid")
	require.NoError(t, err, "snapshot should load")
	require.NotNil(t, program)

	return program
}

// Lookup resolves a fully qualified name and asserts the node has the expected type.
func Lookup[T typegraph.Type](t testing.TB, program *typegraph.Program, fullName string) T {
	t.Helper()

	found, ok := program.Lookup(fullName)
	require.True(t, ok, "%s should be declared", fullName)

	typed, ok := found.(T)
	require.True(t, ok, "%s should be a %T, found %s", fullName, typed, found.Kind())

	return typed
}

// PropertyType returns the type of a property addressed by its fully qualified name.
func PropertyType(t testing.TB, program *typegraph.Program, fullName string) typegraph.Type {
	t.Helper()
	return Lookup[*typegraph.ModelProperty](t, program, fullName).Type
}

// ReturnModel returns the anonymous model returned by the operation with the given fully qualified name.
func ReturnModel(t testing.TB, program *typegraph.Program, fullName string) *typegraph.Model {
	t.Helper()

	op := Lookup[*typegraph.Operation](t, program, fullName)
	m, ok := op.ReturnType.(*typegraph.Model)
	require.True(t, ok, "%s should return a model", fullName)

	return m
}

func CreateStringYamlNode(value string, line, column int) *yaml.Node {
	return &yaml.Node{
		Value:  value,
		Kind:   yaml.ScalarNode,
		Tag:    "!!str",
		Line:   line,
		Column: column,
	}
}
