package naming_test

import (
	"testing"

	"github.com/speakeasy-api/schemagraph/naming"
	"github.com/stretchr/testify/assert"
)

func TestPascalCase_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: ""},
		{input: "nested", expected: "Nested"},
		{input: "fooBar", expected: "FooBar"},
		{input: "foo_bar-baz", expected: "FooBarBaz"},
		{input: "RequestOptions", expected: "RequestOptions"},
		{input: "XMLHttpRequest", expected: "XmlHttpRequest"},
		{input: "api-version", expected: "ApiVersion"},
		{input: "ETag", expected: "ETag"},
		{input: "version 2", expected: "Version_2"},
		{input: "v2", expected: "V2"},
		{input: "2fa", expected: "2fa"},
		{input: "  spaced  out ", expected: "SpacedOut"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, naming.PascalCase(tt.input))
		})
	}
}

func TestSingular_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "Items", expected: "Item"},
		{input: "labels", expected: "label"},
		{input: "children", expected: "child"},
		{input: "Request", expected: "Request"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, naming.Singular(tt.input))
		})
	}
}
