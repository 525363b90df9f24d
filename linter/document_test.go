package linter_test

import (
	"testing"

	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestNewDocumentInfo(t *testing.T) {
	t.Parallel()

	doc := &MockDoc{ID: "test-doc"}
	location := "/path/to/snapshot.yaml"
	root := &yaml.Node{Kind: yaml.MappingNode}

	docInfo := linter.NewDocumentInfo(doc, location, root)

	assert.NotNil(t, docInfo)
	assert.Equal(t, doc, docInfo.Document)
	assert.Equal(t, location, docInfo.Location)
	assert.Same(t, root, docInfo.Root)
}
