package linter

import "gopkg.in/yaml.v3"

// DocumentInfo is what a rule sees: the decoded document plus where it came from.
type DocumentInfo[T any] struct {
	Document T
	// Location is a file path or "stdin", it is copied onto the Output.
	Location string
	// Root is the snapshot's YAML tree. Path ignores are resolved against it and match nothing
	// when it is nil.
	Root *yaml.Node
}

func NewDocumentInfo[T any](doc T, location string, root *yaml.Node) *DocumentInfo[T] {
	return &DocumentInfo[T]{Document: doc, Location: location, Root: root}
}
