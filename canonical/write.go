package canonical

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"gopkg.in/yaml.v3"
)

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc *openapi2.T) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal canonical document: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write canonical document: %w", err)
	}
	return nil
}

// WriteYAML writes doc as YAML. The document is marshaled through its JSON form so extensions
// are kept.
func WriteYAML(w io.Writer, doc *openapi2.T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal canonical document: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("failed to convert canonical document: %w", err)
	}
	clearStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("failed to write canonical document: %w", err)
	}
	return enc.Close()
}

// clearStyle drops the flow styles and quoting inherited from the JSON source.
func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

// Write writes doc to w as YAML when path has a .yaml or .yml extension, as JSON otherwise.
func Write(w io.Writer, doc *openapi2.T, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return WriteYAML(w, doc)
	default:
		return WriteJSON(w, doc)
	}
}
