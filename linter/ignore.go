package linter

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/speakeasy-api/jsonpath/pkg/jsonpath"
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath/config"
	"github.com/speakeasy-api/schemagraph/validation"
	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"
	"gopkg.in/yaml.v3"
)

// selector selects nodes of a document.
type selector interface {
	Query(root *yaml.Node) []*yaml.Node
}

type legacySelector struct {
	path *yamlpath.Path
}

func (l legacySelector) Query(root *yaml.Node) []*yaml.Node {
	// yamlpath never fails once the path is compiled
	nodes, _ := l.path.Find(root)
	return nodes
}

// compileSelector compiles an RFC 9535 JSONPath expression, falling back to the legacy
// yamlpath dialect for expressions RFC 9535 rejects.
func compileSelector(expr string) (selector, error) {
	path, err := jsonpath.NewPath(expr, config.WithPropertyNameExtension())
	if err == nil {
		return path, nil
	}

	legacy, legacyErr := yamlpath.NewPath(expr)
	if legacyErr != nil {
		return nil, fmt.Errorf("invalid jsonpath %q: %w", expr, err)
	}
	return legacySelector{path: legacy}, nil
}

// ignoreMatcher is a compiled IgnorePattern.
type ignoreMatcher struct {
	rule    string
	message *regexp.Regexp
	// nodes holds every node at or below a selected node, nil when the pattern has no path
	nodes map[*yaml.Node]struct{}
}

func compileIgnores(patterns []IgnorePattern, root *yaml.Node) ([]ignoreMatcher, error) {
	matchers := make([]ignoreMatcher, 0, len(patterns))
	for i, pattern := range patterns {
		m := ignoreMatcher{rule: pattern.Rule}

		if pattern.MessagePattern != "" {
			re, err := regexp.Compile(pattern.MessagePattern)
			if err != nil {
				return nil, ErrInvalidConfig.Wrap(fmt.Errorf("ignores[%d].message_pattern: %w", i, err))
			}
			m.message = re
		}

		if pattern.Path != "" {
			sel, err := compileSelector(pattern.Path)
			if err != nil {
				return nil, ErrInvalidConfig.Wrap(fmt.Errorf("ignores[%d].path: %w", i, err))
			}
			m.nodes = make(map[*yaml.Node]struct{})
			if root != nil {
				for _, node := range sel.Query(root) {
					collectNodes(node, m.nodes)
				}
			}
		}

		matchers = append(matchers, m)
	}
	return matchers, nil
}

func collectNodes(node *yaml.Node, into map[*yaml.Node]struct{}) {
	if node == nil {
		return
	}
	if _, seen := into[node]; seen {
		return
	}
	into[node] = struct{}{}
	for _, child := range node.Content {
		collectNodes(child, into)
	}
}

func (m ignoreMatcher) matches(vErr *validation.Error) bool {
	if m.rule != "" && m.rule != vErr.Rule {
		return false
	}
	if m.message != nil && (vErr.UnderlyingError == nil || !m.message.MatchString(vErr.UnderlyingError.Error())) {
		return false
	}
	if m.nodes != nil {
		if _, ok := m.nodes[vErr.Node]; !ok || vErr.Node == nil {
			return false
		}
	}
	return true
}

func filterIgnored(errs []error, matchers []ignoreMatcher) []error {
	if len(matchers) == 0 {
		return errs
	}

	kept := errs[:0]
	for _, err := range errs {
		var vErr *validation.Error
		if errors.As(err, &vErr) && ignored(vErr, matchers) {
			continue
		}
		kept = append(kept, err)
	}
	return kept
}

func ignored(vErr *validation.Error, matchers []ignoreMatcher) bool {
	for _, m := range matchers {
		if m.matches(vErr) {
			return true
		}
	}
	return false
}
