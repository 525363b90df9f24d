package rules

import (
	"context"

	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/validation"
	"gopkg.in/yaml.v3"
)

// namespaceUsage finds project declarations that use library declarations nested in a namespace
// with a given name, e.g. Azure.Core.Foundations.Private.
type namespaceUsage struct {
	rule      linter.Rule
	namespace string
	messages  validation.Messages
}

// referencedNamespace returns the namespace referenced is declared in when a project owned
// origin may not use it.
func (u namespaceUsage) referencedNamespace(origin, referenced typegraph.Type) (string, bool) {
	if origin == nil || referenced == nil {
		return "", false
	}
	if origin.Meta().Origin != typegraph.OriginProject || referenced.Meta().Origin == typegraph.OriginProject {
		return "", false
	}
	if _, ok := typegraph.IsInNamespaceNamed(referenced, u.namespace); !ok {
		return "", false
	}
	return typegraph.NamespaceFullName(typegraph.NamespaceOf(referenced)), true
}

func (u namespaceUsage) run(ctx context.Context, docInfo *programInfo, config *linter.RuleConfig) []error {
	program := programOf(docInfo)
	if program == nil {
		return nil
	}

	var errs []error

	for item := range typegraph.Walk(ctx, program) {
		reportNamespace := func(target typegraph.Type, node *yaml.Node, ns string) {
			errs = append(errs, report(u.rule, config, u.messages, validation.DefaultMessageID, map[string]string{"ns": ns}, target, node, item.Location))
		}
		checkReference := func(origin, referenced typegraph.Type) {
			if ns, ok := u.referencedNamespace(origin, referenced); ok {
				reportNamespace(origin, nil, ns)
			}
		}
		checkDecorators := func(t typegraph.Type) {
			for _, dec := range t.Meta().Decorators {
				if dec.Definition == nil {
					continue
				}
				if ns, ok := u.referencedNamespace(t, dec.Definition); ok {
					reportNamespace(t, dec.Source, ns)
				}
			}
		}

		_ = item.Match(typegraph.Matcher{
			Model: func(m *typegraph.Model) error {
				checkDecorators(m)
				if m.BaseModel != nil {
					checkReference(m, m.BaseModel)
				}
				return nil
			},
			ModelProperty: func(prop *typegraph.ModelProperty) error {
				if isSpreadCopy(prop) {
					return nil
				}
				checkDecorators(prop)
				checkReference(prop, prop.Type)
				return nil
			},
			UnionVariant: func(v *typegraph.UnionVariant) error {
				checkDecorators(v)
				checkReference(v, v.Type)
				return nil
			},
			Operation: func(op *typegraph.Operation) error {
				checkDecorators(op)
				return nil
			},
			Interface: func(iface *typegraph.Interface) error {
				checkDecorators(iface)
				return nil
			},
			Enum: func(e *typegraph.Enum) error {
				checkDecorators(e)
				return nil
			},
			Union: func(un *typegraph.Union) error {
				checkDecorators(un)
				return nil
			},
		})
	}

	return errs
}
