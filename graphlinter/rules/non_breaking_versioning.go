package rules

import (
	"context"

	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/validation"
	"github.com/speakeasy-api/schemagraph/versioning"
)

const RuleNonBreakingVersioning = "non-breaking-versioning"

// Message ids reported by NonBreakingVersioningRule.
const (
	MessageAddedRequired     = "addedRequired"
	MessageOptionalNoDefault = "optionalNoDefault"
)

var nonBreakingVersioningMessages = validation.Messages{
	validation.DefaultMessageID: "Using {action} is not backward compatible.",
	MessageAddedRequired:        "Adding required property is a breaking change.",
	MessageOptionalNoDefault:    "Property made optional should have a default value.",
}

// NonBreakingVersioningRule reports versioning decorators that change an API in a way existing
// clients cannot follow.
type NonBreakingVersioningRule struct {
	// Markers resolves the versioning markers of a node, versioning.DecoratorMarkers when nil.
	Markers versioning.Markers
}

func (r *NonBreakingVersioningRule) ID() string {
	return RuleNonBreakingVersioning
}

func (r *NonBreakingVersioningRule) Category() string {
	return CategoryVersioning
}

func (r *NonBreakingVersioningRule) Summary() string {
	return "Versioned changes must be backward compatible."
}

func (r *NonBreakingVersioningRule) Description() string {
	return "Check that only backward compatible versioning change are done to a service. Removing or renaming models, properties and operations, adding required properties and making properties optional without a default all break clients of earlier versions."
}

func (r *NonBreakingVersioningRule) Link() string {
	return "https://azure.github.io/typespec-azure/docs/libraries/azure-core/rules/non-breaking-versioning"
}

func (r *NonBreakingVersioningRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}

func (r *NonBreakingVersioningRule) Rationale() string {
	return "Clients generated for an earlier version keep sending and expecting the shapes of that version."
}

func (r *NonBreakingVersioningRule) BadExample() string {
	return `properties:
  - name: color
    type: string
    decorators:
      - name: TypeSpec.Versioning.added
        args: [{ref: Versions.v2}]`
}

func (r *NonBreakingVersioningRule) GoodExample() string {
	return `properties:
  - name: color
    type: string
    optional: true
    decorators:
      - name: TypeSpec.Versioning.added
        args: [{ref: Versions.v2}]`
}

func (r *NonBreakingVersioningRule) markers() versioning.Markers {
	if r.Markers == nil {
		return versioning.DecoratorMarkers{}
	}
	return r.Markers
}

func (r *NonBreakingVersioningRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*typegraph.Program], config *linter.RuleConfig) []error {
	program := programOf(docInfo)
	if program == nil {
		return nil
	}

	markers := r.markers()
	var errs []error

	for item := range typegraph.Walk(ctx, program) {
		breaking := func(t typegraph.Type) {
			if len(markers.RemovedOn(t)) > 0 {
				errs = append(errs, report(r, config, nonBreakingVersioningMessages, validation.DefaultMessageID, map[string]string{"action": "@removed"}, t, nil, item.Location))
			}
			if len(markers.RenamedFrom(t)) > 0 {
				errs = append(errs, report(r, config, nonBreakingVersioningMessages, validation.DefaultMessageID, map[string]string{"action": "@renamedFrom"}, t, nil, item.Location))
			}
		}

		_ = item.Match(typegraph.Matcher{
			Model: func(m *typegraph.Model) error {
				breaking(m)
				return nil
			},
			Operation: func(op *typegraph.Operation) error {
				breaking(op)
				return nil
			},
			ModelProperty: func(prop *typegraph.ModelProperty) error {
				if isSpreadCopy(prop) {
					return nil
				}
				breaking(prop)

				if len(markers.AddedOn(prop)) > 0 && !prop.Optional {
					errs = append(errs, report(r, config, nonBreakingVersioningMessages, MessageAddedRequired, nil, prop, nil, item.Location))
				}
				if markers.MadeOptionalOn(prop) != nil && prop.DefaultValue == nil {
					errs = append(errs, report(r, config, nonBreakingVersioningMessages, MessageOptionalNoDefault, nil, prop, nil, item.Location))
				}
				return nil
			},
		})
	}

	return errs
}
