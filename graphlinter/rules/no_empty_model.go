package rules

import (
	"context"

	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/validation"
)

const RuleNoEmptyModel = "no-empty-model"

var noEmptyModelMessages = validation.Messages{
	validation.DefaultMessageID: "Properties with type:object must have definition of a reference model.",
}

type NoEmptyModelRule struct{}

func (r *NoEmptyModelRule) ID() string       { return RuleNoEmptyModel }
func (r *NoEmptyModelRule) Category() string { return CategoryARM }
func (r *NoEmptyModelRule) Summary() string {
	return "Object properties must reference a model definition."
}

func (r *NoEmptyModelRule) Description() string {
	return "ARM Properties with type:object that don't reference a model definition are not allowed. ARM doesn't allow generic type definitions as this leads to bad customer experience."
}

func (r *NoEmptyModelRule) Link() string {
	return "https://azure.github.io/typespec-azure/docs/libraries/azure-resource-manager/rules/no-empty-model"
}

func (r *NoEmptyModelRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}

func (r *NoEmptyModelRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*typegraph.Program], config *linter.RuleConfig) []error {
	program := programOf(docInfo)
	if program == nil {
		return nil
	}

	var errs []error

	for item := range typegraph.Walk(ctx, program) {
		_ = item.Match(typegraph.Matcher{
			ModelProperty: func(prop *typegraph.ModelProperty) error {
				if isSpreadCopy(prop) {
					return nil
				}
				if m, ok := prop.Type.(*typegraph.Model); ok && isEmptyObject(m) {
					errs = append(errs, report(r, config, noEmptyModelMessages, validation.DefaultMessageID, nil, prop, nil, item.Location))
				}
				return nil
			},
		})
	}

	return errs
}

// isEmptyObject reports whether m declares no properties of its own and has no record or array
// indexer. Inherited properties do not count.
func isEmptyObject(m *typegraph.Model) bool {
	return m.Properties.Len() == 0 && m.Indexer == nil
}
