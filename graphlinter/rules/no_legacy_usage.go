package rules

import (
	"context"

	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/validation"
)

const RuleNoLegacyUsage = "no-legacy-usage"

// LegacyNamespace is the name of namespaces holding declarations kept for brownfield services.
const LegacyNamespace = "Legacy"

type NoLegacyUsageRule struct{}

func (r *NoLegacyUsageRule) ID() string       { return RuleNoLegacyUsage }
func (r *NoLegacyUsageRule) Category() string { return CategoryReferences }
func (r *NoLegacyUsageRule) Summary() string {
	return "Legacy library declarations should not be used."
}

func (r *NoLegacyUsageRule) Description() string {
	return "Linter warning against using elements from the Legacy namespace."
}

func (r *NoLegacyUsageRule) Link() string {
	return "https://azure.github.io/typespec-azure/docs/libraries/azure-core/rules/no-legacy-usage"
}

func (r *NoLegacyUsageRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}

func (r *NoLegacyUsageRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*typegraph.Program], config *linter.RuleConfig) []error {
	return namespaceUsage{
		rule:      r,
		namespace: LegacyNamespace,
		messages: validation.Messages{
			validation.DefaultMessageID: `Referencing elements inside Legacy namespace "{ns}" is not allowed.`,
		},
	}.run(ctx, docInfo, config)
}
