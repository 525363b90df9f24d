package rules

import (
	"context"

	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/validation"
)

const RuleNoPrivateUsage = "no-private-usage"

// PrivateNamespace is the name of namespaces holding library internals.
const PrivateNamespace = "Private"

type NoPrivateUsageRule struct{}

func (r *NoPrivateUsageRule) ID() string       { return RuleNoPrivateUsage }
func (r *NoPrivateUsageRule) Category() string { return CategoryReferences }
func (r *NoPrivateUsageRule) Summary() string {
	return "Library internals must not be used."
}

func (r *NoPrivateUsageRule) Description() string {
	return "Verify that elements inside Private namespace are not referenced. Models, properties, union variants and decorators declared by a library inside a namespace named Private may change without notice."
}

func (r *NoPrivateUsageRule) Link() string {
	return "https://azure.github.io/typespec-azure/docs/libraries/azure-core/rules/no-private-usage"
}

func (r *NoPrivateUsageRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}

func (r *NoPrivateUsageRule) Rationale() string {
	return "Private declarations are not part of the library contract."
}

func (r *NoPrivateUsageRule) BadExample() string {
	return `properties:
  - name: error
    type: Azure.Core.Foundations.Private.ErrorDetail`
}

func (r *NoPrivateUsageRule) GoodExample() string {
	return `properties:
  - name: error
    type: Azure.Core.Foundations.Error`
}

func (r *NoPrivateUsageRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*typegraph.Program], config *linter.RuleConfig) []error {
	return namespaceUsage{
		rule:      r,
		namespace: PrivateNamespace,
		messages: validation.Messages{
			validation.DefaultMessageID: `Referencing elements inside Private namespace "{ns}" is not allowed.`,
		},
	}.run(ctx, docInfo, config)
}
