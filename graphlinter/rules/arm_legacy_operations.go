package rules

import (
	"context"

	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/validation"
)

const RuleARMLegacyOperationsDiscourage = "arm-legacy-operations-discourage"

const (
	legacyOperationsInterface = "LegacyOperations"
	legacyOperationsNamespace = "Azure.ResourceManager.Legacy"
)

var armLegacyOperationsMessages = validation.Messages{
	validation.DefaultMessageID: "Avoid using the LegacyOperations interface unless migrating a brownfield service.",
}

type ARMLegacyOperationsDiscourageRule struct{}

func (r *ARMLegacyOperationsDiscourageRule) ID() string       { return RuleARMLegacyOperationsDiscourage }
func (r *ARMLegacyOperationsDiscourageRule) Category() string { return CategoryARM }
func (r *ARMLegacyOperationsDiscourageRule) Summary() string {
	return "LegacyOperations is for brownfield services only."
}

func (r *ARMLegacyOperationsDiscourageRule) Description() string {
	return "Verify the usage of LegacyOperations interface."
}

func (r *ARMLegacyOperationsDiscourageRule) Link() string {
	return ""
}

func (r *ARMLegacyOperationsDiscourageRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}

func (r *ARMLegacyOperationsDiscourageRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*typegraph.Program], config *linter.RuleConfig) []error {
	program := programOf(docInfo)
	if program == nil {
		return nil
	}

	var errs []error

	for item := range typegraph.Walk(ctx, program) {
		_ = item.Match(typegraph.Matcher{
			Interface: func(iface *typegraph.Interface) error {
				for _, source := range iface.SourceInterfaces {
					if source.Name == legacyOperationsInterface && typegraph.NamespaceFullName(source.Namespace) == legacyOperationsNamespace {
						errs = append(errs, report(r, config, armLegacyOperationsMessages, validation.DefaultMessageID, nil, iface, nil, item.Location))
						break
					}
				}
				return nil
			},
		})
	}

	return errs
}
