package rules

import (
	"context"

	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/validation"
)

const RuleUnsupportedType = "unsupported-type"

var unsupportedScalars = map[string]struct{}{
	"int8":   {},
	"int16":  {},
	"uint8":  {},
	"uint16": {},
	"uint32": {},
	"uint64": {},
}

var unsupportedTypeMessages = validation.Messages{
	validation.DefaultMessageID: "Model type '{typeName}' is not supported in Azure resource manager APIs.",
}

// UnsupportedTypeRule reports property and return types using integer scalars resource manager
// APIs cannot represent.
type UnsupportedTypeRule struct{}

func (r *UnsupportedTypeRule) ID() string       { return RuleUnsupportedType }
func (r *UnsupportedTypeRule) Category() string { return CategoryARM }
func (r *UnsupportedTypeRule) Summary() string {
	return "Narrow and unsigned integers are not supported."
}

func (r *UnsupportedTypeRule) Description() string {
	return "Check for unsupported ARM types. The int8, int16, uint8, uint16, uint32 and uint64 scalars are reported on properties and operation return types, including when used as a template argument."
}

func (r *UnsupportedTypeRule) Link() string {
	return "https://azure.github.io/typespec-azure/docs/libraries/azure-resource-manager/rules/unsupported-type"
}

func (r *UnsupportedTypeRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}

func (r *UnsupportedTypeRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*typegraph.Program], config *linter.RuleConfig) []error {
	program := programOf(docInfo)
	if program == nil {
		return nil
	}

	var errs []error

	for item := range typegraph.Walk(ctx, program) {
		check := func(target, t typegraph.Type) {
			for _, name := range unsupportedScalarsIn(t, nil) {
				errs = append(errs, report(r, config, unsupportedTypeMessages, validation.DefaultMessageID, map[string]string{"typeName": name}, target, nil, item.Location))
			}
		}

		_ = item.Match(typegraph.Matcher{
			ModelProperty: func(prop *typegraph.ModelProperty) error {
				if !isSpreadCopy(prop) {
					check(prop, prop.Type)
				}
				return nil
			},
			Operation: func(op *typegraph.Operation) error {
				check(op, op.ReturnType)
				return nil
			},
		})
	}

	return errs
}

// unsupportedScalarsIn returns the names of the unsupported scalars t is or is instantiated with.
func unsupportedScalarsIn(t typegraph.Type, seen map[typegraph.Type]struct{}) []string {
	var args []typegraph.Type
	var names []string

	switch t := t.(type) {
	case *typegraph.Scalar:
		if _, ok := unsupportedScalars[t.Name]; ok {
			names = append(names, t.Name)
		}
		args = t.TemplateArgs
	case *typegraph.Model:
		args = t.TemplateArgs
	default:
		return nil
	}

	if len(args) == 0 {
		return names
	}
	if seen == nil {
		seen = make(map[typegraph.Type]struct{})
	}
	if _, ok := seen[t]; ok {
		return names
	}
	seen[t] = struct{}{}

	for _, arg := range args {
		names = append(names, unsupportedScalarsIn(arg, seen)...)
	}
	return names
}
