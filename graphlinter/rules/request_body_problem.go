package rules

import (
	"context"

	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/validation"
)

const RuleRequestBodyProblem = "request-body-problem"

// MessageArrayBody is reported for request bodies typed as a bare array.
const MessageArrayBody = "array"

var requestBodyProblemMessages = validation.Messages{
	MessageArrayBody: "Request body should not be of raw array type. Consider creating a container model that can add properties over time to avoid introducing breaking changes.",
}

// RequestBodyProblemRule reports operations whose explicit body parameter is a bare array.
type RequestBodyProblemRule struct{}

func (r *RequestBodyProblemRule) ID() string       { return RuleRequestBodyProblem }
func (r *RequestBodyProblemRule) Category() string { return CategoryHTTP }
func (r *RequestBodyProblemRule) Summary() string {
	return "Request bodies should be models."
}

func (r *RequestBodyProblemRule) Description() string {
	return "Request body should not be of raw array type. A body typed as an array cannot gain top level fields later without a breaking change, wrap it in a model instead."
}

func (r *RequestBodyProblemRule) Link() string {
	return "https://azure.github.io/typespec-azure/docs/libraries/azure-core/rules/request-body-problem"
}

func (r *RequestBodyProblemRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}

func (r *RequestBodyProblemRule) Rationale() string {
	return "A container model can add properties such as a continuation token without breaking clients."
}

func (r *RequestBodyProblemRule) BadExample() string {
	return `parameters:
  - name: widgets
    type: {array: Widget}
    http: body`
}

func (r *RequestBodyProblemRule) GoodExample() string {
	return `parameters:
  - name: body
    type: WidgetList
    http: body`
}

func (r *RequestBodyProblemRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*typegraph.Program], config *linter.RuleConfig) []error {
	program := programOf(docInfo)
	if program == nil {
		return nil
	}

	var errs []error

	for item := range typegraph.Walk(ctx, program) {
		_ = item.Match(typegraph.Matcher{
			Operation: func(op *typegraph.Operation) error {
				if op.Parameters == nil {
					return nil
				}
				for _, param := range op.Parameters.Properties.All() {
					if param.HTTP != typegraph.HTTPBody && param.HTTP != typegraph.HTTPBodyRoot {
						continue
					}
					if m, ok := param.Type.(*typegraph.Model); ok && m.Name == "Array" {
						errs = append(errs, report(r, config, requestBodyProblemMessages, MessageArrayBody, nil, op, nil, item.Location))
					}
				}
				return nil
			},
		})
	}

	return errs
}
