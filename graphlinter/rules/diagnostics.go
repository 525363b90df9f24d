package rules

import (
	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/validation"
	"gopkg.in/yaml.v3"
)

type programInfo = linter.DocumentInfo[*typegraph.Program]

func programOf(docInfo *programInfo) *typegraph.Program {
	if docInfo == nil {
		return nil
	}
	return docInfo.Document
}

// report creates the diagnostic of rule for target. node overrides the source node of target
// when not nil.
func report(rule linter.Rule, config *linter.RuleConfig, messages validation.Messages, messageID string, params map[string]string, target typegraph.Type, node *yaml.Node, loc typegraph.Locations) error {
	if node == nil {
		node = target.Meta().Source
	}

	vErr := validation.NewValidationError(
		config.GetSeverity(rule.DefaultSeverity()),
		rule.ID(),
		messages.Error(messageID, params),
		node,
	).WithTarget(target).WithDocumentLocation(loc.ToPath())
	if messageID != validation.DefaultMessageID {
		vErr = vErr.WithMessageID(messageID)
	}
	return vErr
}

// isSpreadCopy reports whether prop was copied from another declaration. Copies are not
// checked, their source property is.
func isSpreadCopy(prop *typegraph.ModelProperty) bool {
	return prop.SourceProperty != nil
}
