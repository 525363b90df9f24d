package linter

import (
	"context"

	"github.com/speakeasy-api/schemagraph/validation"
)

// Rule describes a check over a type graph snapshot. The registry keys rules by ID, groups them by
// Category for documentation and uses DefaultSeverity unless the config overrides it.
type Rule interface {
	// ID is the kebab-case name used in configs and findings, e.g. "no-private-usage".
	ID() string
	// Category groups rules in generated docs, e.g. "versioning" or "arm".
	Category() string
	Description() string
	// Summary is a single line shown in rule listings.
	Summary() string
	// Link may be empty.
	Link() string
	DefaultSeverity() validation.Severity
}

// RuleRunner is a Rule that can check a loaded document of type T. Each finding is returned as a
// *validation.Error located at the snapshot node it concerns.
//
// Enabled rules run concurrently against the same document, so Run must only read from docInfo.
type RuleRunner[T any] interface {
	Rule

	Run(ctx context.Context, docInfo *DocumentInfo[T], config *RuleConfig) []error
}

// DocumentedRule is implemented by rules that ship snapshot excerpts for the generated reference.
type DocumentedRule interface {
	Rule

	GoodExample() string
	BadExample() string
	Rationale() string
}
