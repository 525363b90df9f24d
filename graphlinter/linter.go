// Package graphlinter lints type graph programs with the built-in Azure rules.
package graphlinter

import (
	"context"
	"fmt"
	"io"

	"github.com/speakeasy-api/schemagraph/graphlinter/rules"
	baseLinter "github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/versioning"
)

// Linter runs type graph rules over a program.
type Linter struct {
	base *baseLinter.Linter[*typegraph.Program]
}

// NewLinterOption is a functional option for configuring linter creation.
type NewLinterOption func(*newLinterOpts)

type newLinterOpts struct {
	skipDefaultRules bool
	markers          versioning.Markers
}

// WithoutDefaultRules creates a linter with no rules registered.
// Rules can then be registered selectively via the Registry() method.
//
// Example:
//
//	linter := NewLinter(config, WithoutDefaultRules())
//	linter.Registry().Register(&rules.NoPrivateUsageRule{})
func WithoutDefaultRules() NewLinterOption {
	return func(o *newLinterOpts) {
		o.skipDefaultRules = true
	}
}

// WithMarkers sets the versioning markers the versioning rule reads. Markers default to the
// versioning decorators applied in the program.
func WithMarkers(markers versioning.Markers) NewLinterOption {
	return func(o *newLinterOpts) {
		o.markers = markers
	}
}

// NewLinter creates a new type graph linter.
// By default, all built-in rules and rulesets are registered.
func NewLinter(config *baseLinter.Config, opts ...NewLinterOption) *Linter {
	options := &newLinterOpts{}
	for _, opt := range opts {
		opt(options)
	}

	registry := baseLinter.NewRegistry[*typegraph.Program]()
	if !options.skipDefaultRules {
		registerDefaultRules(registry, options)
	}

	return &Linter{
		base: baseLinter.NewLinter(config, registry),
	}
}

// Registry returns the rule registry for documentation generation
func (l *Linter) Registry() *baseLinter.Registry[*typegraph.Program] {
	return l.base.Registry()
}

// Lint runs all configured rules against program. Ignore paths are evaluated against the
// document program was loaded from.
func (l *Linter) Lint(ctx context.Context, program *typegraph.Program, location string, preExistingErrors []error) (*baseLinter.Output, error) {
	var docInfo *baseLinter.DocumentInfo[*typegraph.Program]
	if program != nil {
		docInfo = baseLinter.NewDocumentInfo(program, location, program.Root)
	} else {
		docInfo = baseLinter.NewDocumentInfo[*typegraph.Program](nil, location, nil)
	}

	return l.base.Lint(ctx, docInfo, preExistingErrors)
}

// LintSnapshot loads a snapshot and lints it. Snapshots that fail to load are reported through the
// returned output when the failure carries validation errors, otherwise the load error is returned.
func (l *Linter) LintSnapshot(ctx context.Context, r io.Reader, location string) (*typegraph.Program, *baseLinter.Output, error) {
	program, validationErrs, err := typegraph.Unmarshal(ctx, r)
	if err != nil && len(validationErrs) == 0 {
		return nil, nil, fmt.Errorf("failed to load %s: %w", location, err)
	}

	output, err := l.Lint(ctx, program, location, validationErrs)
	if err != nil {
		return nil, nil, err
	}
	return program, output, nil
}

func registerDefaultRules(registry *baseLinter.Registry[*typegraph.Program], options *newLinterOpts) {
	registry.Register(&rules.NonBreakingVersioningRule{Markers: options.markers})
	registry.Register(&rules.NoPrivateUsageRule{})
	registry.Register(&rules.NoLegacyUsageRule{})
	registry.Register(&rules.RequestBodyProblemRule{})
	registry.Register(&rules.UnsupportedTypeRule{})
	registry.Register(&rules.NoEmptyModelRule{})
	registry.Register(&rules.ARMLegacyOperationsDiscourageRule{})

	registerRulesets(registry)
}

// registerRulesets registers the built-in rulesets.
func registerRulesets(registry *baseLinter.Registry[*typegraph.Program]) {
	// "azure-core" - data plane rules
	_ = registry.RegisterRuleset(rules.RulesetAzureCore, []string{
		rules.RuleNonBreakingVersioning,
		rules.RuleNoPrivateUsage,
		rules.RuleNoLegacyUsage,
		rules.RuleRequestBodyProblem,
	})

	// "resource-manager" - management plane rules
	_ = registry.RegisterRuleset(rules.RulesetResourceManager, []string{
		rules.RuleUnsupportedType,
		rules.RuleNoEmptyModel,
		rules.RuleARMLegacyOperationsDiscourage,
	})
}
