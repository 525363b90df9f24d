package linter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/speakeasy-api/schemagraph/linter/format"
	"github.com/speakeasy-api/schemagraph/validation"
	"golang.org/x/sync/errgroup"
)

// Linter is the main linting engine
type Linter[T any] struct {
	config   *Config
	registry *Registry[T]
}

// NewLinter creates a new linter with the given configuration
func NewLinter[T any](config *Config, registry *Registry[T]) *Linter[T] {
	if config == nil {
		config = NewConfig()
	}
	return &Linter[T]{
		config:   config,
		registry: registry,
	}
}

// Registry returns the rule registry for documentation generation
func (l *Linter[T]) Registry() *Registry[T] {
	return l.registry
}

// Lint runs all configured rules against the document. Errors found before linting (for example
// while loading the document) are reported alongside the rule results.
func (l *Linter[T]) Lint(ctx context.Context, docInfo *DocumentInfo[T], preExistingErrors []error) (*Output, error) {
	for _, name := range l.config.Extends {
		if _, ok := l.registry.GetRuleset(name); !ok {
			return nil, ErrUnknownRuleset.Wrap(fmt.Errorf("%q", name))
		}
	}

	matchers, err := compileIgnores(l.config.Ignores, docInfo.Root)
	if err != nil {
		return nil, err
	}

	var allErrs []error
	allErrs = append(allErrs, preExistingErrors...)

	lintErrs, err := l.runRules(ctx, docInfo)
	if err != nil {
		return nil, err
	}
	allErrs = append(allErrs, lintErrs...)

	allErrs = l.applySeverityOverrides(allErrs)
	allErrs = filterIgnored(allErrs, matchers)

	validation.SortValidationErrors(allErrs)

	return l.formatOutput(docInfo.Location, allErrs), nil
}

func (l *Linter[T]) runRules(ctx context.Context, docInfo *DocumentInfo[T]) ([]error, error) {
	var (
		mu   sync.Mutex
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, rule := range l.getEnabledRules() {
		ruleConfig := l.getRuleConfig(rule.ID())

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			ruleErrs := rule.Run(gctx, docInfo, &ruleConfig)

			mu.Lock()
			errs = append(errs, ruleErrs...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running lint rules: %w", err)
	}
	return errs, nil
}

func (l *Linter[T]) getEnabledRules() []RuleRunner[T] {
	// Rulesets enable rules, category config overrides rulesets and rule config overrides both
	ruleStatus := make(map[string]bool)

	for _, ruleset := range l.config.Extends {
		if ids, ok := l.registry.GetRuleset(ruleset); ok {
			for _, id := range ids {
				ruleStatus[id] = true
			}
		}
	}

	for _, rule := range l.registry.AllRules() {
		if catConfig, ok := l.config.Categories[rule.Category()]; ok {
			if catConfig.Enabled != nil {
				ruleStatus[rule.ID()] = *catConfig.Enabled
			}
		}
	}

	for id, ruleConfig := range l.config.Rules {
		if ruleConfig.Enabled != nil {
			ruleStatus[id] = *ruleConfig.Enabled
		}
	}

	var enabled []RuleRunner[T]
	for id, enabledFlag := range ruleStatus {
		if enabledFlag {
			if rule, ok := l.registry.GetRule(id); ok {
				enabled = append(enabled, rule)
			}
		}
	}

	// Sort for deterministic order
	sort.Slice(enabled, func(i, j int) bool {
		return enabled[i].ID() < enabled[j].ID()
	})

	return enabled
}

func (l *Linter[T]) getRuleConfig(ruleID string) RuleConfig {
	config := RuleConfig{}

	if rule, ok := l.registry.GetRule(ruleID); ok {
		if catConfig, ok := l.config.Categories[rule.Category()]; ok {
			if catConfig.Severity != nil {
				config.Severity = catConfig.Severity
			}
		}
	}

	if ruleConfig, ok := l.config.Rules[ruleID]; ok {
		if ruleConfig.Severity != nil {
			config.Severity = ruleConfig.Severity
		}
	}

	return config
}

func (l *Linter[T]) applySeverityOverrides(errs []error) []error {
	for _, err := range errs {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			config := l.getRuleConfig(vErr.Rule)
			if config.Severity != nil {
				vErr.Severity = *config.Severity
			}
		}
	}
	return errs
}

func (l *Linter[T]) formatOutput(location string, errs []error) *Output {
	categories := make(map[string]string)
	for _, rule := range l.registry.AllRules() {
		categories[rule.ID()] = rule.Category()
	}

	return &Output{
		Location:   location,
		Results:    errs,
		Format:     l.config.OutputFormat,
		categories: categories,
	}
}

// Output holds the findings for one snapshot, sorted by position.
type Output struct {
	// Location is where the linted snapshot was read from.
	Location string
	Results  []error
	Format   OutputFormat

	categories map[string]string
}

// HasErrors reports whether any result has error severity. Results that are not validation
// errors count as errors.
func (o *Output) HasErrors() bool {
	return o.ErrorCount() > 0
}

func (o *Output) ErrorCount() int {
	count := 0
	for _, err := range o.Results {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			if vErr.Severity == validation.SeverityError {
				count++
			}
		} else {
			count++
		}
	}
	return count
}

func (o *Output) categoryOf(rule string) string {
	if category, ok := o.categories[rule]; ok {
		return category
	}
	return ""
}

// Formatter returns the formatter for the configured output format.
func (o *Output) Formatter() format.Formatter {
	switch o.Format {
	case OutputFormatJSON:
		return format.NewJSONFormatter(o.categoryOf)
	case OutputFormatSummary:
		return format.NewSummaryFormatter(o.categoryOf)
	default:
		return format.NewTextFormatter()
	}
}

// String formats the results in the configured output format.
func (o *Output) String() string {
	s, err := o.Formatter().Format(o.Results)
	if err != nil {
		return err.Error()
	}
	return s
}

func (o *Output) FormatText() string {
	s, _ := format.NewTextFormatter().Format(o.Results)
	return s
}

func (o *Output) FormatJSON() string {
	s, _ := format.NewJSONFormatter(o.categoryOf).Format(o.Results)
	return s
}
