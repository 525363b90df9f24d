package linter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Mock document type for testing
type MockDoc struct {
	ID string
}

// Mock rule for testing
type mockRule struct {
	id              string
	category        string
	description     string
	summary         string
	link            string
	defaultSeverity validation.Severity
	runFunc         func(ctx context.Context, docInfo *linter.DocumentInfo[*MockDoc], config *linter.RuleConfig) []error
}

func (r *mockRule) ID() string                           { return r.id }
func (r *mockRule) Category() string                     { return r.category }
func (r *mockRule) Description() string                  { return r.description }
func (r *mockRule) Summary() string                      { return r.summary }
func (r *mockRule) Link() string                         { return r.link }
func (r *mockRule) DefaultSeverity() validation.Severity { return r.defaultSeverity }

func (r *mockRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*MockDoc], config *linter.RuleConfig) []error {
	if r.runFunc != nil {
		return r.runFunc(ctx, docInfo, config)
	}
	return nil
}

// reportingRule reports a single diagnostic with the configured severity against node.
func reportingRule(id, category, message string, node *yaml.Node) *mockRule {
	return &mockRule{
		id:              id,
		category:        category,
		defaultSeverity: validation.SeverityWarning,
		runFunc: func(_ context.Context, _ *linter.DocumentInfo[*MockDoc], config *linter.RuleConfig) []error {
			return []error{validation.NewValidationError(config.GetSeverity(validation.SeverityWarning), id, errors.New(message), node)}
		},
	}
}

func newDocInfo(root *yaml.Node) *linter.DocumentInfo[*MockDoc] {
	return linter.NewDocumentInfo(&MockDoc{ID: "test"}, "snapshot.yaml", root)
}

func ruleIDs(results []error) []string {
	var ids []string
	for _, err := range results {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			ids = append(ids, vErr.Rule)
		}
	}
	return ids
}

func boolPtr(b bool) *bool { return &b }

func severityPtr(s validation.Severity) *validation.Severity { return &s }

func TestLinter_RuleSelection(t *testing.T) {
	t.Parallel()

	newRegistry := func(t *testing.T) *linter.Registry[*MockDoc] {
		t.Helper()
		registry := linter.NewRegistry[*MockDoc]()
		registry.Register(reportingRule("style-rule-1", "style", "style 1", nil))
		registry.Register(reportingRule("style-rule-2", "style", "style 2", nil))
		registry.Register(reportingRule("security-rule-1", "security", "security 1", nil))
		require.NoError(t, registry.RegisterRuleset("strict", []string{"security-rule-1"}))
		return registry
	}

	tests := []struct {
		name     string
		config   *linter.Config
		expected []string
	}{
		{
			name:     "nil config extends all",
			expected: []string{"security-rule-1", "style-rule-1", "style-rule-2"},
		},
		{
			name:     "extends ruleset",
			config:   &linter.Config{Extends: []string{"strict"}},
			expected: []string{"security-rule-1"},
		},
		{
			name: "disabled rule not executed",
			config: &linter.Config{
				Extends: []string{"all"},
				Rules:   map[string]linter.RuleConfig{"style-rule-1": {Enabled: boolPtr(false)}},
			},
			expected: []string{"security-rule-1", "style-rule-2"},
		},
		{
			name: "category disabled affects all rules in category",
			config: &linter.Config{
				Extends:    []string{"all"},
				Categories: map[string]linter.CategoryConfig{"style": {Enabled: boolPtr(false)}},
			},
			expected: []string{"security-rule-1"},
		},
		{
			name: "rule config overrides category config",
			config: &linter.Config{
				Extends:    []string{"all"},
				Categories: map[string]linter.CategoryConfig{"style": {Enabled: boolPtr(false)}},
				Rules:      map[string]linter.RuleConfig{"style-rule-2": {Enabled: boolPtr(true)}},
			},
			expected: []string{"security-rule-1", "style-rule-2"},
		},
		{
			name: "rule enabled outside the extended ruleset",
			config: &linter.Config{
				Extends: []string{"strict"},
				Rules:   map[string]linter.RuleConfig{"style-rule-1": {Enabled: boolPtr(true)}},
			},
			expected: []string{"security-rule-1", "style-rule-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output, err := linter.NewLinter(tt.config, newRegistry(t)).Lint(t.Context(), newDocInfo(nil), nil)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, ruleIDs(output.Results))
		})
	}
}

func TestLinter_SeverityOverrides(t *testing.T) {
	t.Parallel()

	registry := linter.NewRegistry[*MockDoc]()
	registry.Register(reportingRule("style-rule", "style", "style", nil))
	registry.Register(reportingRule("security-rule", "security", "security", nil))
	registry.Register(reportingRule("other-rule", "other", "other", nil))

	config := &linter.Config{
		Extends:    []string{"all"},
		Categories: map[string]linter.CategoryConfig{"style": {Severity: severityPtr(validation.SeverityHint)}, "security": {Severity: severityPtr(validation.SeverityHint)}},
		Rules:      map[string]linter.RuleConfig{"security-rule": {Severity: severityPtr(validation.SeverityError)}},
	}

	output, err := linter.NewLinter(config, registry).Lint(t.Context(), newDocInfo(nil), nil)
	require.NoError(t, err)

	severities := make(map[string]validation.Severity)
	for _, result := range output.Results {
		var vErr *validation.Error
		require.True(t, errors.As(result, &vErr))
		severities[vErr.Rule] = vErr.Severity
	}

	assert.Equal(t, validation.SeverityHint, severities["style-rule"], "category severity applies")
	assert.Equal(t, validation.SeverityError, severities["security-rule"], "rule severity wins over category severity")
	assert.Equal(t, validation.SeverityWarning, severities["other-rule"], "default severity is kept")
	assert.True(t, output.HasErrors())
	assert.Equal(t, 1, output.ErrorCount())
}

const ignoreSnapshot = `namespaces:
  - name: Contoso
    models:
      - name: Widget
      - name: Gadget
`

func TestLinter_Ignores(t *testing.T) {
	t.Parallel()

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(ignoreSnapshot), &doc))
	root := doc.Content[0]

	models := root.Content[1].Content[0].Content[3]
	widget, gadget := models.Content[0], models.Content[1]
	require.Equal(t, "Widget", widget.Content[1].Value)
	require.Equal(t, "Gadget", gadget.Content[1].Value)

	newRegistry := func() *linter.Registry[*MockDoc] {
		registry := linter.NewRegistry[*MockDoc]()
		registry.Register(reportingRule("widget-rule", "style", "Widget is wrong", widget))
		registry.Register(reportingRule("gadget-rule", "style", "Gadget is wrong", gadget))
		registry.Register(reportingRule("name-rule", "style", "Widget name is wrong", widget.Content[1]))
		return registry
	}

	tests := []struct {
		name     string
		ignores  []linter.IgnorePattern
		expected []string
	}{
		{
			name:     "by rule",
			ignores:  []linter.IgnorePattern{{Rule: "gadget-rule"}},
			expected: []string{"widget-rule", "name-rule"},
		},
		{
			name:     "by message pattern",
			ignores:  []linter.IgnorePattern{{MessagePattern: "^Widget"}},
			expected: []string{"gadget-rule"},
		},
		{
			name:     "by rule and message pattern",
			ignores:  []linter.IgnorePattern{{Rule: "widget-rule", MessagePattern: "^Gadget"}},
			expected: []string{"widget-rule", "gadget-rule", "name-rule"},
		},
		{
			name:     "by jsonpath selecting a node and its descendants",
			ignores:  []linter.IgnorePattern{{Path: "$.namespaces[*].models[?(@.name == 'Widget')]"}},
			expected: []string{"gadget-rule"},
		},
		{
			name:     "by jsonpath and rule",
			ignores:  []linter.IgnorePattern{{Path: "$.namespaces[*].models[*]", Rule: "gadget-rule"}},
			expected: []string{"widget-rule", "name-rule"},
		},
		{
			name:     "by legacy path with a regular expression filter",
			ignores:  []linter.IgnorePattern{{Path: "$.namespaces[*].models[?(@.name =~ /^Gad/)]"}},
			expected: []string{"widget-rule", "name-rule"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := linter.NewConfig()
			config.Ignores = tt.ignores

			output, err := linter.NewLinter(config, newRegistry()).Lint(t.Context(), newDocInfo(root), nil)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, ruleIDs(output.Results))
		})
	}
}

func TestLinter_Ignores_PathWithoutRoot(t *testing.T) {
	t.Parallel()

	registry := linter.NewRegistry[*MockDoc]()
	registry.Register(reportingRule("rule", "style", "message", &yaml.Node{Line: 1, Column: 1}))

	config := linter.NewConfig()
	config.Ignores = []linter.IgnorePattern{{Path: "$.namespaces"}}

	output, err := linter.NewLinter(config, registry).Lint(t.Context(), newDocInfo(nil), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"rule"}, ruleIDs(output.Results), "paths never match without a document root")
}

func TestLinter_SortsAndMergesResults(t *testing.T) {
	t.Parallel()

	registry := linter.NewRegistry[*MockDoc]()
	registry.Register(reportingRule("late-rule", "style", "late", &yaml.Node{Line: 20, Column: 1}))
	registry.Register(reportingRule("early-rule", "style", "early", &yaml.Node{Line: 2, Column: 3}))

	preExisting := []error{
		validation.NewValidationError(validation.SeverityError, validation.RuleValidationInvalidReference, errors.New("unresolved"), &yaml.Node{Line: 10, Column: 1}),
		errors.New("not a validation error"),
	}

	output, err := linter.NewLinter(nil, registry).Lint(t.Context(), newDocInfo(nil), preExisting)
	require.NoError(t, err)

	require.Len(t, output.Results, 4)
	assert.Equal(t, []string{"early-rule", validation.RuleValidationInvalidReference, "late-rule"}, ruleIDs(output.Results))
	assert.EqualError(t, output.Results[3], "not a validation error", "other errors are moved last")
	assert.Equal(t, 2, output.ErrorCount())
}

func TestLinter_Error(t *testing.T) {
	t.Parallel()

	t.Run("unknown ruleset", func(t *testing.T) {
		t.Parallel()

		_, err := linter.NewLinter(&linter.Config{Extends: []string{"missing"}}, linter.NewRegistry[*MockDoc]()).
			Lint(t.Context(), newDocInfo(nil), nil)
		require.ErrorIs(t, err, linter.ErrUnknownRuleset)
	})

	t.Run("invalid ignore pattern", func(t *testing.T) {
		t.Parallel()

		config := linter.NewConfig()
		config.Ignores = []linter.IgnorePattern{{MessagePattern: "("}}

		_, err := linter.NewLinter(config, linter.NewRegistry[*MockDoc]()).Lint(t.Context(), newDocInfo(nil), nil)
		require.ErrorIs(t, err, linter.ErrInvalidConfig)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		registry := linter.NewRegistry[*MockDoc]()
		registry.Register(reportingRule("rule", "style", "message", nil))

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := linter.NewLinter(nil, registry).Lint(ctx, newDocInfo(nil), nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestLinter_RulesRunConcurrently(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	registry := linter.NewRegistry[*MockDoc]()
	registry.Register(&mockRule{
		id: "waiter",
		runFunc: func(ctx context.Context, _ *linter.DocumentInfo[*MockDoc], _ *linter.RuleConfig) []error {
			select {
			case <-started:
			case <-ctx.Done():
			}
			return nil
		},
	})
	registry.Register(&mockRule{
		id: "starter",
		runFunc: func(_ context.Context, _ *linter.DocumentInfo[*MockDoc], _ *linter.RuleConfig) []error {
			close(started)
			return nil
		},
	})

	output, err := linter.NewLinter(nil, registry).Lint(t.Context(), newDocInfo(nil), nil)
	require.NoError(t, err)
	assert.Empty(t, output.Results)
	assert.False(t, output.HasErrors())
}

func TestOutput_Format(t *testing.T) {
	t.Parallel()

	registry := linter.NewRegistry[*MockDoc]()
	registry.Register(reportingRule("style-rule", "style", "styled badly", &yaml.Node{Line: 3, Column: 7}))

	tests := []struct {
		format   linter.OutputFormat
		contains []string
	}{
		{format: linter.OutputFormatText, contains: []string{"3:7\twarning\tstyle-rule\tstyled badly"}},
		{format: linter.OutputFormatJSON, contains: []string{`"rule": "style-rule"`, `"category": "style"`}},
		{format: linter.OutputFormatSummary, contains: []string{"style-rule", "across 1 rules"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			config := linter.NewConfig()
			config.OutputFormat = tt.format

			output, err := linter.NewLinter(config, registry).Lint(t.Context(), newDocInfo(nil), nil)
			require.NoError(t, err)
			assert.Equal(t, "snapshot.yaml", output.Location, "output should carry the snapshot location")

			for _, expected := range tt.contains {
				assert.Contains(t, output.String(), expected)
			}
		})
	}
}
