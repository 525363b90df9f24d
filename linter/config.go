package linter

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/speakeasy-api/schemagraph/errors"
	"github.com/speakeasy-api/schemagraph/validation"
)

const (
	// ErrInvalidConfig is returned when a lint configuration cannot be used.
	ErrInvalidConfig = errors.Error("invalid lint config")
	// ErrUnknownRuleset is returned when a configuration extends a ruleset that is not registered.
	ErrUnknownRuleset = errors.Error("unknown ruleset")
)

// Config represents the linter configuration
type Config struct {
	// Extends specifies rulesets to extend (e.g., "azure-core", "all")
	Extends []string `yaml:"extends,omitempty" json:"extends,omitempty"`

	// Rules contains per-rule configuration
	Rules map[string]RuleConfig `yaml:"rules,omitempty" json:"rules,omitempty"`

	// Categories contains per-category configuration
	Categories map[string]CategoryConfig `yaml:"categories,omitempty" json:"categories,omitempty"`

	// Ignores contains global ignore patterns
	Ignores []IgnorePattern `yaml:"ignores,omitempty" json:"ignores,omitempty"`

	// OutputFormat specifies the output format
	OutputFormat OutputFormat `yaml:"output_format,omitempty" json:"output_format,omitempty"`
}

// RuleConfig configures a specific rule
type RuleConfig struct {
	// Enabled controls whether the rule is active
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`

	// Severity overrides the default severity
	Severity *validation.Severity `yaml:"severity,omitempty" json:"severity,omitempty"`
}

// GetSeverity returns the effective severity, falling back to default if not overridden
func (c *RuleConfig) GetSeverity(defaultSeverity validation.Severity) validation.Severity {
	if c != nil && c.Severity != nil {
		return *c.Severity
	}
	return defaultSeverity
}

// CategoryConfig configures an entire category of rules
type CategoryConfig struct {
	// Enabled controls whether all rules in the category are active
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`

	// Severity overrides the default severity for all rules in the category
	Severity *validation.Severity `yaml:"severity,omitempty" json:"severity,omitempty"`
}

// IgnorePattern specifies a pattern for ignoring results. All set fields must match.
type IgnorePattern struct {
	// Rule is the rule ID to ignore (empty = all rules)
	Rule string `yaml:"rule,omitempty" json:"rule,omitempty"`

	// Path is a JSONPath expression selecting snapshot nodes. Results reported against a
	// selected node or any node below it are ignored.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// Message pattern to match (regex)
	MessagePattern string `yaml:"message_pattern,omitempty" json:"message_pattern,omitempty"`
}

type OutputFormat string

const (
	OutputFormatText    OutputFormat = "text"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatSummary OutputFormat = "summary"
)

var outputFormats = []OutputFormat{OutputFormatText, OutputFormatJSON, OutputFormatSummary}

// NewConfig creates a new default configuration
func NewConfig() *Config {
	return &Config{
		Extends:      []string{"all"},
		Rules:        make(map[string]RuleConfig),
		Categories:   make(map[string]CategoryConfig),
		OutputFormat: OutputFormatText,
	}
}

// Validate checks the output format and compiles every ignore pattern.
func (c *Config) Validate() error {
	if c.OutputFormat != "" && !slices.Contains(outputFormats, c.OutputFormat) {
		return ErrInvalidConfig.Wrap(fmt.Errorf("unsupported output format %q", c.OutputFormat))
	}

	for i, ignore := range c.Ignores {
		if ignore.MessagePattern != "" {
			if _, err := regexp.Compile(ignore.MessagePattern); err != nil {
				return ErrInvalidConfig.Wrap(fmt.Errorf("ignores[%d].message_pattern: %w", i, err))
			}
		}
		if ignore.Path != "" {
			if _, err := compileSelector(ignore.Path); err != nil {
				return ErrInvalidConfig.Wrap(fmt.Errorf("ignores[%d].path: %w", i, err))
			}
		}
	}

	return nil
}
