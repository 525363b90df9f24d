package linter_test

import (
	"strings"
	"testing"

	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleConfig_GetSeverity(t *testing.T) {
	t.Parallel()

	warningSeverity := validation.SeverityWarning

	tests := []struct {
		name     string
		config   *linter.RuleConfig
		fallback validation.Severity
		expected validation.Severity
	}{
		{name: "configured severity", config: &linter.RuleConfig{Severity: &warningSeverity}, fallback: validation.SeverityError, expected: validation.SeverityWarning},
		{name: "default severity", config: &linter.RuleConfig{}, fallback: validation.SeverityError, expected: validation.SeverityError},
		{name: "nil config", fallback: validation.SeverityHint, expected: validation.SeverityHint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.config.GetSeverity(tt.fallback))
		})
	}
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	config := linter.NewConfig()
	assert.NotNil(t, config)
	assert.Equal(t, linter.OutputFormatText, config.OutputFormat)
	assert.NotNil(t, config.Rules)
	assert.NotNil(t, config.Categories)
	assert.Equal(t, []string{"all"}, config.Extends)
	require.NoError(t, config.Validate())
}

func TestLoadConfig_Success(t *testing.T) {
	t.Parallel()

	configYAML := `
extends: azure-core
rules:
  no-private-usage:
    severity: error
  no-empty-model:
    enabled: false
categories:
  versioning:
    severity: hint
ignores:
  - rule: no-legacy-usage
    path: "$.namespaces[?(@.name == 'Contoso')]"
  - message_pattern: "^Using @removed"
output_format: json
`
	config, err := linter.LoadConfig(strings.NewReader(configYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"azure-core"}, config.Extends)
	assert.Equal(t, validation.SeverityError, *config.Rules["no-private-usage"].Severity)
	assert.False(t, *config.Rules["no-empty-model"].Enabled)
	assert.Equal(t, validation.SeverityHint, *config.Categories["versioning"].Severity)
	require.Len(t, config.Ignores, 2)
	assert.Equal(t, "no-legacy-usage", config.Ignores[0].Rule)
	assert.Equal(t, "^Using @removed", config.Ignores[1].MessagePattern)
	assert.Equal(t, linter.OutputFormatJSON, config.OutputFormat)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	config, err := linter.LoadConfig(strings.NewReader(`extends: [azure-core, resource-manager]`))
	require.NoError(t, err)

	assert.Equal(t, []string{"azure-core", "resource-manager"}, config.Extends)
	assert.NotNil(t, config.Rules)
	assert.NotNil(t, config.Categories)
	assert.Equal(t, linter.OutputFormatText, config.OutputFormat)

	config, err = linter.LoadConfig(strings.NewReader(``))
	require.NoError(t, err)
	assert.Equal(t, []string{"all"}, config.Extends)
}

func TestLoadConfig_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{name: "invalid yaml", yaml: "extends: [", contains: "failed to parse config"},
		{name: "unknown severity", yaml: "rules:\n  a:\n    severity: fatal", contains: "unknown severity"},
		{name: "unsupported output format", yaml: "output_format: xml", contains: "unsupported output format"},
		{name: "invalid message pattern", yaml: "ignores:\n  - message_pattern: \"(\"", contains: "ignores[0].message_pattern"},
		{name: "invalid path", yaml: "ignores:\n  - path: \"$[\"", contains: "ignores[0].path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := linter.LoadConfig(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadConfigFromFile_Error(t *testing.T) {
	t.Parallel()

	_, err := linter.LoadConfigFromFile("testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open config file")
}
