package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/speakeasy-api/schemagraph/canonical"
	"github.com/speakeasy-api/schemagraph/cmd/schemagraph/commands"
	"github.com/speakeasy-api/schemagraph/graphlinter/rules"
	"github.com/speakeasy-api/schemagraph/naming"
	"github.com/speakeasy-api/schemagraph/testutils"
	"github.com/speakeasy-api/schemagraph/versioning"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const serviceSnapshot = `
namespaces:
  - name: Vendor
    library: true
    namespaces:
      - name: Legacy
        models:
          - name: Old
            properties:
              - name: v
                type: string
  - name: Contoso
    service:
      title: Contoso
    decorators:
      - name: TypeSpec.Versioning.versioned
        args: [{ref: Versions}]
    enums:
      - name: Versions
        members:
          - {name: v1, value: "2024-01-01"}
          - {name: v2, value: "2024-06-01"}
    models:
      - name: Widget
        properties:
          - name: id
            type: string
          - name: old
            type: Vendor.Legacy.Old
    operations:
      - name: create
        returns:
          model:
            properties:
              - name: nested
                type:
                  model:
                    properties:
                      - name: x
                        type: int32
    interfaces:
      - name: Widgets
        operations:
          - name: update
            parameters:
              - name: shape
                type:
                  union: [{literal: round}, {literal: square}]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLint_Success(t *testing.T) {
	t.Parallel()

	snapshot := writeFile(t, "snapshot.yaml", serviceSnapshot)
	config := writeFile(t, "lint.yaml", "extends: azure-core\n")

	var stdout, stderr bytes.Buffer
	err := commands.Lint(context.Background(), snapshot, commands.LintOptions{ConfigFile: config}, &stdout, &stderr)
	require.NoError(t, err, "warnings do not fail the run")
	assert.Contains(t, stdout.String(), rules.RuleNoLegacyUsage)
	assert.Contains(t, stderr.String(), "Snapshot "+snapshot+" passed linting")
}

func TestLint_Disable_Success(t *testing.T) {
	t.Parallel()

	snapshot := writeFile(t, "snapshot.yaml", serviceSnapshot)
	config := writeFile(t, "lint.yaml", "extends: all\n")

	var stdout, stderr bytes.Buffer
	err := commands.Lint(context.Background(), snapshot, commands.LintOptions{
		ConfigFile: config,
		Format:     "json",
		Disable:    []string{rules.RuleNoLegacyUsage},
	}, &stdout, &stderr)
	require.NoError(t, err)
	assert.NotContains(t, stdout.String(), rules.RuleNoLegacyUsage)
	assert.Empty(t, stderr.String(), "json output stays machine readable")
}

func TestLint_Error(t *testing.T) {
	t.Parallel()

	snapshot := writeFile(t, "snapshot.yaml", serviceSnapshot)

	tests := []struct {
		name     string
		opts     commands.LintOptions
		config   string
		expected string
	}{
		{
			name:     "error severity fails the run",
			config:   "rules:\n  no-legacy-usage:\n    severity: error\n",
			expected: "linting found 1 errors",
		},
		{
			name:     "unsupported format",
			opts:     commands.LintOptions{Format: "xml"},
			config:   "extends: all\n",
			expected: `unsupported output format "xml"`,
		},
		{
			name:     "unknown ruleset",
			opts:     commands.LintOptions{Ruleset: "nope"},
			config:   "extends: all\n",
			expected: "unknown ruleset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.ConfigFile = writeFile(t, "lint.yaml", tt.config)

			var stdout, stderr bytes.Buffer
			err := commands.Lint(context.Background(), snapshot, opts, &stdout, &stderr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}

	var stdout, stderr bytes.Buffer
	err := commands.Lint(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), commands.LintOptions{
		ConfigFile: writeFile(t, "lint.yaml", "extends: all\n"),
	}, &stdout, &stderr)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCollectNames_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, serviceSnapshot)

	report, diags := commands.CollectNames(context.Background(), program, naming.NewContext(program))
	assert.Empty(t, diags)
	assert.Equal(t, "Contoso", report.PackageID)
	assert.Equal(t, "2024-06-01", report.DefaultVersion)

	var names []string
	for _, info := range report.Names {
		names = append(names, info.Name)
		assert.NotEmpty(t, info.CrossLanguageDefinitionID)
	}
	assert.Equal(t, []string{"UpdateRequestShape", "CreateResponse", "CreateResponseNested"}, names, "parameter models are not listed")

	nested := report.Names[2]
	assert.Equal(t, "model", nested.Kind)
	assert.Equal(t, "Contoso.create.Response.nested.anonymous", nested.CrossLanguageDefinitionID)
	assert.Equal(t, "union", report.Names[0].Kind)
	assert.Contains(t, report.Names[0].Location, "operations.update")

	malformed := testutils.LoadProgram(t, `
namespaces:
  - name: Contoso
    service: {title: Contoso}
    decorators:
      - name: TypeSpec.Versioning.versioned
        args: ["v1"]
`)
	broken, diags := commands.CollectNames(context.Background(), malformed, naming.NewContext(malformed))
	assert.Empty(t, broken.DefaultVersion)
	require.Len(t, diags, 1)
	assert.ErrorIs(t, diags[0], versioning.ErrInvalidVersionsEnum)

	pinned, _ := commands.CollectNames(context.Background(), program, naming.NewContext(program, naming.WithAPIVersion("2024-01-01")))
	assert.Equal(t, "2024-01-01", pinned.DefaultVersion)
}

func TestWriteNames_Success(t *testing.T) {
	t.Parallel()

	report := &commands.NamesReport{
		PackageID:      "Contoso",
		DefaultVersion: "2024-06-01",
		Names: []commands.GeneratedNameInfo{
			{Name: "CreateResponse", Kind: "model", CrossLanguageDefinitionID: "Contoso.create.Response.anonymous", Location: "namespaces.Contoso.operations.create.returnType"},
		},
	}

	var text bytes.Buffer
	require.NoError(t, commands.WriteNames(&text, report, "text"))
	assert.Contains(t, text.String(), "Package: Contoso")
	assert.Contains(t, text.String(), "Default API version: 2024-06-01")
	assert.Contains(t, text.String(), "CreateResponse  model  Contoso.create.Response.anonymous")

	var out bytes.Buffer
	require.NoError(t, commands.WriteNames(&out, report, "json"))
	var decoded commands.NamesReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, *report, decoded)

	var empty bytes.Buffer
	require.NoError(t, commands.WriteNames(&empty, &commands.NamesReport{}, ""))
	assert.Equal(t, "No anonymous types found\n", empty.String())

	require.Error(t, commands.WriteNames(&empty, report, "csv"))
}

func TestEmitCanonical_Success(t *testing.T) {
	t.Parallel()

	program := testutils.LoadProgram(t, serviceSnapshot)

	var stdout, stderr bytes.Buffer
	require.NoError(t, commands.EmitCanonical(context.Background(), program, &stdout, "", &stderr, nil))
	assert.Empty(t, stderr.String())

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"2024-01-01", "2024-06-01"}, info[canonical.IncludedVersionsExtension])
	assert.Contains(t, doc["definitions"], "Widget")

	var yamlOut bytes.Buffer
	require.NoError(t, commands.EmitCanonical(context.Background(), program, &yamlOut, "canonical.yaml", &stderr, nil))
	var yamlDoc map[string]any
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &yamlDoc))
	assert.Equal(t, "2.0", yamlDoc["swagger"])
}

func TestWriteRules_Success(t *testing.T) {
	t.Parallel()

	var markdown bytes.Buffer
	require.NoError(t, commands.WriteRules(&markdown, "markdown"))
	for _, id := range []string{
		rules.RuleNonBreakingVersioning,
		rules.RuleNoPrivateUsage,
		rules.RuleNoLegacyUsage,
		rules.RuleRequestBodyProblem,
		rules.RuleUnsupportedType,
		rules.RuleNoEmptyModel,
		rules.RuleARMLegacyOperationsDiscourage,
	} {
		assert.Contains(t, markdown.String(), id)
	}

	var out bytes.Buffer
	require.NoError(t, commands.WriteRules(&out, "json"))
	var docs struct {
		Rules    []map[string]any `json:"rules"`
		Rulesets []string         `json:"rulesets"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	assert.Len(t, docs.Rules, 7)
	assert.Contains(t, docs.Rulesets, rules.RulesetAzureCore)

	require.Error(t, commands.WriteRules(&out, "html"))
}

func TestApply_Success(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "schemagraph", SilenceUsage: true}
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	commands.Apply(root)

	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"rules", "--format", "json"})
	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), rules.RuleNoEmptyModel)
}
