package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/speakeasy-api/schemagraph/graphlinter"
	baseLinter "github.com/speakeasy-api/schemagraph/linter"
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint <snapshot>",
	Short: "Lint a type graph snapshot",
	Long: `Lint a type graph snapshot with the Azure data plane and resource manager rules.

The snapshot is first checked for structural errors, then every enabled rule is run against the
loaded program. Use "-" to read the snapshot from stdin.

Configuration is read from ~/.schemagraph/lint.yaml by default. It can extend rulesets
("all", "azure-core", "resource-manager"), change rule severities and ignore findings:

  extends: [azure-core]
  rules:
    no-private-usage:
      severity: warning
  ignores:
    - rule: no-legacy-usage
      path: namespaces.Contoso.models.Widget`,
	Example: `  schemagraph lint ./snapshot.yaml
  schemagraph lint --ruleset resource-manager --format json ./snapshot.yaml
  schemagraph lint --disable no-empty-model - < snapshot.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

var (
	lintOutputFormat string
	lintRuleset      string
	lintConfigFile   string
	lintDisableRules []string
)

func init() {
	lintCmd.Flags().StringVarP(&lintOutputFormat, "format", "f", "text", "output format: text, json or summary")
	lintCmd.Flags().StringVarP(&lintRuleset, "ruleset", "r", "", "ruleset to use (default loaded from config)")
	lintCmd.Flags().StringVarP(&lintConfigFile, "config", "c", "", "path to lint config file (default: ~/.schemagraph/lint.yaml)")
	lintCmd.Flags().StringSliceVarP(&lintDisableRules, "disable", "d", nil, "rule IDs to disable (can be repeated)")
}

// LintOptions holds the settings of a lint run.
type LintOptions struct {
	Format     string
	Ruleset    string
	ConfigFile string
	Disable    []string
}

func runLint(cmd *cobra.Command, args []string) error {
	opts := LintOptions{
		Format:     lintOutputFormat,
		Ruleset:    lintRuleset,
		ConfigFile: lintConfigFile,
		Disable:    lintDisableRules,
	}

	stderr := cmd.ErrOrStderr()
	start := time.Now()
	err := Lint(cmd.Context(), args[0], opts, cmd.OutOrStdout(), stderr)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		reportElapsed(stderr, "Linting", time.Since(start))
	}
	return err
}

// Lint lints the snapshot at file and writes the findings to stdout. It returns an error when the
// snapshot cannot be read or when any finding is an error.
func Lint(ctx context.Context, file string, opts LintOptions, stdout, stderr io.Writer) error {
	config, err := buildLintConfig(opts)
	if err != nil {
		return err
	}

	reader, location, err := openInput(file)
	if err != nil {
		return err
	}
	defer reader.Close()

	lint := graphlinter.NewLinter(config)
	_, output, err := lint.LintSnapshot(ctx, reader, location)
	if err != nil {
		return fmt.Errorf("linting failed: %w", err)
	}

	fmt.Fprintln(stdout, output.String())

	if output.HasErrors() {
		return fmt.Errorf("linting found %d errors", output.ErrorCount())
	}

	if output.Format == baseLinter.OutputFormatText {
		fmt.Fprintf(stderr, "Snapshot %s passed linting\n", output.Location)
	}
	return nil
}

func buildLintConfig(opts LintOptions) (*baseLinter.Config, error) {
	config := baseLinter.NewConfig()

	configPath := opts.ConfigFile
	if configPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configPath = filepath.Join(home, ".schemagraph", "lint.yaml")
		}
	}

	if configPath != "" {
		loaded, err := baseLinter.LoadConfigFromFile(configPath)
		switch {
		case err == nil:
			config = loaded
		case opts.ConfigFile != "" || !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to load lint config %s: %w", configPath, err)
		}
	}

	if opts.Ruleset != "" {
		config.Extends = []string{opts.Ruleset}
	}

	switch opts.Format {
	case "", "text":
		config.OutputFormat = baseLinter.OutputFormatText
	case "json":
		config.OutputFormat = baseLinter.OutputFormatJSON
	case "summary":
		config.OutputFormat = baseLinter.OutputFormatSummary
	default:
		return nil, fmt.Errorf("unsupported output format %q", opts.Format)
	}

	if len(opts.Disable) > 0 {
		if config.Rules == nil {
			config.Rules = make(map[string]baseLinter.RuleConfig)
		}
		for _, ruleID := range opts.Disable {
			ruleConfig := config.Rules[ruleID]
			enabled := false
			ruleConfig.Enabled = &enabled
			config.Rules[ruleID] = ruleConfig
		}
	}

	return config, nil
}
