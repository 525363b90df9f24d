package commands

import (
	"fmt"
	"io"

	"github.com/speakeasy-api/schemagraph/graphlinter"
	baseLinter "github.com/speakeasy-api/schemagraph/linter"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Document the available lint rules",
	Long: `Document every lint rule with its category, default severity, rulesets and examples.

Markdown output is suitable for publishing as reference documentation.`,
	Example: `  schemagraph rules
  schemagraph rules --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return WriteRules(cmd.OutOrStdout(), rulesFormat)
	},
}

var rulesFormat string

func init() {
	rulesCmd.Flags().StringVarP(&rulesFormat, "format", "f", "markdown", "output format: markdown or json")
}

// WriteRules writes the documentation of the default rules to w.
func WriteRules(w io.Writer, format string) error {
	docs := baseLinter.NewDocGenerator(graphlinter.NewLinter(nil).Registry())

	switch format {
	case "", "markdown":
		return docs.WriteMarkdown(w)
	case "json":
		return docs.WriteJSON(w)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
