package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/speakeasy-api/schemagraph/canonical"
	"github.com/speakeasy-api/schemagraph/linter/format"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/spf13/cobra"
)

var canonicalCmd = &cobra.Command{
	Use:   "canonical <snapshot>",
	Short: "Emit a canonical Swagger 2.0 document",
	Long: `Emit a single Swagger 2.0 document for the first service of a snapshot, merging the types of
every API version. The versions covered are listed under x-canonical-included-versions.

The document is written as JSON to stdout unless --output is given, in which case the format
follows the file extension (.yaml and .yml produce YAML). Diagnostics are written to stderr.`,
	Example: `  schemagraph canonical ./snapshot.yaml
  schemagraph canonical --output ./canonical.yaml ./snapshot.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCanonical,
}

var canonicalOutput string

func init() {
	canonicalCmd.Flags().StringVarP(&canonicalOutput, "output", "o", "", "output file (default: stdout as JSON)")
}

func runCanonical(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()

	program, err := loadProgram(cmd.Context(), args[0], stderr)
	if err != nil {
		return err
	}

	if canonicalOutput == "" {
		return EmitCanonical(cmd.Context(), program, cmd.OutOrStdout(), "", stderr, newLogger(cmd, stderr))
	}

	cleanOutput := filepath.Clean(canonicalOutput)
	f, err := os.Create(cleanOutput)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := EmitCanonical(cmd.Context(), program, f, cleanOutput, stderr, newLogger(cmd, stderr)); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Canonical document written to %s\n", cleanOutput)
	return nil
}

// EmitCanonical emits the canonical document of program to w, in the format implied by path.
// Diagnostics are written to stderr.
func EmitCanonical(ctx context.Context, program *typegraph.Program, w io.Writer, path string, stderr io.Writer, logger *slog.Logger) error {
	result, err := canonical.Emit(ctx, program, canonical.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to emit canonical document: %w", err)
	}

	if len(result.Diagnostics) > 0 {
		text, err := format.NewTextFormatter().Format(result.Diagnostics)
		if err != nil {
			return err
		}
		fmt.Fprint(stderr, text)
	}

	return canonical.Write(w, result.Document, path)
}
