package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/speakeasy-api/schemagraph/naming"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/versioning"
	"github.com/spf13/cobra"
)

var namesCmd = &cobra.Command{
	Use:   "names <snapshot>",
	Short: "List generated names of anonymous types",
	Long: `List the names client emitters generate for the anonymous models and unions of a snapshot,
together with their cross-language definition ids.

Anonymous types that cannot be reached from an operation payload have no generated name and are
not listed. The cross-language package id and the default API version of each service are printed
first.`,
	Example: `  schemagraph names ./snapshot.yaml
  schemagraph names --api-version 2024-06-01 --format json ./snapshot.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runNames,
}

var (
	namesAPIVersion string
	namesFormat     string
)

func init() {
	namesCmd.Flags().StringVar(&namesAPIVersion, "api-version", "", "API version to resolve the default version against (default: latest)")
	namesCmd.Flags().StringVarP(&namesFormat, "format", "f", "text", "output format: text or json")
}

// GeneratedNameInfo describes one named anonymous type.
type GeneratedNameInfo struct {
	Name                      string `json:"name"`
	CrossLanguageDefinitionID string `json:"crossLanguageDefinitionId"`
	Kind                      string `json:"kind"`
	Location                  string `json:"location"`
}

// NamesReport is the result of the names command.
type NamesReport struct {
	PackageID      string              `json:"packageId,omitempty"`
	DefaultVersion string              `json:"defaultApiVersion,omitempty"`
	Names          []GeneratedNameInfo `json:"names"`
}

func runNames(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()

	program, err := loadProgram(cmd.Context(), args[0], stderr)
	if err != nil {
		return err
	}

	ctx := naming.NewContext(program,
		naming.WithAPIVersion(namesAPIVersion),
		naming.WithLogger(newLogger(cmd, stderr)),
	)

	report, diags := CollectNames(cmd.Context(), program, ctx)
	for _, diag := range diags {
		fmt.Fprintf(stderr, "%v\n", diag)
	}

	return WriteNames(cmd.OutOrStdout(), report, namesFormat)
}

// CollectNames assigns a generated name to every reachable anonymous model and union of program in
// walk order.
func CollectNames(ctx context.Context, program *typegraph.Program, namingCtx *naming.Context) (*NamesReport, []error) {
	packageID, diags := namingCtx.CrossLanguagePackageID()
	report := &NamesReport{
		PackageID: packageID,
		Names:     []GeneratedNameInfo{},
	}

	if services := naming.ListAllServiceNamespaces(program); len(services) > 0 {
		version, err := namingCtx.DefaultAPIVersion(services[0])
		switch {
		case err == nil:
			report.DefaultVersion = version.Value
		case !errors.Is(err, versioning.ErrNotVersioned):
			diags = append(diags, err)
		}
	}

	for item := range typegraph.Walk(ctx, program) {
		var kind string
		switch t := item.Type.(type) {
		case *typegraph.Model:
			if t.Name != "" || item.Location.IsParent("parameters") {
				continue
			}
			kind = "model"
		case *typegraph.Union:
			if t.Name != "" {
				continue
			}
			kind = "union"
		default:
			continue
		}

		name := namingCtx.GeneratedName(item.Type, nil)
		if name == "" {
			continue
		}
		report.Names = append(report.Names, GeneratedNameInfo{
			Name:                      name,
			CrossLanguageDefinitionID: namingCtx.CrossLanguageDefinitionID(item.Type, nil),
			Kind:                      kind,
			Location:                  item.Location.ToPath(),
		})
	}

	return report, diags
}

// WriteNames writes report as a table ("text") or as JSON.
func WriteNames(w io.Writer, report *NamesReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "", "text":
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}

	if report.PackageID != "" {
		fmt.Fprintf(w, "Package: %s\n", report.PackageID)
	}
	if report.DefaultVersion != "" {
		fmt.Fprintf(w, "Default API version: %s\n", report.DefaultVersion)
	}
	if len(report.Names) == 0 {
		fmt.Fprintln(w, "No anonymous types found")
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tCROSS-LANGUAGE ID\tLOCATION")
	for _, info := range report.Names {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, info.Kind, info.CrossLanguageDefinitionID, info.Location)
	}
	return tw.Flush()
}
